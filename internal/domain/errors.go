package domain

// Stage names one step of the processing pipeline.
type Stage string

const (
	StageSetup      Stage = "setup"
	StageValidate   Stage = "validate"
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageSummarize  Stage = "summarize"
	StagePersist    Stage = "persist"
)

// ErrorKind classifies failures reported on tasks and items.
type ErrorKind string

const (
	// per item
	ErrorKindInvalidInput  ErrorKind = "InvalidInput"
	ErrorKindExtraction    ErrorKind = "ExtractionError"
	ErrorKindTranscription ErrorKind = "TranscriptionError"
	ErrorKindSummarization ErrorKind = "SummarizationError"
	ErrorKindPersist       ErrorKind = "PersistError"
	ErrorKindCancelled     ErrorKind = "Cancelled"

	// per task
	ErrorKindUnknownProvider ErrorKind = "UnknownProvider"
	ErrorKindProviderInit    ErrorKind = "ProviderInitError"
	ErrorKindEmptyBatch      ErrorKind = "EmptyBatch"

	// callback only, never stored on a task
	ErrorKindDelivery ErrorKind = "DeliveryError"
)
