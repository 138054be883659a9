package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
	"github.com/nguyentantai21042004/clipdigest/internal/provider"
	"github.com/nguyentantai21042004/clipdigest/internal/task"
	"github.com/nguyentantai21042004/clipdigest/internal/worker"
)

var formats = []string{"mp4", "mov"}

// fakeExecutor fails items listed in failures and succeeds otherwise
type fakeExecutor struct {
	mu       sync.Mutex
	failures map[string]*pipeline.StageError
	block    map[string]chan struct{}
	started  chan string
	calls    []string
	ctxErrs  []error
}

func (f *fakeExecutor) Run(ctx context.Context, req pipeline.Request) (domain.ItemResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, filepath.Base(req.Item))
	gate := f.block[filepath.Base(req.Item)]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- filepath.Base(req.Item)
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.mu.Unlock()

	if se, ok := f.failures[filepath.Base(req.Item)]; ok {
		se.Item = req.Item
		return domain.ItemResult{}, se
	}
	return domain.ItemResult{
		Item:                  req.Item,
		Summary:               "ok",
		TranscriptionProvider: req.TranscriberName,
		SummarizationProvider: req.SummarizerName,
	}, nil
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type nopTranscriber struct{}

func (nopTranscriber) Transcribe(ctx context.Context, audio provider.Audio) (string, error) {
	return "text", nil
}

type nopSummarizer struct{}

func (nopSummarizer) Summarize(ctx context.Context, text string) (string, error) { return "sum", nil }

func newProviders() *provider.Registry {
	reg := provider.NewRegistry()
	reg.RegisterTranscriber("whisper", func() (provider.Transcriber, error) { return nopTranscriber{}, nil })
	reg.RegisterSummarizer("gemini", func() (provider.Summarizer, error) { return nopSummarizer{}, nil })
	reg.RegisterSummarizer("broken", func() (provider.Summarizer, error) { return nil, errors.New("missing api key") })
	return reg
}

type harness struct {
	registry task.Registry
	exec     *fakeExecutor
	pool     worker.Pool
	coord    Coordinator

	mu       sync.Mutex
	outcomes int
}

func newHarness(t *testing.T, exec *fakeExecutor, workers int) *harness {
	t.Helper()
	h := &harness{registry: task.New(), exec: exec, pool: worker.New(workers, 1, logger.Nop())}
	h.pool.Start()
	t.Cleanup(h.pool.Stop)

	h.coord = New(h.registry, newProviders(), exec, h.pool, formats, logger.Nop(),
		func(ctx context.Context, taskID string, r *domain.ItemResult, e *domain.ItemError) {
			h.mu.Lock()
			h.outcomes++
			h.mu.Unlock()
		})
	return h
}

func providers(summ string) domain.ProviderNames {
	return domain.ProviderNames{Transcription: "whisper", Summarization: summ}
}

func mkFolder(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func assertAccounted(t *testing.T, tk domain.Task) {
	t.Helper()
	if len(tk.Results)+len(tk.Errors) != len(tk.Items) {
		t.Errorf("results(%d)+errors(%d) != items(%d)", len(tk.Results), len(tk.Errors), len(tk.Items))
	}
}

func TestMixedBatchCompletes(t *testing.T) {
	exec := &fakeExecutor{failures: map[string]*pipeline.StageError{
		"b.mp4": {Stage: domain.StageExtract, Kind: domain.ErrorKindExtraction, Message: "extract audio"},
	}}
	h := newHarness(t, exec, 2)

	created := h.registry.Create(task.CreateInput{
		Kind:      domain.TaskKindBatch,
		Source:    mkFolder(t, "b.mp4", "a.mp4", "notes.txt", ".hidden.mp4"),
		Providers: providers("gemini"),
	})

	got, err := h.coord.Run(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got.Status != domain.TaskStatusCompleted {
		t.Fatalf("Status = %s, want completed", got.Status)
	}
	if len(got.Items) != 2 || filepath.Base(got.Items[0]) != "a.mp4" {
		t.Errorf("Items = %v", got.Items)
	}
	if len(got.Results) != 1 || filepath.Base(got.Results[0].Item) != "a.mp4" {
		t.Errorf("Results = %+v", got.Results)
	}
	if len(got.Errors) != 1 || got.Errors[0].Kind != domain.ErrorKindExtraction || filepath.Base(got.Errors[0].Item) != "b.mp4" {
		t.Errorf("Errors = %+v", got.Errors)
	}
	if got.Failure != nil {
		t.Errorf("Failure = %+v, want nil", got.Failure)
	}
	assertAccounted(t, got)
	if h.outcomes != 2 {
		t.Errorf("outcome hook calls = %d, want 2", h.outcomes)
	}
}

func TestSiblingCompletesDespiteTimeout(t *testing.T) {
	exec := &fakeExecutor{failures: map[string]*pipeline.StageError{
		"slow.mp4": {Stage: domain.StageTranscribe, Kind: domain.ErrorKindTranscription, Message: "whisper timed out", Err: context.DeadlineExceeded},
	}}
	h := newHarness(t, exec, 2)

	created := h.registry.Create(task.CreateInput{
		Kind:      domain.TaskKindBatch,
		Items:     []string{"/in/slow.mp4", "/in/fast.mp4"},
		Providers: providers("gemini"),
	})

	got, err := h.coord.Run(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TaskStatusCompleted {
		t.Errorf("Status = %s", got.Status)
	}
	if len(got.Results) != 1 || got.Results[0].Item != "/in/fast.mp4" {
		t.Errorf("Results = %+v", got.Results)
	}
	if len(got.Errors) != 1 || got.Errors[0].Kind != domain.ErrorKindTranscription {
		t.Errorf("Errors = %+v", got.Errors)
	}
}

func TestSetupFailures(t *testing.T) {
	tests := []struct {
		name      string
		input     func(t *testing.T) task.CreateInput
		wantKind  domain.ErrorKind
		wantItems int
	}{
		{
			name: "empty folder",
			input: func(t *testing.T) task.CreateInput {
				return task.CreateInput{Kind: domain.TaskKindBatch, Source: mkFolder(t, "readme.md"), Providers: providers("gemini")}
			},
			wantKind: domain.ErrorKindEmptyBatch,
		},
		{
			name: "empty item list",
			input: func(t *testing.T) task.CreateInput {
				return task.CreateInput{Kind: domain.TaskKindBatch, Providers: providers("gemini")}
			},
			wantKind: domain.ErrorKindEmptyBatch,
		},
		{
			name: "missing folder",
			input: func(t *testing.T) task.CreateInput {
				return task.CreateInput{Kind: domain.TaskKindBatch, Source: filepath.Join(t.TempDir(), "gone"), Providers: providers("gemini")}
			},
			wantKind: domain.ErrorKindInvalidInput,
		},
		{
			name: "unknown provider",
			input: func(t *testing.T) task.CreateInput {
				return task.CreateInput{Kind: domain.TaskKindBatch, Items: []string{"/a.mp4", "/b.mp4"}, Providers: providers("nope")}
			},
			wantKind:  domain.ErrorKindUnknownProvider,
			wantItems: 2,
		},
		{
			name: "provider init failure",
			input: func(t *testing.T) task.CreateInput {
				return task.CreateInput{Kind: domain.TaskKindSingle, Items: []string{"/a.mp4"}, Providers: providers("broken")}
			},
			wantKind:  domain.ErrorKindProviderInit,
			wantItems: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			h := newHarness(t, exec, 1)
			created := h.registry.Create(tt.input(t))

			got, err := h.coord.Run(context.Background(), created.ID)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got.Status != domain.TaskStatusFailed {
				t.Fatalf("Status = %s, want failed", got.Status)
			}
			if got.Failure == nil || got.Failure.Kind != tt.wantKind {
				t.Fatalf("Failure = %+v, want kind %s", got.Failure, tt.wantKind)
			}
			if exec.callCount() != 0 {
				t.Errorf("pipeline ran %d times, want 0", exec.callCount())
			}
			if len(got.Errors) != tt.wantItems {
				t.Errorf("Errors = %d, want %d", len(got.Errors), tt.wantItems)
			}
			for _, e := range got.Errors {
				if e.Kind != tt.wantKind || e.Stage != domain.StageSetup {
					t.Errorf("item error = %+v", e)
				}
			}
			assertAccounted(t, got)
		})
	}
}

func TestSingleItemOutcome(t *testing.T) {
	tests := []struct {
		name       string
		failures   map[string]*pipeline.StageError
		wantStatus domain.TaskStatus
	}{
		{"success", nil, domain.TaskStatusCompleted},
		{
			"failure",
			map[string]*pipeline.StageError{"a.mp4": {Stage: domain.StageValidate, Kind: domain.ErrorKindInvalidInput, Message: "cannot access file"}},
			domain.TaskStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &fakeExecutor{failures: tt.failures}, 1)
			created := h.registry.Create(task.CreateInput{Kind: domain.TaskKindSingle, Items: []string{"/in/a.mp4"}, Providers: providers("gemini")})

			got, err := h.coord.Run(context.Background(), created.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.Failure != nil {
				t.Errorf("item failure must not be reported as a setup failure: %+v", got.Failure)
			}
			assertAccounted(t, got)
		})
	}
}

func TestCancelSkipsUnstartedItems(t *testing.T) {
	gate := make(chan struct{})
	exec := &fakeExecutor{
		block:   map[string]chan struct{}{"1.mp4": gate},
		started: make(chan string, 4),
	}
	h := newHarness(t, exec, 1)

	created := h.registry.Create(task.CreateInput{
		Kind:      domain.TaskKindBatch,
		Items:     []string{"/in/1.mp4", "/in/2.mp4", "/in/3.mp4"},
		Providers: providers("gemini"),
	})

	done := make(chan domain.Task, 1)
	go func() {
		got, err := h.coord.Run(context.Background(), created.ID)
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
		done <- got
	}()

	select {
	case <-exec.started:
	case <-time.After(time.Second):
		t.Fatal("first item never started")
	}
	if err := h.registry.RequestCancel(created.ID); err != nil {
		t.Fatal(err)
	}
	close(gate)

	var got domain.Task
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	if got.Status != domain.TaskStatusCompleted {
		t.Errorf("Status = %s", got.Status)
	}
	if len(got.Results) != 1 || got.Results[0].Item != "/in/1.mp4" {
		t.Errorf("in-flight item should finish, Results = %+v", got.Results)
	}
	cancelled := 0
	for _, e := range got.Errors {
		if e.Kind == domain.ErrorKindCancelled {
			cancelled++
		}
	}
	if cancelled != 2 {
		t.Errorf("cancelled = %d, want 2", cancelled)
	}
	assertAccounted(t, got)
}

func TestShutdownLetsInFlightItemFinish(t *testing.T) {
	gate := make(chan struct{})
	exec := &fakeExecutor{
		block:   map[string]chan struct{}{"a.mp4": gate},
		started: make(chan string, 4),
	}
	h := newHarness(t, exec, 1)

	created := h.registry.Create(task.CreateInput{
		Kind:      domain.TaskKindBatch,
		Items:     []string{"/in/a.mp4", "/in/b.mp4"},
		Providers: providers("gemini"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan domain.Task, 1)
	go func() {
		got, err := h.coord.Run(ctx, created.ID)
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
		done <- got
	}()

	select {
	case name := <-exec.started:
		if name != "a.mp4" {
			t.Fatalf("first started item = %s", name)
		}
	case <-time.After(time.Second):
		t.Fatal("first item never started")
	}
	cancel()
	close(gate)

	var got domain.Task
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	exec.mu.Lock()
	defer exec.mu.Unlock()
	if len(exec.ctxErrs) != 1 || exec.ctxErrs[0] != nil {
		t.Fatalf("executor ctx errors = %v, want one nil", exec.ctxErrs)
	}

	if got.Status != domain.TaskStatusCompleted {
		t.Errorf("Status = %s", got.Status)
	}
	if len(got.Results) != 1 || got.Results[0].Item != "/in/a.mp4" {
		t.Errorf("in-flight item should finish, Results = %+v", got.Results)
	}
	if len(got.Errors) != 1 || got.Errors[0].Item != "/in/b.mp4" || got.Errors[0].Kind != domain.ErrorKindCancelled {
		t.Errorf("unstarted item should be cancelled, Errors = %+v", got.Errors)
	}
	assertAccounted(t, got)
}

func TestRunUnknownTask(t *testing.T) {
	h := newHarness(t, &fakeExecutor{}, 1)
	if _, err := h.coord.Run(context.Background(), "missing"); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExpandFolder(t *testing.T) {
	dir := mkFolder(t, "c.MOV", "a.mp4", "b.avi", ".x.mp4")
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ExpandFolder(dir, formats)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || filepath.Base(got[0]) != "a.mp4" || filepath.Base(got[1]) != "c.MOV" {
		t.Errorf("ExpandFolder() = %v", got)
	}

	file := filepath.Join(dir, "a.mp4")
	if _, err := ExpandFolder(file, formats); err == nil {
		t.Error("expected error for a file path")
	}
}
