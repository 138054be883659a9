package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps capability and name to a provider constructor.
type Registry struct {
	mu           sync.RWMutex
	transcribers map[string]TranscriberFactory
	summarizers  map[string]SummarizerFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		transcribers: make(map[string]TranscriberFactory),
		summarizers:  make(map[string]SummarizerFactory),
	}
}

// RegisterTranscriber associates name with a transcription factory,
// replacing any previous registration.
func (r *Registry) RegisterTranscriber(name string, factory TranscriberFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcribers[normalize(name)] = factory
}

// RegisterSummarizer associates name with a summarization factory.
func (r *Registry) RegisterSummarizer(name string, factory SummarizerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summarizers[normalize(name)] = factory
}

// ResolveTranscriber constructs the transcription provider registered as name.
func (r *Registry) ResolveTranscriber(name string) (Transcriber, error) {
	r.mu.RLock()
	factory, ok := r.transcribers[normalize(name)]
	r.mu.RUnlock()

	desc := Descriptor{Capability: CapabilityTranscription, Name: name}
	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownProvider, desc.Capability, name)
	}

	t, err := factory()
	if err != nil {
		return nil, &InitError{Descriptor: desc, Err: err}
	}
	if t == nil {
		return nil, &InitError{Descriptor: desc, Err: fmt.Errorf("factory returned nil")}
	}
	return t, nil
}

// ResolveSummarizer constructs the summarization provider registered as name.
func (r *Registry) ResolveSummarizer(name string) (Summarizer, error) {
	r.mu.RLock()
	factory, ok := r.summarizers[normalize(name)]
	r.mu.RUnlock()

	desc := Descriptor{Capability: CapabilitySummarization, Name: name}
	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownProvider, desc.Capability, name)
	}

	s, err := factory()
	if err != nil {
		return nil, &InitError{Descriptor: desc, Err: err}
	}
	if s == nil {
		return nil, &InitError{Descriptor: desc, Err: fmt.Errorf("factory returned nil")}
	}
	return s, nil
}

// Descriptors lists every registered provider sorted by capability then name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.transcribers)+len(r.summarizers))
	for name := range r.transcribers {
		out = append(out, Descriptor{Capability: CapabilityTranscription, Name: name})
	}
	for name := range r.summarizers {
		out = append(out, Descriptor{Capability: CapabilitySummarization, Name: name})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Capability != out[j].Capability {
			return out[i].Capability < out[j].Capability
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
