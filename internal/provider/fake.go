package provider

import (
	"context"
	"sync"
)

// FakeProvider returns scripted outcomes in order and counts calls. Used
// across the test suites; also a harmless default when nothing is wired.
type FakeProvider struct {
	ProviderName string

	mu      sync.Mutex
	script  []error
	output  string
	calls   int
	prompts []string
}

// NewFakeProvider scripts one error per call; a nil entry succeeds with
// output. Calls past the end of the script succeed.
func NewFakeProvider(name, output string, script ...error) *FakeProvider {
	return &FakeProvider{ProviderName: name, output: output, script: script}
}

func (f *FakeProvider) Name() string { return f.ProviderName }

func (f *FakeProvider) Submit(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.prompts = append(f.prompts, prompt)
	idx := f.calls
	f.calls++
	if idx < len(f.script) && f.script[idx] != nil {
		return "", f.script[idx]
	}
	return f.output, nil
}

// Calls reports how many times Submit ran.
func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastPrompt returns the most recent prompt, or "".
func (f *FakeProvider) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}
