// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/study-engine/internal/knowledge"
	"github.com/pdiddy/study-engine/pkg/types"
)

// fakeBackend records the prompt it was given and returns a canned
// reply or error.
type fakeBackend struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestAskSuccess(t *testing.T) {
	backend := &fakeBackend{reply: "Inertia is resistance to acceleration."}
	c := NewClientWithBackend(backend, nil)

	got := c.Ask(context.Background(), "what is inertia", types.ModeExam)

	if got.Answer != backend.reply {
		t.Errorf("Answer = %q, want %q", got.Answer, backend.reply)
	}
	if got.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", got.Confidence)
	}
	if got.FoundInPDF {
		t.Error("FoundInPDF = true, want false")
	}
	if got.PDFName != nil {
		t.Errorf("PDFName = %v, want nil", got.PDFName)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
}

func TestAskPromptContainsInstructionAndQuery(t *testing.T) {
	backend := &fakeBackend{reply: "ok"}
	c := NewClientWithBackend(backend, nil)

	c.Ask(context.Background(), "what is inertia", types.ModeCheatsheet)

	if !strings.Contains(backend.prompt, "You are a helpful study assistant.") {
		t.Errorf("prompt missing preamble: %q", backend.prompt)
	}
	if !strings.Contains(backend.prompt, "cheat sheet") {
		t.Errorf("prompt missing cheatsheet directive: %q", backend.prompt)
	}
	if !strings.Contains(backend.prompt, "what is inertia") {
		t.Errorf("prompt missing user question: %q", backend.prompt)
	}
}

func TestAskBackendErrorFallsBackToLocal(t *testing.T) {
	backend := &fakeBackend{err: errors.New("quota exhausted")}
	c := NewClientWithBackend(backend, nil)

	got := c.Ask(context.Background(), "newton's third law", types.ModeCheatsheet)

	if got.Confidence != 0.6 {
		t.Errorf("Confidence = %v, want 0.6", got.Confidence)
	}
	want := knowledge.Answer("newton's third law", types.ModeCheatsheet)
	if got.Answer != want {
		t.Errorf("Answer = %q, want knowledge-base answer %q", got.Answer, want)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1 (no retry)", backend.calls)
	}
}

func TestAskNoBackendUsesLocal(t *testing.T) {
	c := NewClient(types.LLMConfig{}, nil)

	if c.Available() {
		t.Error("Available() = true with no API key")
	}

	got := c.Ask(context.Background(), "quadratic formula", types.ModeExam)
	if got.Confidence != 0.6 {
		t.Errorf("Confidence = %v, want 0.6", got.Confidence)
	}
	if !strings.Contains(got.Answer, "x = (-b") {
		t.Errorf("Answer = %q, want quadratic formula", got.Answer)
	}
}

func TestAskInfersModeOnlyWhenUnset(t *testing.T) {
	c := NewClientWithBackend(nil, nil)

	// Query text hints at cheatsheet; with no explicit mode the
	// fallback should pick the cheatsheet template.
	got := c.Ask(context.Background(), "cheat sheet for newton's third law", types.Mode(""))
	if !strings.Contains(got.Answer, "F_AB = -F_BA") {
		t.Errorf("Answer = %q, want cheatsheet content", got.Answer)
	}

	// An explicit mode wins over the query hint.
	got = c.Ask(context.Background(), "cheat sheet for newton's third law", types.ModeExam)
	if !strings.Contains(got.Answer, "equal and opposite reaction") {
		t.Errorf("Answer = %q, want exam content", got.Answer)
	}
}

func TestNewClientWithKey(t *testing.T) {
	c := NewClient(types.LLMConfig{APIKey: "test-key"}, nil)
	if !c.Available() {
		t.Error("Available() = false with an API key configured")
	}
}
