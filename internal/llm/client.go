// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm asks a generative model study questions and degrades to
// the local knowledge base when no model is reachable. The degradation
// is internal: callers always get an AnswerResult, never a transport
// error.
package llm

import (
	"bytes"
	"context"
	"text/template"

	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/knowledge"
	"github.com/pdiddy/study-engine/internal/mode"
	"github.com/pdiddy/study-engine/pkg/types"
)

// promptTmpl wraps the user question with the study-assistant preamble
// and the per-mode style directive.
var promptTmpl = template.Must(template.New("ask").Parse(`You are a helpful study assistant.

Instructions:
{{.Instructions}}

User question:
{{.Query}}`))

// Backend is one remote generation endpoint. Implementations make a
// single synchronous call with no retry; retry policy, if any, belongs
// to the transport layer underneath.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// Generate sends the fully rendered prompt and returns the model's
	// text reply.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client answers study questions through a Backend, falling back to the
// embedded knowledge base on any failure.
type Client struct {
	backend Backend
	logger  *zap.Logger
}

// NewClient builds a Client from configuration. A missing API key is
// tolerated: the client constructs without a backend and every Ask
// resolves through the local fallback.
func NewClient(cfg types.LLMConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	var backend Backend
	if cfg.APIKey != "" {
		backend = NewGeminiBackend(cfg)
	} else {
		logger.Warn("no generative-AI credential configured, answering from local knowledge only")
	}
	return &Client{backend: backend, logger: logger}
}

// NewClientWithBackend builds a Client around an explicit backend.
func NewClientWithBackend(backend Backend, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{backend: backend, logger: logger}
}

// Available reports whether a generation backend was initialized.
func (c *Client) Available() bool {
	return c.backend != nil
}

// Ask sends query to the backend in the style of m and returns the
// model's answer at confidence 0.9. On any failure, or when no backend
// exists, it answers from the local knowledge base at confidence 0.6.
// Ask never returns an error.
func (c *Client) Ask(ctx context.Context, query string, m types.Mode) types.AnswerResult {
	if c.backend != nil {
		prompt, err := renderPrompt(query, m)
		if err != nil {
			c.logger.Error("rendering prompt, falling back to local", zap.Error(err))
			return c.localAnswer(query, m)
		}
		answer, err := c.backend.Generate(ctx, prompt)
		if err != nil {
			c.logger.Error("generation failed, falling back to local",
				zap.String("backend", c.backend.Name()), zap.Error(err))
			return c.localAnswer(query, m)
		}
		c.logger.Info("answer from model", zap.String("backend", c.backend.Name()))
		return types.AnswerResult{
			Answer:     answer,
			Confidence: types.ConfidenceModel,
		}
	}
	return c.localAnswer(query, m)
}

// localAnswer resolves query through the knowledge base. When the
// caller supplied no mode at all the mode is inferred from the query
// text; this inference happens only on the fallback path.
func (c *Client) localAnswer(query string, m types.Mode) types.AnswerResult {
	c.logger.Info("using local fallback generator")
	if m == "" {
		m = mode.Infer(query)
	}
	return types.AnswerResult{
		Answer:     knowledge.Answer(query, m),
		Confidence: types.ConfidenceLocal,
	}
}

func renderPrompt(query string, m types.Mode) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Instructions string
		Query        string
	}{
		Instructions: mode.Instruction(m),
		Query:        query,
	}
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
