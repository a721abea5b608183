// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answer dispatches a study question to the source the caller
// picked: the generative model, the web, or the local knowledge base.
// Dispatch is terminal per call; the only fallback chains live inside
// the underlying clients.
package answer

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/pkg/types"
)

// ErrEmptyQuery rejects queries that are empty after trimming.
var ErrEmptyQuery = errors.New("no query provided")

// ModelClient is the generative-model path. Ask never fails; it
// degrades to the local knowledge base internally.
type ModelClient interface {
	Available() bool
	Ask(ctx context.Context, query string, m types.Mode) types.AnswerResult
}

// WebClient is the web-search path.
type WebClient interface {
	SearchAndAnswer(ctx context.Context, query string, m types.Mode) types.AnswerResult
}

// Resolver routes each query to one answer source.
type Resolver struct {
	model  ModelClient
	web    WebClient
	logger *zap.Logger
}

// NewResolver wires the two answer paths together.
func NewResolver(model ModelClient, web WebClient, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{model: model, web: web, logger: logger}
}

// Resolve answers query through the source named by sourceStr. modeStr
// and sourceStr arrive as raw request strings; an unrecognized mode
// degrades to the default style, while an unrecognized source is
// rejected with a zero-confidence result and no downstream calls.
// The returned error is non-nil only for an empty query.
func (r *Resolver) Resolve(ctx context.Context, query, modeStr, sourceStr string) (types.AnswerResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.AnswerResult{}, ErrEmptyQuery
	}

	// An absent mode stays absent so the local fallback path may infer
	// one from the query text.
	var m types.Mode
	if modeStr != "" {
		m = types.ParseMode(modeStr)
	}

	src, ok := types.ParseSource(sourceStr)
	if !ok {
		r.logger.Warn("invalid source requested", zap.String("source", sourceStr))
		return types.AnswerResult{
			Answer:     "Invalid source. Use 'auto', 'gemini', 'web', or 'local'.",
			Confidence: types.ConfidenceInvalid,
			Source:     string(src),
		}, nil
	}

	r.logger.Info("resolving query",
		zap.String("mode", string(m)), zap.String("source", string(src)))

	switch src {
	case types.SourceGemini:
		return r.model.Ask(ctx, query, m), nil
	case types.SourceWeb:
		return r.web.SearchAndAnswer(ctx, query, m), nil
	case types.SourceLocal:
		// Routed through the model client on purpose: its forced
		// fallback guarantees formatting identical to the gemini
		// branch when no model is configured.
		return r.model.Ask(ctx, query, m), nil
	default: // types.SourceAuto
		if r.model.Available() {
			return r.model.Ask(ctx, query, m), nil
		}
		return r.web.SearchAndAnswer(ctx, query, m), nil
	}
}
