// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mode maps a requested answer mode to the style directive that
// shapes answers. The directive is embedded in the generative-AI prompt
// and selects which pre-written template the local knowledge base
// returns, so both sources format answers the same way.
package mode

import (
	"strings"

	"github.com/pdiddy/study-engine/pkg/types"
)

// Instruction returns the style directive for m. Pure; unrecognized
// modes get the direct, scope-limited default directive.
func Instruction(m types.Mode) string {
	switch m {
	case types.ModeExam:
		return "Format as concise bullet points. Focus on: definitions, key formulas, key steps, " +
			"important conditions, and 1-2 short examples. Each bullet should be short and exam-ready. " +
			"Use clear ASCII or LaTeX-like notation for math (e.g., F = m * a). Use Markdown for readability."
	case types.ModeCheatsheet:
		return "Respond as a compact cheat sheet. Use tiny headings and short bullet points. " +
			"Include only the most important formulas, facts, and quick tips. Avoid long explanations. " +
			"Use ASCII or LaTeX notation for formulas (e.g., v = u + at)."
	case types.ModeDescriptive:
		return "Respond in well-structured paragraphs. Explain concepts clearly with intuition and simple examples. " +
			"You may be longer, like a theory answer in an exam. Use Markdown headings and lists where helpful. " +
			"Include formulas in clear ASCII or LaTeX notation (e.g., E = m * c^2)."
	default:
		return "Answer the question directly. Answer only about the user's question; do not invent extra context."
	}
}

// Infer guesses a mode from the query text. Used only when the caller
// supplied no mode at all, on the local fallback path.
func Infer(query string) types.Mode {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "cheat"):
		return types.ModeCheatsheet
	case strings.Contains(q, "describ"), strings.Contains(q, "detailed"):
		return types.ModeDescriptive
	default:
		return types.ModeExam
	}
}
