// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the study-engine
// answer chain: the mode and source selectors, the uniform answer
// record every source normalizes into, and the per-source confidence
// constants.
package types

import "strings"

// Mode selects the answer style requested by the caller.
type Mode string

const (
	ModeExam        Mode = "exam"
	ModeCheatsheet  Mode = "cheatsheet"
	ModeDescriptive Mode = "descriptive"
	ModeDefault     Mode = "default"
)

// ParseMode normalizes a caller-supplied mode string. Unrecognized or
// absent values map to ModeDefault.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExam:
		return ModeExam
	case ModeCheatsheet:
		return ModeCheatsheet
	case ModeDescriptive:
		return ModeDescriptive
	default:
		return ModeDefault
	}
}

// Source selects which answer-producing path the caller requests.
type Source string

const (
	SourceAuto   Source = "auto"
	SourceGemini Source = "gemini"
	SourceWeb    Source = "web"
	SourceLocal  Source = "local"
)

// ParseSource normalizes a caller-supplied source selector. An absent
// selector means auto; an unrecognized one is reported via ok=false so
// the resolver can return an explicit invalid-selector result instead
// of falling back silently.
func ParseSource(s string) (src Source, ok bool) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case Source(""), SourceAuto:
		return SourceAuto, true
	case SourceGemini:
		return SourceGemini, true
	case SourceWeb:
		return SourceWeb, true
	case SourceLocal:
		return SourceLocal, true
	default:
		return Source(s), false
	}
}

// Confidence values are fixed per source and outcome. They are heuristic
// quality signals, not probabilities, and are never computed.
const (
	ConfidenceModel    = 0.9 // generative-AI call succeeded
	ConfidenceWeb      = 0.7 // web search returned hits
	ConfidenceLocal    = 0.6 // local knowledge base fallback
	ConfidenceWebEmpty = 0.3 // web search returned zero hits
	ConfidenceWebError = 0.2 // web search path failed internally
	ConfidenceInvalid  = 0.0 // unrecognized source selector
)

// SearchHit is one parsed web search result.
type SearchHit struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// AnswerResult is the uniform record every answer source normalizes
// into. FoundInPDF and PDFName are legacy fields kept for front-end
// compatibility; they are always false and null by construction.
type AnswerResult struct {
	Answer     string      `json:"answer"`
	Confidence float64     `json:"confidence"`
	FoundInPDF bool        `json:"found_in_pdf"`
	PDFName    *string     `json:"pdf_name"`
	Source     string      `json:"source,omitempty"`
	Results    []SearchHit `json:"results,omitempty"`
}
