// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge answers a fixed set of study topics without any
// external I/O. Topics are authored in topics.yaml, compiled into the
// binary, and evaluated as an ordered decision list: first matching
// topic wins. Matching is case-insensitive substring search with no
// word-boundary checks, so keyword overlap across topics is resolved
// purely by list order.
package knowledge

import (
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/study-engine/pkg/types"
)

//go:embed topics.yaml
var topicsYAML []byte

// topic is one detector entry: keyword groups plus one template per
// mode category. Descriptive and default both render the longform
// template.
type topic struct {
	Name       string     `yaml:"name"`
	Match      [][]string `yaml:"match"`
	Exam       string     `yaml:"exam"`
	Cheatsheet string     `yaml:"cheatsheet"`
	Longform   string     `yaml:"longform"`
}

type topicsFile struct {
	Topics []topic `yaml:"topics"`
}

// topics holds the decision list in file order.
var topics = mustLoadTopics()

func mustLoadTopics() []topic {
	var tf topicsFile
	if err := yaml.Unmarshal(topicsYAML, &tf); err != nil {
		panic(fmt.Sprintf("knowledge: parsing embedded topics.yaml: %v", err))
	}
	if len(tf.Topics) == 0 {
		panic("knowledge: embedded topics.yaml contains no topics")
	}
	return tf.Topics
}

// Answer returns the canned answer for text in the given mode. It never
// fails: when no topic matches, a mode-appropriate generic fallback
// message is returned.
func Answer(text string, m types.Mode) string {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, t := range topics {
		if t.matches(s) {
			return t.render(m)
		}
	}
	return genericFallback(m)
}

// Topics returns the detector names in evaluation order.
func Topics() []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// matches reports whether any keyword group matches s in full.
func (t topic) matches(s string) bool {
	for _, group := range t.Match {
		if len(group) == 0 {
			continue
		}
		all := true
		for _, kw := range group {
			if !strings.Contains(s, kw) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// render selects the template for m. Exam and cheatsheet have dedicated
// templates; everything else shares the longform branch.
func (t topic) render(m types.Mode) string {
	switch m {
	case types.ModeExam:
		return t.Exam
	case types.ModeCheatsheet:
		return t.Cheatsheet
	default:
		return t.Longform
	}
}

// genericFallback is the low-confidence answer when no topic matched. It
// asks the user to narrow the question to a known topic area.
func genericFallback(m types.Mode) string {
	switch m {
	case types.ModeExam:
		return "• Unable to provide a specific answer without more context.\n" +
			"• Please rephrase your question or specify a topic (physics, math, CS, etc.).\n" +
			"• Example: 'What is Newton's first law?' or 'How does binary search work?'"
	case types.ModeCheatsheet:
		return "**Unable to answer** — Please clarify with more detail or topic keywords."
	default:
		return "I don't have a specific answer yet. Please provide more context or choose from physics, mathematics, or computer science."
	}
}
