// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/answer"
	"github.com/pdiddy/study-engine/internal/llm"
	"github.com/pdiddy/study-engine/internal/secrets"
	"github.com/pdiddy/study-engine/internal/websearch"
	"github.com/pdiddy/study-engine/pkg/types"
)

const (
	defaultLLMTimeout    = 30 * time.Second
	defaultSearchTimeout = 10 * time.Second
	defaultMaxResults    = 3
	defaultAddr          = ":5000"
)

// buildConfig assembles the runtime configuration from viper (config
// file and STUDY_ENGINE_* environment), the .secrets/ directory, and
// built-in defaults. The Gemini key additionally honors the plain
// GEMINI_API_KEY environment variable for parity with older deploys.
func buildConfig() types.AppConfig {
	viper.SetDefault("llm.model", llm.DefaultModel)
	viper.SetDefault("llm.timeout", defaultLLMTimeout)
	viper.SetDefault("search.timeout", defaultSearchTimeout)
	viper.SetDefault("search.max_results", defaultMaxResults)
	viper.SetDefault("server.addr", defaultAddr)

	return types.AppConfig{
		LLM: types.LLMConfig{
			Model:   viper.GetString("llm.model"),
			Timeout: viper.GetDuration("llm.timeout"),
			APIKey: secrets.Resolve(loadedSecrets,
				viper.GetString("llm.api_key"), "GEMINI_API_KEY", "gemini-api-key"),
		},
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			MaxResults: viper.GetInt("search.max_results"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
	}
}

// warnConfig prints configuration warnings to stderr. Absence of the
// Gemini key is tolerated; the engine degrades to web and local
// answers.
func warnConfig(cfg types.AppConfig) {
	if cfg.LLM.APIKey == "" {
		fmt.Fprintln(os.Stderr, "CONFIG WARNING: GEMINI_API_KEY not set - answering from web search and local knowledge only")
	}
}

// buildResolver wires the full answer chain from configuration.
func buildResolver(cfg types.AppConfig, logger *zap.Logger) (*answer.Resolver, *websearch.Client) {
	model := llm.NewClient(cfg.LLM, logger)
	web := websearch.NewClient(cfg.Search, logger)
	return answer.NewResolver(model, web, logger), web
}

// buildLogger returns a development logger when verbose is set and a
// no-op logger otherwise. The serve command uses its own production
// logger.
func buildLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
