// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/resume-tailor/internal/history"
	"github.com/pdiddy/resume-tailor/internal/render"
	"github.com/pdiddy/resume-tailor/internal/secrets"
	"github.com/pdiddy/resume-tailor/internal/server"
	"github.com/pdiddy/resume-tailor/internal/tailor"
	"github.com/pdiddy/resume-tailor/internal/transform"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

// httpTimeout bounds one call to a generative text service.
const httpTimeout = 3 * time.Minute

func setDefaults() {
	viper.SetDefault("transform.provider", string(types.ProviderGemini))
	viper.SetDefault("render.strategy", string(types.StrategyParagraphFlow))
	viper.SetDefault("server.addr", server.DefaultAddr)
	viper.SetDefault("server.upload_dir", server.DefaultUploadDir)
	viper.SetDefault("server.max_upload_mb", server.DefaultMaxUploadMB)
	viper.SetDefault("server.transform_timeout", server.DefaultTransformTimeout)
	viper.SetDefault("log.level", "info")
}

// bindFlags binds each flag name to its viper key so flags override the
// config file and environment.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for flag, key := range keys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

// loadConfig assembles the effective configuration from viper. The API key
// falls back to the provider's .secrets/ file.
func loadConfig() types.Config {
	cfg := types.Config{
		Transform: types.TransformConfig{
			Provider:  types.Provider(viper.GetString("transform.provider")),
			Model:     viper.GetString("transform.model"),
			APIKey:    viper.GetString("transform.api_key"),
			BaseURL:   viper.GetString("transform.base_url"),
			MaxTokens: viper.GetInt("transform.max_tokens"),
		},
		Render: types.RenderConfig{
			Strategy: types.RenderStrategy(viper.GetString("render.strategy")),
		},
		Server: types.ServerConfig{
			Addr:             viper.GetString("server.addr"),
			UploadDir:        viper.GetString("server.upload_dir"),
			MaxUploadMB:      viper.GetInt("server.max_upload_mb"),
			TransformTimeout: viper.GetDuration("server.transform_timeout"),
		},
		History: types.HistoryConfig{
			DBPath: viper.GetString("history.db"),
		},
	}
	cfg.Transform.APIKey = secretDefault(secrets.KeyName(cfg.Transform.Provider), cfg.Transform.APIKey)
	return cfg
}

// newPipeline builds the pipeline for cfg. The returned close function
// releases the history store when one is configured.
func newPipeline(cfg types.Config) (*tailor.Pipeline, func() error, error) {
	t, err := transform.New(cfg.Transform, &http.Client{Timeout: httpTimeout})
	if err != nil {
		return nil, nil, err
	}
	strategy, err := render.StrategyByName(cfg.Render.Strategy)
	if err != nil {
		return nil, nil, err
	}

	p := &tailor.Pipeline{
		Transformer: t,
		Strategy:    strategy,
		Provider:    cfg.Transform.Provider,
	}
	closeFn := func() error { return nil }
	if cfg.History.DBPath != "" {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return nil, nil, fmt.Errorf("opening history: %w", err)
		}
		p.History = store
		closeFn = store.Close
	}
	return p, closeFn, nil
}

// secretsKeyFor names the .secrets/ file consulted for cfg's provider.
func secretsKeyFor(cfg types.Config) string {
	return secrets.KeyName(cfg.Transform.Provider)
}

// readAll reads r to the end as a string.
func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	return string(data), err
}
