package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pranjul332/TrustLens/internal/api"
	"github.com/pranjul332/TrustLens/internal/auth"
	"github.com/pranjul332/TrustLens/internal/cache"
	"github.com/pranjul332/TrustLens/internal/model"
)

// loadConfig merges defaults, the config file, and environment variables
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	_ = viper.Unmarshal(cfg)

	if cfg.Cache.Dir == "" {
		if dir, err := auth.DefaultDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(dir, "cache")
		}
	}
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg
}

// newClient builds the backend client from config
func newClient(cfg *model.Config) *api.Client {
	return api.New(
		cfg.API.BaseURL,
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
	)
}

// newResults builds the local result cache, or nil when disabled
func newResults(cfg *model.Config) *cache.Results {
	if !cfg.Cache.Enabled {
		return nil
	}
	return cache.NewResults(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
}

// tokenSource builds the credential source backed by the config directory
func tokenSource() (auth.TokenSource, error) {
	dir, err := auth.DefaultDir()
	if err != nil {
		return nil, err
	}
	return auth.NewStore(dir).Source(), nil
}
