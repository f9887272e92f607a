package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// サーバ側の設定はファイル、Cosmos の接続情報は環境変数（platform/cosmos）。
// ファイルが無ければ既定値で動く。

const DefaultPath = "config/config.yaml"

type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Config struct {
	Mode        string    `yaml:"mode"` // dev | release
	Addr        string    `yaml:"addr"`
	CORSOrigins []string  `yaml:"cors_origins"`
	RateLimit   RateLimit `yaml:"rate_limit"`
}

func defaults() *Config {
	return &Config{
		Mode: "dev",
		Addr: ":8080",
		RateLimit: RateLimit{
			RPS:   20,
			Burst: 40,
		},
	}
}

// Load reads the yaml config at path. A missing file is not an error; the
// defaults apply. A present but unparsable file is.
func Load(path string) (*Config, error) {
	cfg := defaults()

	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		return nil, fmt.Errorf("config: mode must be dev or release, got %q", cfg.Mode)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg, nil
}
