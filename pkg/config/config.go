package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shouni/chroma-weaver/pkg/generator"
	"github.com/shouni/chroma-weaver/pkg/ingest"
)

const DefaultAddr = "127.0.0.1:8080"

// Config はアプリ全体の設定です。
type Config struct {
	APIKey       string
	Model        string
	AspectRatio  string
	Seed         *int64
	Addr         string
	IngestPolicy ingest.Policy
	MaxDimension int
	MaxPixels    int
	JPEGQuality  int
	LogLevel     slog.Level
}

// Load は .env（あれば）と環境変数から設定を読み込みます。
// API キーが無くてもエラーにはしない。生成時に未設定エラーになります。
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// ファイルが無いのは正常
	_ = godotenv.Load(envFiles...)

	return FromEnv(os.Getenv)
}

// FromEnv は getenv から設定を組み立てます。テストでは map を渡せるようにしている。
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIKey:      firstNonEmpty(getenv, "GEMINI_API_KEY", "API_KEY", "GOOGLE_API_KEY"),
		Model:       orDefault(getenv("WEAVER_MODEL"), generator.DefaultModel),
		AspectRatio: strings.TrimSpace(getenv("WEAVER_ASPECT_RATIO")),
		Addr:        orDefault(getenv("WEAVER_ADDR"), DefaultAddr),
	}

	policy, err := ingest.ParsePolicy(getenv("WEAVER_INGEST_POLICY"))
	if err != nil {
		return nil, err
	}
	cfg.IngestPolicy = policy

	if cfg.MaxDimension, err = intEnv(getenv, "WEAVER_MAX_DIMENSION", ingest.DefaultMaxDimension); err != nil {
		return nil, err
	}
	if cfg.MaxPixels, err = intEnv(getenv, "WEAVER_MAX_PIXELS", ingest.DefaultMaxPixels); err != nil {
		return nil, err
	}
	if cfg.JPEGQuality, err = intEnv(getenv, "WEAVER_JPEG_QUALITY", ingest.DefaultQuality); err != nil {
		return nil, err
	}
	if cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("WEAVER_JPEG_QUALITY must be between 1 and 100, got %d", cfg.JPEGQuality)
	}

	if raw := strings.TrimSpace(getenv("WEAVER_SEED")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("WEAVER_SEED: %w", err)
		}
		cfg.Seed = &seed
	}

	if raw := strings.TrimSpace(getenv("WEAVER_LOG_LEVEL")); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("WEAVER_LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// IngestOptions は取り込み設定に変換します。
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{
		Policy:       c.IngestPolicy,
		MaxDimension: c.MaxDimension,
		MaxPixels:    int64(c.MaxPixels),
		Quality:      c.JPEGQuality,
	}
}

// GeneratorOptions は生成設定に変換します。
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		APIKey:      c.APIKey,
		Model:       c.Model,
		AspectRatio: c.AspectRatio,
		Seed:        c.Seed,
	}
}

func firstNonEmpty(getenv func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func intEnv(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}
