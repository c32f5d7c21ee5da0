package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration. It is loaded once at startup and never mutated afterwards.
type Config struct {
	Environment string    `yaml:"environment"`
	Debug       bool      `yaml:"debug"`
	APIHost     string    `yaml:"api_host"`
	APIPort     int       `yaml:"api_port"`
	LLM         LLMConfig `yaml:"llm"`
	SEO         SEOConfig `yaml:"seo"`
	// CORSAllowOrigins empty means every origin is allowed.
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
}

// LLMConfig selects the generative backend. An empty APIKey puts the service in simulation mode.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// SEOConfig holds the acceptance thresholds applied to generated content.
type SEOConfig struct {
	MinScore             int     `yaml:"min_score"`
	MinKeywordDensity    float64 `yaml:"min_keyword_density"`
	MinCharCount         int     `yaml:"min_char_count"`
	MaxGenerationSeconds float64 `yaml:"max_generation_seconds"`
}

const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"

	defaultGeminiModel   = "gemini-2.5-pro"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultDeepSeekModel = "deepseek-chat"
	defaultDeepSeekURL   = "https://api.deepseek.com"
)

// OpenAICompatible reports whether the provider is served through the OpenAI API shape.
func OpenAICompatible(provider string) bool {
	return provider == ProviderOpenAI || provider == ProviderDeepSeek
}

// Default returns the configuration used when neither a file nor the environment says otherwise.
func Default() Config {
	return Config{
		Environment: "development",
		Debug:       true,
		APIHost:     "localhost",
		APIPort:     8000,
		LLM: LLMConfig{
			Provider: ProviderGemini,
			Model:    defaultGeminiModel,
		},
		SEO: SEOConfig{
			MinScore:             80,
			MinKeywordDensity:    2,
			MinCharCount:         1000,
			MaxGenerationSeconds: 60,
		},
	}
}

// Load reads the optional YAML file at path, then .env, then environment overrides.
// A missing file is not an error; path may be empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("ENVIRONMENT", &cfg.Environment)
	str("API_HOST", &cfg.APIHost)
	str("LLM_PROVIDER", &cfg.LLM.Provider)
	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)

	switch cfg.LLM.Provider {
	case ProviderOpenAI, ProviderDeepSeek:
		str("OPENAI_API_KEY", &cfg.LLM.APIKey)
		str("OPENAI_MODEL", &cfg.LLM.Model)
		str("OPENAI_BASE_URL", &cfg.LLM.BaseURL)
	default:
		str("GEMINI_API_KEY", &cfg.LLM.APIKey)
		str("GEMINI_MODEL", &cfg.LLM.Model)
	}

	if v, ok := lookup("DEBUG"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if err := intEnv(lookup, "API_PORT", &cfg.APIPort); err != nil {
		return err
	}
	if err := intEnv(lookup, "SEO_MIN_SCORE", &cfg.SEO.MinScore); err != nil {
		return err
	}
	if err := intEnv(lookup, "SEO_MIN_CHAR_COUNT", &cfg.SEO.MinCharCount); err != nil {
		return err
	}
	if err := floatEnv(lookup, "SEO_MIN_KEYWORD_DENSITY", &cfg.SEO.MinKeywordDensity); err != nil {
		return err
	}
	if err := floatEnv(lookup, "SEO_MAX_GENERATION_SECONDS", &cfg.SEO.MaxGenerationSeconds); err != nil {
		return err
	}
	if v, ok := lookup("CORS_ALLOW_ORIGINS"); ok {
		cfg.CORSAllowOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
			}
		}
	}
	return nil
}

func intEnv(lookup func(string) (string, bool), name string, dst *int) error {
	v, ok := lookup(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func floatEnv(lookup func(string) (string, bool), name string, dst *float64) error {
	v, ok := lookup(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

func (c *Config) normalize() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	// A model left over from the Gemini default never suits an OpenAI-compatible provider.
	if c.LLM.Model == "" || (OpenAICompatible(c.LLM.Provider) && c.LLM.Model == defaultGeminiModel) {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.Model = defaultOpenAIModel
		case ProviderDeepSeek:
			c.LLM.Model = defaultDeepSeekModel
		default:
			c.LLM.Model = defaultGeminiModel
		}
	}
	if c.LLM.Provider == ProviderDeepSeek && c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultDeepSeekURL
	}
}

// Addr is the listen address built from APIHost and APIPort.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// SimulationMode reports whether generation runs without a backend.
func (c Config) SimulationMode() bool {
	return strings.TrimSpace(c.LLM.APIKey) == ""
}

// MaxGenerationTime converts the configured seconds into a duration.
func (s SEOConfig) MaxGenerationTime() time.Duration {
	return time.Duration(s.MaxGenerationSeconds * float64(time.Second))
}
