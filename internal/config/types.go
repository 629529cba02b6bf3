package config

import (
	"os"
	"path/filepath"
)

// Settings is the full application settings document.
type Settings struct {
	LLM       LLMSettings       `yaml:"llm"`
	Cache     CacheSettings     `yaml:"cache"`
	Terraform TerraformSettings `yaml:"terraform"`
}

// LLMSettings selects and configures the model used for security analysis.
// BaseURL points at any OpenAI-compatible endpoint, which covers both hosted
// OpenAI and a local Ollama server.
type LLMSettings struct {
	Provider    string  `yaml:"provider" validate:"required,oneof=ollama openai"`
	Model       string  `yaml:"model" validate:"required,min=1"`
	BaseURL     string  `yaml:"base_url,omitempty" validate:"omitempty,url"`
	APIKeyEnv   string  `yaml:"api_key_env,omitempty"`
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	TimeoutSecs int     `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=3600"`
	MaxRetries  int     `yaml:"max_retries,omitempty" validate:"omitempty,min=0,max=10"`
}

// CacheSettings controls the on-disk LLM response cache.
type CacheSettings struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"`
}

// TerraformSettings configures how the provisioning tool is invoked.
type TerraformSettings struct {
	Binary string `yaml:"binary,omitempty"`
}

// Defaults returns the settings used when no settings file exists. They
// target a local Ollama instance so the tool works without credentials.
func Defaults() *Settings {
	return &Settings{
		LLM: LLMSettings{
			Provider:    "ollama",
			Model:       "phi4:latest",
			BaseURL:     "http://localhost:11434/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.2,
			TimeoutSecs: 300,
			MaxRetries:  2,
		},
		Cache: CacheSettings{
			Enabled: true,
		},
		Terraform: TerraformSettings{
			Binary: "terraform",
		},
	}
}

// DefaultPath returns the conventional settings file location under the
// user's config directory.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "terraform-secure", "settings.yaml")
}

// CacheDir resolves the cache directory, falling back to the user cache dir
// when none is configured.
func (s *Settings) CacheDir() string {
	if s.Cache.Dir != "" {
		return s.Cache.Dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "terraform-secure")
}
