package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Scan      ScanConfig      `yaml:"scan"`
	Output    OutputConfig    `yaml:"output"`
}

// SynthesisConfig holds configuration for the synthesis service call
type SynthesisConfig struct {
	// Provider selects the chat-completion backend ("groq" or "openai")
	Provider string `yaml:"provider"`
	// Model is the model identifier, e.g. "openai/gpt-oss-120b"
	Model string `yaml:"model"`
	// BaseURL overrides the API endpoint (Groq exposes an
	// OpenAI-compatible API under /openai/v1)
	BaseURL string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `yaml:"api_key_env"`
	// Temperature controls the randomness of the output
	Temperature float64 `yaml:"temperature"`
	// MaxTokens limits the length of the generated response
	MaxTokens int `yaml:"max_tokens"`
	// MaxRequestChars bounds the serialized size of one request payload
	MaxRequestChars int `yaml:"max_request_chars"`
}

// ScanConfig holds limits for the route-file scan
type ScanConfig struct {
	MaxFiles        int   `yaml:"max_files"`
	MaxContentChars int   `yaml:"max_content_chars"`
	MaxFileSize     int64 `yaml:"max_file_size"`
}

// OutputConfig holds output configuration
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoadConfig loads the configuration from the given YAML file. A missing
// file is not an error: the defaults mirror the constants the tool shipped
// with and keep the CLI usable without any setup.
func LoadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	// Set default values if not specified
	if config.Synthesis.Provider == "" {
		config.Synthesis.Provider = "groq"
	}
	if config.Synthesis.Model == "" {
		config.Synthesis.Model = "openai/gpt-oss-120b"
	}
	if config.Synthesis.APIKeyEnv == "" {
		config.Synthesis.APIKeyEnv = "GROQ_API_KEY"
	}
	if config.Synthesis.Temperature == 0 {
		config.Synthesis.Temperature = 0.2
	}
	if config.Synthesis.MaxTokens == 0 {
		config.Synthesis.MaxTokens = 8192
	}
	if config.Synthesis.MaxRequestChars == 0 {
		config.Synthesis.MaxRequestChars = 12000
	}
	if config.Scan.MaxFiles == 0 {
		config.Scan.MaxFiles = 25
	}
	if config.Scan.MaxContentChars == 0 {
		config.Scan.MaxContentChars = 8000
	}
	if config.Scan.MaxFileSize == 0 {
		config.Scan.MaxFileSize = 512 * 1024
	}
	if config.Output.Dir == "" {
		config.Output.Dir = "out"
	}

	return &config, nil
}
