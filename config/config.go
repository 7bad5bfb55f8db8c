package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	defaultWaitTimeSeconds   = 20
	defaultMaxMessages       = 10
	defaultClientIdleSeconds = 10
	defaultLogLevel          = "info"
)

type Config struct {
	Aws                   *AWSsqsConfig `yaml:"aws"`
	LogFilePath           string        `yaml:"logFile"`
	LogLevel              string        `yaml:"logLevel"`
	ClientsInputPath      string        `yaml:"clientsInputPath"`
	ServerWaitTimeSeconds int64         `yaml:"serverWaitTimeSeconds"`
	MaxMessages           int64         `yaml:"maxMessages"`
	ClientIdleSeconds     int64         `yaml:"clientIdleSeconds"`
	HTTPAddr              string        `yaml:"httpAddr"`
}

type AWSsqsConfig struct {
	QueueUrl     string `yaml:"url"`
	Region       string `yaml:"region"`
	ClientId     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	ClientToken  string `yaml:"clientToken"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML after substituting ${VAR} references from the
// environment, then applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	confContent := []byte(os.ExpandEnv(string(data)))

	config := &Config{}

	err := yaml.Unmarshal(confContent, config)
	if err != nil {
		return nil, err
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ServerWaitTimeSeconds == 0 {
		cfg.ServerWaitTimeSeconds = defaultWaitTimeSeconds
	}
	if cfg.MaxMessages == 0 {
		cfg.MaxMessages = defaultMaxMessages
	}
	if cfg.ClientIdleSeconds == 0 {
		cfg.ClientIdleSeconds = defaultClientIdleSeconds
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

func (c *Config) Validate() error {
	if c.Aws == nil {
		return errors.New("aws section is required")
	}
	if c.Aws.QueueUrl == "" {
		return errors.New("aws.url is required")
	}
	if c.Aws.Region == "" {
		return errors.New("aws.region is required")
	}
	// SQS long polling is capped at 20 seconds and 10 messages per receive.
	if c.ServerWaitTimeSeconds < 1 || c.ServerWaitTimeSeconds > 20 {
		return errors.New("serverWaitTimeSeconds must be between 1 and 20")
	}
	if c.MaxMessages < 1 || c.MaxMessages > 10 {
		return errors.New("maxMessages must be between 1 and 10")
	}
	if c.ClientIdleSeconds < 0 {
		return errors.New("clientIdleSeconds must not be negative")
	}

	return nil
}
