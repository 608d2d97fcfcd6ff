package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultWorkers     = 4
	defaultTaskTimeout = 30 * time.Second
	defaultBasename    = "table_metadata"
)

type Config struct {
	Engine     EngineConfig  `yaml:"engine"`
	Namespace  string        `yaml:"namespace"`
	Tables     []string      `yaml:"tables"`
	TablesFile string        `yaml:"tables_file"`
	Run        RunConfig     `yaml:"run"`
	Output     OutputConfig  `yaml:"output"`
	Publish    PublishConfig `yaml:"publish"`
	Notify     NotifyConfig  `yaml:"notify"`
}

type EngineConfig struct {
	DSN string `yaml:"dsn"`
}

type RunConfig struct {
	Workers     int      `yaml:"workers"`
	TaskTimeout Duration `yaml:"task_timeout"`
}

type OutputConfig struct {
	Dir      string   `yaml:"dir"`
	Basename string   `yaml:"basename"`
	Formats  []string `yaml:"formats"`
}

type PublishConfig struct {
	Command []string `yaml:"command"`
	Dest    string   `yaml:"dest"`
}

func (c PublishConfig) Enabled() bool {
	return len(c.Command) > 0 || c.Dest != ""
}

type NotifyConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func (c NotifyConfig) Enabled() bool {
	return len(c.Brokers) > 0 || c.Topic != ""
}

// Duration parses yaml scalars like "30s" through time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Run.Workers == 0 {
		c.Run.Workers = defaultWorkers
	}
	if c.Run.TaskTimeout == 0 {
		c.Run.TaskTimeout = Duration(defaultTaskTimeout)
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.Basename == "" {
		c.Output.Basename = defaultBasename
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"csv", "json"}
	}
}

func (c *Config) validate() error {
	if c.Engine.DSN == "" {
		return errors.New("engine.dsn is required")
	}
	if c.Namespace == "" {
		return errors.New("namespace is required")
	}
	if c.Run.Workers < 1 {
		return errors.New("run.workers must be at least 1")
	}
	if c.Run.TaskTimeout <= 0 {
		return errors.New("run.task_timeout must be positive")
	}
	for _, format := range c.Output.Formats {
		switch format {
		case "csv", "json", "parquet":
		default:
			return fmt.Errorf("unsupported output format %q", format)
		}
	}
	if c.Publish.Enabled() {
		if len(c.Publish.Command) == 0 {
			return errors.New("publish.command is required when publishing is configured")
		}
		if c.Publish.Dest == "" {
			return errors.New("publish.dest is required when publishing is configured")
		}
	}
	if c.Notify.Enabled() {
		if len(c.Notify.Brokers) == 0 {
			return errors.New("notify.brokers is required when notify is configured")
		}
		if c.Notify.Topic == "" {
			return errors.New("notify.topic is required when notify is configured")
		}
	}
	return nil
}
