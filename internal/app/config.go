package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// AppConfig holds all the necessary configuration for an App instance to run.
type AppConfig struct {
	// InputPath is a .hcl file, a directory of .hcl files or an .xml data file.
	InputPath   string `toml:"input" validate:"required_without=ServePort"`
	InputFormat string `toml:"input_format" validate:"oneof=auto hcl xml"`

	// OutputPath is where the plan is written; empty means the app's writer.
	OutputPath   string `toml:"output"`
	OutputFormat string `toml:"output_format" validate:"oneof=json yaml hcl msgpack"`

	Weighting string `toml:"weighting" validate:"oneof=edge fractional"`
	Verify    bool   `toml:"verify"`

	LogFormat string `toml:"log_format" validate:"oneof=text json"`
	LogLevel  string `toml:"log_level" validate:"oneof=debug info warn error"`

	// ServePort starts the plan server instead of a one-shot run. 0 is disabled.
	ServePort int `toml:"serve_port" validate:"min=0,max=65535"`

	NotifyURL       string `toml:"notify_url" validate:"omitempty,url"`
	NotifyNamespace string `toml:"notify_namespace"`
}

var configValidate = validator.New()

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		InputFormat:     "auto",
		OutputFormat:    "json",
		Weighting:       "edge",
		LogFormat:       "text",
		LogLevel:        "info",
		NotifyNamespace: "/",
	}
}

// LoadConfigFile decodes a TOML file on top of cfg. Keys missing from the
// file keep their current values.
func LoadConfigFile(path string, cfg *AppConfig) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// NewConfig normalizes and validates cfg.
func NewConfig(cfg AppConfig) (*AppConfig, error) {
	cfg.InputFormat = strings.ToLower(cfg.InputFormat)
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	cfg.Weighting = strings.ToLower(cfg.Weighting)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := configValidate.Struct(&cfg); err != nil {
		return nil, configError(err)
	}
	return &cfg, nil
}

// configError turns validator output into one readable line per field.
func configError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required_without":
			msgs = append(msgs, fmt.Sprintf("%s is required unless the plan server is enabled", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("invalid %s %q: must be one of %s", fe.Field(), fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("invalid %s %v: failed %q", fe.Field(), fe.Value(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
