// ABOUTME: Settings loading with viper: JSON config file, AUTOMATE_* env overrides, defaults
// ABOUTME: Also saves settings back to disk and validates the run preconditions

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when a run is attempted without a credential.
var ErrMissingAPIKey = errors.New("API key not configured")

// Default values mirror the OpenAI public endpoint with a vision-capable model.
const (
	DefaultEndpoint       = "https://api.openai.com/v1"
	DefaultModel          = "gpt-4o"
	DefaultMaxTokens      = 4096
	DefaultTemperature    = 0.7
	DefaultCaptureCommand = "import -window root png:-"
	DefaultMaxImageDim    = 1568
	DefaultTreeDepth      = 2
	DefaultRequestTimeout = 5 * time.Minute
	envPrefix             = "AUTOMATE"
)

// Settings holds the effective configuration.
type Settings struct {
	Endpoint       string        `mapstructure:"endpoint" json:"endpoint"`
	APIKey         string        `mapstructure:"api_key" json:"api_key"`
	Model          string        `mapstructure:"model" json:"model"`
	SupportsVision bool          `mapstructure:"supports_vision" json:"supports_vision"`
	MaxTokens      int           `mapstructure:"max_tokens" json:"max_tokens"`
	Temperature    float64       `mapstructure:"temperature" json:"temperature"`
	GuidesDir      string        `mapstructure:"guides_dir" json:"guides_dir"`
	CaptureCommand string        `mapstructure:"capture_command" json:"capture_command"`
	MaxImageDim    int           `mapstructure:"max_image_dim" json:"max_image_dim"`
	TreeDepth      int           `mapstructure:"tree_depth" json:"tree_depth"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"-"`
	LogLevel       string        `mapstructure:"log_level" json:"log_level"`
}

// Default returns Settings populated with built-in defaults.
func Default() *Settings {
	return &Settings{
		Endpoint:       DefaultEndpoint,
		Model:          DefaultModel,
		SupportsVision: true,
		MaxTokens:      DefaultMaxTokens,
		Temperature:    DefaultTemperature,
		GuidesDir:      DefaultGuidesDir(),
		CaptureCommand: DefaultCaptureCommand,
		MaxImageDim:    DefaultMaxImageDim,
		TreeDepth:      DefaultTreeDepth,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("api_key", "")
	v.SetDefault("model", d.Model)
	v.SetDefault("supports_vision", d.SupportsVision)
	v.SetDefault("max_tokens", d.MaxTokens)
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("guides_dir", d.GuidesDir)
	v.SetDefault("capture_command", d.CaptureCommand)
	v.SetDefault("max_image_dim", d.MaxImageDim)
	v.SetDefault("tree_depth", d.TreeDepth)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads settings from path (GlobalConfigFile when empty), then applies
// AUTOMATE_* environment overrides. A missing file is not an error.
// OPENAI_API_KEY is honored when AUTOMATE_API_KEY is unset.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = GlobalConfigFile()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", envPrefix+"_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding api_key env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}

	ResolveEnvVars(&s)
	if s.GuidesDir == "" {
		s.GuidesDir = DefaultGuidesDir()
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = DefaultRequestTimeout
	}

	return &s, nil
}

// savedSettings is the on-disk shape; durations are stored as strings ("5m0s").
type savedSettings struct {
	*Settings
	RequestTimeout string `json:"request_timeout,omitempty"`
}

// Save writes settings as indented JSON to path, creating parent directories.
// The file is written with 0o600 since it may hold the API key.
func Save(path string, s *Settings) error {
	if path == "" {
		path = GlobalConfigFile()
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	out := savedSettings{Settings: s}
	if s.RequestTimeout > 0 {
		out.RequestTimeout = s.RequestTimeout.String()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the preconditions for contacting the endpoint.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.APIKey) == "" {
		return ErrMissingAPIKey
	}
	u, err := url.Parse(s.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q", s.Endpoint)
	}
	if s.Model == "" {
		return errors.New("model not configured")
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", s.MaxTokens)
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %g", s.Temperature)
	}
	return nil
}

// Redacted returns a copy with the API key masked, for display.
func (s *Settings) Redacted() *Settings {
	c := *s
	switch {
	case c.APIKey == "":
	case len(c.APIKey) <= 8:
		c.APIKey = "****"
	default:
		c.APIKey = c.APIKey[:3] + "..." + c.APIKey[len(c.APIKey)-4:]
	}
	return &c
}
