package config

import (
	"errors"
	"fmt"
	"os"

	json "github.com/json-iterator/go"
)

type (
	URI struct {
		// MaxRequestLine limits the number of bytes the request line may take before its
		// terminating CRLF. Longer request lines are rejected with 414 URI Too Long.
		MaxRequestLine int `json:"maxRequestLine"`
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int `json:"readBufferSize"`
	}
)

// Config is constructed once at the process start and passed down explicitly. There are
// no global instances.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because zero values aren't valid for most of the fields.
type Config struct {
	// Port to listen on. 0 picks an ephemeral port.
	Port int `json:"port" test:"nullable"`
	// Webroot is the directory files are served from.
	Webroot string `json:"webroot"`
	// Workers is the number of connections served simultaneously. Connections accepted
	// above this number wait until a worker is released.
	Workers int `json:"workers"`
	URI     URI `json:"uri"`
	NET     NET `json:"net"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Port:    8080,
		Webroot: ".",
		Workers: 10,
		URI: URI{
			MaxRequestLine: 8192,
		},
		NET: NET{
			ReadBufferSize: 4 * 1024,
		},
	}
}

var decoder = json.Config{DisallowUnknownFields: true}.Froze()

// Load reads a JSON configuration file on top of defaults, so omitted fields keep
// their default values. The result isn't validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse does the same as Load, but takes the file contents.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decoder.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: malformed JSON: %w", err)
	}

	return cfg, nil
}

var (
	ErrBadPort           = errors.New("config: port must be in range 0..65535")
	ErrBadWorkers        = errors.New("config: workers must be positive")
	ErrBadRequestLine    = errors.New("config: uri.maxRequestLine must be positive")
	ErrBadReadBufferSize = errors.New("config: net.readBufferSize must be positive")
)

// Validate checks the values and the webroot directory existence.
func (c *Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return ErrBadPort
	case c.Workers < 1:
		return ErrBadWorkers
	case c.URI.MaxRequestLine < 1:
		return ErrBadRequestLine
	case c.NET.ReadBufferSize < 1:
		return ErrBadReadBufferSize
	}

	stat, err := os.Stat(c.Webroot)
	if err != nil {
		return fmt.Errorf("config: webroot: %w", err)
	}

	if !stat.IsDir() {
		return fmt.Errorf("config: webroot: %s is not a directory", c.Webroot)
	}

	return nil
}
