package runtime

import (
	"bytes"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/transcoder"
)

// Backend selects which core implementation a Runtime drives.
type Backend string

const (
	// BackendNative is the in-process reference core.
	BackendNative Backend = "native"
	// BackendWazero is a wasm build of the core hosted by wazero.
	BackendWazero Backend = "wazero"
)

// Reclaim selects how unreachable wrappers release native objects.
type Reclaim string

const (
	// ReclaimGC releases objects from Go runtime cleanups.
	ReclaimGC Reclaim = "gc"
	// ReclaimManual queues releases until the caller collects them.
	ReclaimManual Reclaim = "manual"
)

// Config configures a Runtime.
type Config struct {
	Backend    Backend `yaml:"backend" validate:"required,oneof=native wazero"`
	ModulePath string  `yaml:"module_path" validate:"required_if=Backend wazero"`
	Reclaim    Reclaim `yaml:"reclaim" validate:"required,oneof=gc manual"`
	// MemoryLimitPages caps linear memory in 64KiB pages. 0 keeps the
	// backend default.
	MemoryLimitPages  uint32 `yaml:"memory_limit_pages" validate:"lte=65536"`
	WriteableCapacity uint32 `yaml:"writeable_capacity" validate:"gte=1"`
	LogLevel          string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Backend:           BackendNative,
		Reclaim:           ReclaimGC,
		WriteableCapacity: transcoder.DefaultWriteableCapacity,
		LogLevel:          "warn",
	}
}

// Validate checks the configuration against its field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Config("invalid configuration", err)
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, errors.Config("decode yaml", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Config("read "+path, err)
	}
	return ParseConfig(data)
}
