package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/GiftinTech/Loan-Calculator/internal/config"
	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string                  `yaml:"address"`
	MaxBodySize   string                  `yaml:"maxBodySize"`
	Logging       config.LoggingConfig    `yaml:"logging"`
	Validation    config.ValidationConfig `yaml:"validation"`
	Store         config.StoreConfig      `yaml:"store"`
	bodySizeBytes int64
}

// sizeUnits are the suffixes accepted by ParseSize. A JSON loan request is a
// few hundred bytes, so nothing beyond megabytes is offered.
var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
}

// maxBodySizeBytes bounds any configured body limit.
const maxBodySizeBytes int64 = 1 << 30

func defaultConfig() *Config {
	return &Config{
		Address:     constants.DefaultServerAddress,
		MaxBodySize: strconv.FormatInt(constants.DefaultMaxBodySizeBytes, 10),
		Store: config.StoreConfig{
			Backend: constants.StoreBackendMemory,
			Key:     constants.DefaultStoreKey,
		},
		bodySizeBytes: constants.DefaultMaxBodySizeBytes,
	}
}

// LoadConfig reads the server configuration from a YAML file. A missing file
// or an empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes replaces the request body limit; non-positive sizes are
// ignored.
func (c *Config) SetBodySizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.bodySizeBytes = size
	c.MaxBodySize = strconv.FormatInt(size, 10)
}

func (c *Config) applyDefaults() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.Store.Backend == "" {
		c.Store.Backend = constants.StoreBackendMemory
	}
	if c.Store.Key == "" {
		c.Store.Key = constants.DefaultStoreKey
	}

	size, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid maxBodySize: %w", err)
	}
	c.bodySizeBytes = constants.DefaultMaxBodySizeBytes
	c.SetBodySizeBytes(size)
	return nil
}

// ParseSize converts a byte count with an optional B, K or M suffix (e.g.
// "512", "64K", "1MB") into bytes. An empty value selects the default limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	digits := strings.TrimRightFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	unit := strings.TrimSpace(trimmed[len(digits):])
	if digits == "" {
		return 0, fmt.Errorf("size %q has no number", value)
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("size %q has unsupported unit %q", value, unit)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(digits), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("size %q: %w", value, err)
	}
	if n > maxBodySizeBytes/multiplier {
		return 0, fmt.Errorf("size %q exceeds %d bytes", value, maxBodySizeBytes)
	}
	return n * multiplier, nil
}
