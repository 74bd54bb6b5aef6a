// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads vocabutil configuration files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-vocab"
	"github.com/ianlewis/go-vocab/table"
)

// ErrInvalid indicates that a configuration value is invalid.
var ErrInvalid = errors.New("invalid config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the vocabutil configuration.
type Config struct {
	// File is the vocabulary file path or URI.
	File string `yaml:"file"`

	// Layout is the table entry layout, "terminated" or "packed".
	Layout string `yaml:"layout" validate:"oneof=terminated packed"`

	// CacheSize is the number of decoded tables kept in memory.
	CacheSize int `yaml:"cache_size" validate:"gte=0"`

	// Concurrency is the number of sub-tables fetched at once.
	Concurrency int `yaml:"concurrency" validate:"gte=1,lte=256"`

	// MaxResults is the maximum number of query results. Zero is unlimited.
	MaxResults int `yaml:"max_results" validate:"gte=0"`

	// LogLevel is the minimum level logged to stderr.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout:      table.Terminated.String(),
		CacheSize:   vocab.DefaultOptions.CacheSize,
		Concurrency: vocab.DefaultOptions.Concurrency,
		MaxResults:  vocab.DefaultOptions.MaxResults,
		LogLevel:    "warn",
	}
}

// Load reads the configuration file at path. Values missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read reads a YAML configuration from r.
func Read(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s: %q fails %q", ErrInvalid, fe.Field(), fmt.Sprint(fe.Value()), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// TableLayout returns the configured table layout.
func (c *Config) TableLayout() table.Layout {
	if c.Layout == table.Packed.String() {
		return table.Packed
	}
	return table.Terminated
}

// VocabOptions returns options for opening vocabularies.
func (c *Config) VocabOptions(log *zap.Logger) *vocab.Options {
	return &vocab.Options{
		Layout:      c.TableLayout(),
		Logger:      log,
		CacheSize:   c.CacheSize,
		Concurrency: c.Concurrency,
		MaxResults:  c.MaxResults,
	}
}
