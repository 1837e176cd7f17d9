package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultWidth     = 120
	DefaultHeight    = 150
	DefaultFilter    = "nearest"
	DefaultLimit     = 10
	DefaultExtension = "tif"
)

// Create new config instance with the run defaults
func NewConfig() *Config {
	return &Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Filter:    DefaultFilter,
		Limit:     DefaultLimit,
		Extension: DefaultExtension,
	}
}

// Load configuration file in json format
func (c *Config) Read(file string) error {
	data, err := os.ReadFile(file)
	if err == nil {
		_ = json.Unmarshal(data, c)
	}
	return err
}

var validate = validator.New()

// Validate checks the config before any file is touched. It returns the
// first violation as a human-readable error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	e := verrs[0]
	field := strings.ToLower(e.Field())
	switch {
	case e.Tag() == "required":
		return fmt.Errorf("%s is required", field)
	case e.Tag() == "oneof":
		return fmt.Errorf("cannot parse filter type %q: the only authorized values are 'nearest', 'triangle', 'gaussian', 'catmull-rom', 'lanczos3'", c.Filter)
	case e.Tag() == "gt":
		return fmt.Errorf("%s must be a positive integer", field)
	case e.Tag() == "gte":
		return fmt.Errorf("%s must not be negative", field)
	default:
		return fmt.Errorf("%s has an invalid value", field)
	}
}
