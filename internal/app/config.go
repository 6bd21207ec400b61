package app

import (
	"errors"

	"github.com/specialistvlad/irlink/internal/config"
)

// Config holds everything an App needs to run.
type Config struct {
	// SectionPaths are .hcl section files or directories holding them.
	SectionPaths []string
	Options      config.Options
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SectionPaths) == 0 {
		return nil, errors.New("at least one section path is required")
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	cfg.SectionPaths = append([]string(nil), cfg.SectionPaths...)
	return &cfg, nil
}
