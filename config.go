// SPDX-License-Identifier: Apache-2.0

package dynarray

import (
	"flag"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// Config describes a monotonic allocator for embedding in a host's configuration.
type Config struct {
	MinRegionSize      int `yaml:"min_region_size"`
	InitialRegionCount int `yaml:"initial_region_count"`
	MaxBytes           int `yaml:"max_bytes"`
}

// RegisterFlags registers the flags with the "dynarray." prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("dynarray.", f)
}

// RegisterFlagsWithPrefix registers the flags with the given prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.MinRegionSize, prefix+"min-region-size", minRegionSize, "Minimum size in bytes of each allocator region.")
	f.IntVar(&cfg.InitialRegionCount, prefix+"initial-region-count", 1, "Number of regions created up front.")
	f.IntVar(&cfg.MaxBytes, prefix+"max-bytes", 0, "Upper bound in bytes for all regions together. 0 means unbounded.")
}

// Validate checks the config for consistency.
func (cfg *Config) Validate() error {
	if cfg.MinRegionSize < 0 {
		return errors.Errorf("invalid min region size %d", cfg.MinRegionSize)
	}
	if cfg.InitialRegionCount < 0 {
		return errors.Errorf("invalid initial region count %d", cfg.InitialRegionCount)
	}
	if cfg.MaxBytes < 0 {
		return errors.Errorf("invalid max bytes %d", cfg.MaxBytes)
	}
	if cfg.MaxBytes > 0 && cfg.InitialRegionCount > 0 && cfg.MinRegionSize > cfg.MaxBytes/cfg.InitialRegionCount {
		return errors.Errorf("initial regions (%d x %d bytes) exceed max bytes %d", cfg.InitialRegionCount, cfg.MinRegionSize, cfg.MaxBytes)
	}
	return nil
}

// NewAllocatorFromConfig validates cfg and builds the allocator it describes.
func NewAllocatorFromConfig(cfg Config, logger log.Logger) (Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "dynarray config")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return NewMonotonicAllocator(
		WithMinRegionSize(cfg.MinRegionSize),
		WithInitialRegionCount(cfg.InitialRegionCount),
		WithMaxBytes(cfg.MaxBytes),
		WithLogger(logger),
	), nil
}
