package vessel

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// DwellSampler draws the randomized base duration a vessel stays moored.
type DwellSampler interface {
	Sample() time.Duration
}

// DwellConfig selects and parameterizes the dwell-duration distribution.
type DwellConfig struct {
	// Distribution is one of "normal", "lognormal" or "uniform".
	Distribution string  `json:"distribution"`
	MeanSeconds  float64 `json:"mean_seconds"`
	SigmaSeconds float64 `json:"sigma_seconds"`
	MinSeconds   float64 `json:"min_seconds"`
	MaxSeconds   float64 `json:"max_seconds"`
}

// SetDefaults applies the default dwell distribution.
func (c *DwellConfig) SetDefaults() {
	if c.Distribution == "" {
		c.Distribution = "uniform"
	}
	if c.MaxSeconds == 0 {
		c.MaxSeconds = 20
	}
	if c.MinSeconds == 0 && c.Distribution == "uniform" {
		c.MinSeconds = 10
	}
}

// Validate checks the distribution parameters.
func (c DwellConfig) Validate() error {
	switch c.Distribution {
	case "normal", "lognormal":
		if c.SigmaSeconds <= 0 {
			return fmt.Errorf("dwell: sigma must be positive for %s", c.Distribution)
		}
	case "uniform":
		if c.MaxSeconds <= c.MinSeconds {
			return fmt.Errorf("dwell: max must exceed min")
		}
	default:
		return fmt.Errorf("dwell: unknown distribution %q", c.Distribution)
	}
	if c.MinSeconds < 0 {
		return fmt.Errorf("dwell: min must be non-negative")
	}
	return nil
}

// distDwell clamps samples from the underlying distribution into [min,max].
type distDwell struct {
	dist distuv.Rander
	min  time.Duration
	max  time.Duration
}

func (d distDwell) Sample() time.Duration {
	v := time.Duration(d.dist.Rand() * float64(time.Second))
	if v < d.min {
		v = d.min
	}
	if d.max > 0 && v > d.max {
		v = d.max
	}
	return v
}

// NewDwellSampler builds a sampler from the configuration.
func NewDwellSampler(cfg DwellConfig) (DwellSampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var dist distuv.Rander
	switch cfg.Distribution {
	case "normal":
		dist = distuv.Normal{Mu: cfg.MeanSeconds, Sigma: cfg.SigmaSeconds}
	case "lognormal":
		dist = distuv.LogNormal{Mu: cfg.MeanSeconds, Sigma: cfg.SigmaSeconds}
	case "uniform":
		dist = distuv.Uniform{Min: cfg.MinSeconds, Max: cfg.MaxSeconds}
	}
	return distDwell{
		dist: dist,
		min:  time.Duration(cfg.MinSeconds * float64(time.Second)),
		max:  time.Duration(cfg.MaxSeconds * float64(time.Second)),
	}, nil
}

// FixedDwell always returns the same duration; used in tests and as a
// degenerate configuration.
type FixedDwell time.Duration

// Sample returns the fixed duration.
func (f FixedDwell) Sample() time.Duration { return time.Duration(f) }
