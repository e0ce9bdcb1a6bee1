// Package fleet generates randomized vessel arrivals. The generator owns
// arrival timing and randomization; admission and lifecycle belong to the
// port authority and the vessel actors.
package fleet

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/logger"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
)

// Config parameterizes fleet generation.
type Config struct {
	// Size is the total number of arriving vessels.
	Size int `json:"size"`
	// Seed makes a run reproducible; 0 seeds from the clock.
	Seed int64 `json:"seed"`
	// Vessel length range in meters, inclusive.
	MinLength int `json:"min_length_m"`
	MaxLength int `json:"max_length_m"`
	// Vessel width range in meters, inclusive.
	MinWidth int `json:"min_width_m"`
	MaxWidth int `json:"max_width_m"`
	// LowOilPct is the fraction of arrivals below the low-oil threshold.
	LowOilPct float64 `json:"low_oil_pct"`
	// CleaningPct / RepairPct are the fractions needing each service.
	CleaningPct float64 `json:"cleaning_pct"`
	RepairPct   float64 `json:"repair_pct"`
	// StaggerMS separates consecutive arrivals.
	StaggerMS int `json:"stagger_ms"`
}

// SetDefaults applies the reference arrival parameters.
func (c *Config) SetDefaults() {
	if c.Size == 0 {
		c.Size = 20
	}
	if c.MinLength == 0 {
		c.MinLength = 10
	}
	if c.MaxLength == 0 {
		c.MaxLength = 40
	}
	if c.MinWidth == 0 {
		c.MinWidth = 5
	}
	if c.MaxWidth == 0 {
		c.MaxWidth = 10
	}
	if c.StaggerMS == 0 {
		c.StaggerMS = 500
	}
}

// Validate checks the generation ranges.
func (c Config) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("fleet: size must be non-negative")
	}
	if c.MinLength <= 0 || c.MaxLength < c.MinLength {
		return fmt.Errorf("fleet: invalid length range [%d,%d]", c.MinLength, c.MaxLength)
	}
	if c.MinWidth <= 0 || c.MaxWidth < c.MinWidth {
		return fmt.Errorf("fleet: invalid width range [%d,%d]", c.MinWidth, c.MaxWidth)
	}
	for _, p := range []float64{c.LowOilPct, c.CleaningPct, c.RepairPct} {
		if p < 0 || p > 1 {
			return fmt.Errorf("fleet: percentages must be within [0,1]")
		}
	}
	return nil
}

// Generator produces vessels with monotonic ids.
type Generator struct {
	cfg Config
	rng *rand.Rand
	log logger.Logger
}

// New creates a generator. A zero seed falls back to the wall clock.
func New(cfg Config, log logger.Logger) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed)), log: log}
}

// lowOilThreshold mirrors the default vessel threshold; arrivals flagged as
// low-oil draw below it, the rest at or above.
const lowOilThreshold = 50

// next draws one vessel with the given id.
func (g *Generator) next(id int) model.Vessel {
	v := model.Vessel{
		ID:            id,
		Length:        g.between(g.cfg.MinLength, g.cfg.MaxLength),
		Width:         g.between(g.cfg.MinWidth, g.cfg.MaxWidth),
		NeedsCleaning: g.rng.Float64() < g.cfg.CleaningPct,
		NeedsRepair:   g.rng.Float64() < g.cfg.RepairPct,
	}
	if g.rng.Float64() < g.cfg.LowOilPct {
		v.OilLevel = g.rng.Intn(lowOilThreshold)
	} else {
		v.OilLevel = lowOilThreshold + g.rng.Intn(100-lowOilThreshold+1)
	}
	return v
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// Generate produces the whole fleet up front with ids 1..Size.
func (g *Generator) Generate() []model.Vessel {
	vessels := make([]model.Vessel, 0, g.cfg.Size)
	for i := 1; i <= g.cfg.Size; i++ {
		vessels = append(vessels, g.next(i))
	}
	return vessels
}

// Run emits staggered arrivals through spawn until the fleet is exhausted or
// ctx is canceled.
func (g *Generator) Run(ctx context.Context, spawn func(model.Vessel)) error {
	stagger := time.Duration(g.cfg.StaggerMS) * time.Millisecond
	for i := 1; i <= g.cfg.Size; i++ {
		v := g.next(i)
		g.log.Debugw("vessel arriving", map[string]any{
			"vessel": v.ID, "length": v.Length, "width": v.Width, "oil": v.OilLevel,
		})
		spawn(v)
		if i == g.cfg.Size {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(stagger):
		}
	}
	return nil
}
