// Package config loads the simulation configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/fleet"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/metrics"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/vessel"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/mqtt"
)

// Config is the root configuration document.
type Config struct {
	Port    PortConfig     `json:"port"`
	Queue   QueueConfig    `json:"queue"`
	Crews   CrewConfig     `json:"crews"`
	Vessels VesselConfig   `json:"vessels"`
	Fleet   fleet.Config   `json:"fleet"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
	API     APIConfig      `json:"api"`
	Sentry  SentryConfig   `json:"sentry"`
	Results ResultsConfig  `json:"results"`
	Export  ExportConfig   `json:"export"`
	Logging LoggingConfig  `json:"logging"`
}

// PortConfig shapes the berth grid.
type PortConfig struct {
	Rows          int `json:"rows"`
	Cols          int `json:"cols"`
	SlotSizeM     int `json:"slot_size_m"`
	QuayStartGap  int `json:"quay_start_gap"`
	QuayGapGrowth int `json:"quay_gap_growth"`
}

// SetDefaults applies the reference port dimensions.
func (c *PortConfig) SetDefaults() {
	if c.Rows == 0 {
		c.Rows = 5
	}
	if c.Cols == 0 {
		c.Cols = 12
	}
	if c.SlotSizeM == 0 {
		c.SlotSizeM = 10
	}
	if c.QuayStartGap == 0 {
		c.QuayStartGap = 3
	}
	if c.QuayGapGrowth == 0 {
		c.QuayGapGrowth = 1
	}
}

// Validate checks the grid dimensions.
func (c PortConfig) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("port: grid must have positive dimensions")
	}
	if c.SlotSizeM <= 0 {
		return fmt.Errorf("port: slot size must be positive")
	}
	if c.QuayStartGap <= 0 || c.QuayGapGrowth < 0 {
		return fmt.Errorf("port: invalid quay plan")
	}
	return nil
}

// QueueConfig bounds the observation mirrors.
type QueueConfig struct {
	WaitingCapacity int `json:"waiting_capacity"`
	DockedCapacity  int `json:"docked_capacity"`
}

// SetDefaults applies the reference mirror capacities.
func (c *QueueConfig) SetDefaults() {
	if c.WaitingCapacity == 0 {
		c.WaitingCapacity = 10
	}
	if c.DockedCapacity == 0 {
		c.DockedCapacity = 20
	}
}

// Validate checks the capacities.
func (c QueueConfig) Validate() error {
	if c.WaitingCapacity <= 0 || c.DockedCapacity <= 0 {
		return fmt.Errorf("queue: capacities must be positive")
	}
	return nil
}

// CrewConfig sizes the service crews.
type CrewConfig struct {
	Cleaning  int `json:"cleaning"`
	Repair    int `json:"repair"`
	ServiceMS int `json:"service_ms"`
	PollMS    int `json:"poll_ms"`
}

// SetDefaults applies the reference crew sizes and timings.
func (c *CrewConfig) SetDefaults() {
	if c.Cleaning == 0 {
		c.Cleaning = 2
	}
	if c.Repair == 0 {
		c.Repair = 2
	}
	if c.ServiceMS == 0 {
		c.ServiceMS = 3000
	}
	if c.PollMS == 0 {
		c.PollMS = 1000
	}
}

// Validate checks the crew parameters.
func (c CrewConfig) Validate() error {
	if c.Cleaning < 0 || c.Repair < 0 {
		return fmt.Errorf("crews: sizes must be non-negative")
	}
	if c.ServiceMS <= 0 || c.PollMS <= 0 {
		return fmt.Errorf("crews: durations must be positive")
	}
	return nil
}

// VesselConfig parameterizes the vessel state machines.
type VesselConfig struct {
	TickMS             int                `json:"tick_ms"`
	LowOilThreshold    int                `json:"low_oil_threshold"`
	LongWaitTicks      int                `json:"long_wait_ticks"`
	RefuelStep         int                `json:"refuel_step"`
	RefuelIntervalMS   int                `json:"refuel_interval_ms"`
	ServiceExtensionMS int                `json:"service_extension_ms"`
	Dwell              vessel.DwellConfig `json:"dwell"`
}

// SetDefaults applies the reference thresholds and timings.
func (c *VesselConfig) SetDefaults() {
	if c.TickMS == 0 {
		c.TickMS = 1000
	}
	if c.LowOilThreshold == 0 {
		c.LowOilThreshold = 50
	}
	if c.LongWaitTicks == 0 {
		c.LongWaitTicks = 15
	}
	if c.RefuelStep == 0 {
		c.RefuelStep = 10
	}
	if c.RefuelIntervalMS == 0 {
		c.RefuelIntervalMS = 500
	}
	if c.ServiceExtensionMS == 0 {
		c.ServiceExtensionMS = 2000
	}
	c.Dwell.SetDefaults()
}

// Validate checks thresholds and the dwell distribution.
func (c VesselConfig) Validate() error {
	if c.TickMS <= 0 || c.RefuelIntervalMS <= 0 {
		return fmt.Errorf("vessels: intervals must be positive")
	}
	if c.LowOilThreshold < 0 || c.LowOilThreshold > 100 {
		return fmt.Errorf("vessels: low oil threshold outside [0,100]")
	}
	if c.LongWaitTicks < 0 {
		return fmt.Errorf("vessels: long wait ticks must be non-negative")
	}
	if c.RefuelStep <= 0 {
		return fmt.Errorf("vessels: refuel step must be positive")
	}
	return c.Dwell.Validate()
}

// APIConfig exposes the read-only status endpoints.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
	// Token, when non-empty, is required as a bearer token on every request.
	Token string `json:"token"`
}

// SetDefaults applies the default listen address.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks the listen address.
func (c APIConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return fmt.Errorf("api: addr required when enabled")
	}
	return nil
}

// SentryConfig defines settings for Sentry error monitoring. An empty DSN
// disables reporting.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Release          string  `json:"release"`
}

// ResultsConfig persists run summaries. An empty path disables the store.
type ResultsConfig struct {
	SQLitePath string `json:"sqlite_path"`
}

// ExportConfig writes the final run summary to a file. The format follows
// the extension (.json or .csv); an empty path disables the export.
type ExportConfig struct {
	Path string `json:"path"`
}

// Validate checks the export extension.
func (c ExportConfig) Validate() error {
	if c.Path == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".json", ".csv":
		return nil
	}
	return fmt.Errorf("export: unsupported extension on %q", c.Path)
}

// LoggingConfig tunes the zerolog output.
type LoggingConfig struct {
	// Level is one of zerolog's level names (debug, info, warn, error).
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

// SetDefaults applies production logging defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks the format selection.
func (c LoggingConfig) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("logging: unknown format %q", c.Format)
	}
	return nil
}

// Load reads the file, applies YPS_ environment overrides, fills defaults
// and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. YPS_PORT__ROWS=6.
	if err := k.Load(env.Provider("YPS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "yps_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills every section's defaults.
func (c *Config) ApplyDefaults() {
	c.Port.SetDefaults()
	c.Queue.SetDefaults()
	c.Crews.SetDefaults()
	c.Vessels.SetDefaults()
	c.Fleet.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.API.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Port.Validate(); err != nil {
		return err
	}
	if err := c.Queue.Validate(); err != nil {
		return err
	}
	if err := c.Crews.Validate(); err != nil {
		return err
	}
	if err := c.Vessels.Validate(); err != nil {
		return err
	}
	if err := c.Fleet.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Export.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}
