package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bratMaciek/Yacht-Port-Simulation/api/status"
	"github.com/bratMaciek/Yacht-Port-Simulation/config"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/crew"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/fleet"
	coremetrics "github.com/bratMaciek/Yacht-Port-Simulation/core/metrics"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/monitoring"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/port"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/registry"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/vessel"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/logger"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/metrics"
	infmon "github.com/bratMaciek/Yacht-Port-Simulation/infra/monitoring"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/mqtt"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/results"
	"github.com/bratMaciek/Yacht-Port-Simulation/internal/eventbus"
	"github.com/bratMaciek/Yacht-Port-Simulation/pkg/export"
)

// Service wires the port authority, crews, fleet generator and exporters
// together and runs one full simulation.
type Service struct {
	RunID     string
	Authority *port.Authority
	Crews     *crew.Pool
	Stats     *stats.Aggregator

	cfg       *config.Config
	bus       eventbus.EventBus
	log       logger.Logger
	sink      coremetrics.MetricsSink
	publisher mqtt.Publisher
	generator *fleet.Generator
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Logging.Format, cfg.Logging.Level)
	logg := logger.New("service")

	monitor, err := infmon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(monitor)

	bus := eventbus.New()
	plan := port.QuayPlan{
		StartGap:  cfg.Port.QuayStartGap,
		GapGrowth: cfg.Port.QuayGapGrowth,
		Cols:      cfg.Port.Cols,
	}
	grid := port.NewGrid(cfg.Port.Rows, cfg.Port.Cols, plan)
	waiting := registry.NewWaitingQueue(cfg.Queue.WaitingCapacity)
	docked := registry.NewDockedRegistry(cfg.Queue.DockedCapacity)
	authority := port.NewAuthority(grid, waiting, docked, cfg.Port.SlotSizeM, logger.New("authority"), bus)

	agg := stats.New()
	crews := crew.New(
		cfg.Crews.Cleaning, cfg.Crews.Repair,
		time.Duration(cfg.Crews.ServiceMS)*time.Millisecond,
		time.Duration(cfg.Crews.PollMS)*time.Millisecond,
		agg, bus, logger.New("crew"),
	)

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket,
		)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher mqtt.Publisher
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		publisher = pub
	}

	return &Service{
		RunID:     uuid.NewString(),
		Authority: authority,
		Crews:     crews,
		Stats:     agg,
		cfg:       cfg,
		bus:       bus,
		log:       logg,
		sink:      sink,
		publisher: publisher,
		generator: fleet.New(cfg.Fleet, logger.New("fleet")),
	}, nil
}

// Run starts the crews and exporters, spawns the fleet and blocks until
// every admitted vessel has left the port or the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.log.Infof("starting simulation run %s: %d vessels, %dx%d grid",
		s.RunID, s.cfg.Fleet.Size, s.cfg.Port.Rows, s.cfg.Port.Cols)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
				monitoring.CaptureException(err, map[string]string{"component": "prom"})
			}
		}()
	}
	if s.cfg.API.Enabled {
		handler := status.NewHandler(s.Authority, s.Crews, s.Stats, s.RunID, s.cfg.API.Token)
		go func() {
			if err := status.Serve(ctx, s.cfg.API.Addr, handler); err != nil {
				s.log.Errorf("status api: %v", err)
				monitoring.CaptureException(err, map[string]string{"component": "api"})
			}
		}()
	}
	metrics.StartEventCollector(ctx, s.bus, s.sink)

	snapCtx, stopSnapshots := context.WithCancel(ctx)
	var snapWG sync.WaitGroup
	if s.publisher != nil {
		snapWG.Add(1)
		go func() {
			defer snapWG.Done()
			s.snapshotLoop(snapCtx)
		}()
	}

	crewCtx, stopCrews := context.WithCancel(ctx)
	defer stopCrews()
	s.Crews.Start(crewCtx)

	actorCfg := vessel.Config{
		TickInterval:     time.Duration(s.cfg.Vessels.TickMS) * time.Millisecond,
		LowOilThreshold:  s.cfg.Vessels.LowOilThreshold,
		LongWaitTicks:    s.cfg.Vessels.LongWaitTicks,
		RefuelStep:       s.cfg.Vessels.RefuelStep,
		RefuelInterval:   time.Duration(s.cfg.Vessels.RefuelIntervalMS) * time.Millisecond,
		ServiceExtension: time.Duration(s.cfg.Vessels.ServiceExtensionMS) * time.Millisecond,
	}
	dwell, err := vessel.NewDwellSampler(s.cfg.Vessels.Dwell)
	if err != nil {
		stopCrews()
		s.Crews.Wait()
		stopSnapshots()
		snapWG.Wait()
		return fmt.Errorf("dwell sampler: %w", err)
	}

	var actors sync.WaitGroup
	spawn := func(v model.Vessel) {
		if err := s.Authority.Admit(v); err != nil {
			s.log.Warnf("vessel %d turned away: %v", v.ID, err)
			return
		}
		actor := vessel.NewActor(v, s.Authority, s.Crews, s.Stats, dwell, actorCfg, logger.New("vessel"), s.bus)
		actors.Add(1)
		go func() {
			defer actors.Done()
			if err := actor.Run(ctx); err != nil {
				s.log.Debugf("vessel %d stopped: %v", v.ID, err)
			}
		}()
	}
	if err := s.generator.Run(ctx, spawn); err != nil {
		s.log.Warnf("fleet generation interrupted: %v", err)
	}
	actors.Wait()

	stopCrews()
	s.Crews.Wait()
	stopSnapshots()
	snapWG.Wait()

	summary := s.Stats.Summarize(s.RunID, time.Now().UTC())
	s.log.Infof("run %s complete: serviced=%d refuels=%d cleanings=%d repairs=%d avg_wait=%.1f max_wait=%d",
		summary.RunID, summary.Stats.Serviced, summary.Stats.Refuels, summary.Stats.Cleanings,
		summary.Stats.Repairs, summary.AverageWait, summary.Stats.MaxWaitTicks)
	s.persistSummary(summary)
	return ctx.Err()
}

// persistSummary writes the run summary to the configured store and export
// file. Failures are reported but do not fail the run.
func (s *Service) persistSummary(summary stats.RunSummary) {
	if path := s.cfg.Results.SQLitePath; path != "" {
		store, err := results.NewSQLiteStore(path)
		if err != nil {
			s.log.Errorf("results store: %v", err)
			monitoring.CaptureException(err, map[string]string{"component": "results"})
		} else {
			if err := store.Save(summary); err != nil {
				s.log.Errorf("results save: %v", err)
				monitoring.CaptureException(err, map[string]string{"component": "results"})
			}
			if err := store.Close(); err != nil {
				s.log.Errorf("results close: %v", err)
			}
		}
	}
	if path := s.cfg.Export.Path; path != "" {
		if err := s.exportSummary(path, summary); err != nil {
			s.log.Errorf("export: %v", err)
			monitoring.CaptureException(err, map[string]string{"component": "export"})
		}
	}
}

func (s *Service) exportSummary(path string, summary stats.RunSummary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = export.WriteCSV(f, summary)
	default:
		err = export.WriteJSON(f, summary)
	}
	return err
}

// snapshotLoop periodically publishes the grid, queue, crew and stats state
// over MQTT until the context is cancelled.
func (s *Service) snapshotLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.MQTT.SnapshotIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishSnapshot()
			if rec, ok := s.sink.(coremetrics.OccupancyRecorder); ok {
				if err := rec.RecordOccupancy(s.Authority.OccupiedCells()); err != nil {
					s.log.Debugf("occupancy record: %v", err)
				}
			}
		}
	}
}

func (s *Service) publishSnapshot() {
	topics := map[string]any{
		"grid":    s.Authority.GridSnapshot(),
		"waiting": s.Authority.WaitingList(),
		"docked":  s.Authority.DockedList(),
		"crews":   s.Crews.Snapshot(),
		"stats":   s.Stats.Snapshot(),
	}
	for suffix, v := range topics {
		payload, err := json.Marshal(v)
		if err != nil {
			s.log.Errorf("snapshot marshal %s: %v", suffix, err)
			continue
		}
		if err := s.publisher.Publish(s.RunID+"/"+suffix, payload); err != nil {
			s.log.Debugf("snapshot publish %s: %v", suffix, err)
		}
	}
}

// Close releases the MQTT connection and any exporter resources.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	monitoring.Flush(2 * time.Second)
	return nil
}
