// Package scenarios runs YAML-defined simulation scenarios as tests.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
)

// VesselDef declares one arriving vessel.
type VesselDef struct {
	ID            int  `yaml:"id"`
	Length        int  `yaml:"length"`
	Width         int  `yaml:"width"`
	Oil           int  `yaml:"oil"`
	NeedsCleaning bool `yaml:"needs_cleaning"`
	NeedsRepair   bool `yaml:"needs_repair"`
}

// ToModel converts the definition into a vessel.
func (v VesselDef) ToModel() model.Vessel {
	return model.Vessel{
		ID:            v.ID,
		Length:        v.Length,
		Width:         v.Width,
		OilLevel:      v.Oil,
		NeedsCleaning: v.NeedsCleaning,
		NeedsRepair:   v.NeedsRepair,
	}
}

// PortDef shapes the berth grid for the scenario.
type PortDef struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// CrewDef sizes the service crews for the scenario.
type CrewDef struct {
	Cleaning int `yaml:"cleaning"`
	Repair   int `yaml:"repair"`
}

// Expected lists the final counters the scenario must reach.
type Expected struct {
	Serviced  int `yaml:"serviced"`
	Refuels   int `yaml:"refuels"`
	Cleanings int `yaml:"cleanings"`
	Repairs   int `yaml:"repairs"`
	Rejected  int `yaml:"rejected"`
}

// Scenario is one named end-to-end run.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Port        PortDef     `yaml:"port"`
	Crews       CrewDef     `yaml:"crews"`
	Vessels     []VesselDef `yaml:"vessels"`
	Expected    Expected    `yaml:"expected"`
}

// Load reads the scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Port.Rows == 0 {
		sc.Port.Rows = 3
	}
	if sc.Port.Cols == 0 {
		sc.Port.Cols = 12
	}
	if sc.Crews.Cleaning == 0 {
		sc.Crews.Cleaning = 1
	}
	if sc.Crews.Repair == 0 {
		sc.Crews.Repair = 1
	}
	return &sc, nil
}
