package scenarios

import (
	"path/filepath"
	"testing"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob("*.yaml")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no scenario files found")
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	sc, err := Load("oversized_rejected.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Crews.Cleaning != 1 || sc.Crews.Repair != 1 {
		t.Errorf("crew defaults not applied: %+v", sc.Crews)
	}
	if sc.Port.Rows != 2 {
		t.Errorf("rows = %d, want 2", sc.Port.Rows)
	}
}
