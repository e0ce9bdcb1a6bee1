package vessel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDwellConfigDefaults(t *testing.T) {
	var cfg DwellConfig
	cfg.SetDefaults()
	assert.Equal(t, "uniform", cfg.Distribution)
	assert.NoError(t, cfg.Validate())
}

func TestDwellConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  DwellConfig
		ok   bool
	}{
		{"normal", DwellConfig{Distribution: "normal", MeanSeconds: 10, SigmaSeconds: 2}, true},
		{"lognormal", DwellConfig{Distribution: "lognormal", MeanSeconds: 1, SigmaSeconds: 0.5}, true},
		{"normal zero sigma", DwellConfig{Distribution: "normal", MeanSeconds: 10}, false},
		{"uniform inverted", DwellConfig{Distribution: "uniform", MinSeconds: 5, MaxSeconds: 5}, false},
		{"unknown", DwellConfig{Distribution: "pareto", MeanSeconds: 1}, false},
		{"negative min", DwellConfig{Distribution: "uniform", MinSeconds: -1, MaxSeconds: 2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDwellSamplerClamps(t *testing.T) {
	s, err := NewDwellSampler(DwellConfig{
		Distribution: "normal",
		MeanSeconds:  1,
		SigmaSeconds: 10,
		MinSeconds:   0.5,
		MaxSeconds:   2,
	})
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		d := s.Sample()
		assert.GreaterOrEqual(t, d, 500*time.Millisecond)
		assert.LessOrEqual(t, d, 2*time.Second)
	}
}

func TestDwellSamplerUniformRange(t *testing.T) {
	s, err := NewDwellSampler(DwellConfig{
		Distribution: "uniform",
		MinSeconds:   1,
		MaxSeconds:   3,
	})
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		d := s.Sample()
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 3*time.Second)
	}
}

func TestDwellSamplerRejectsBadConfig(t *testing.T) {
	_, err := NewDwellSampler(DwellConfig{Distribution: "weibull"})
	assert.Error(t, err)
}

func TestFixedDwell(t *testing.T) {
	assert.Equal(t, 5*time.Millisecond, FixedDwell(5*time.Millisecond).Sample())
}
