package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapCI_SmallInputs(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single value", []float64{0.75}, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ci := BootstrapCI(tt.values, 0.95)
			assert.Equal(t, tt.want, ci.Mean)
			assert.Equal(t, tt.want, ci.Lower)
			assert.Equal(t, tt.want, ci.Upper)
			assert.Zero(t, ci.NumBootstraps)
			assert.Equal(t, 0.95, ci.Level)
		})
	}
}

func TestBootstrapCI_IdenticalValues(t *testing.T) {
	ci := BootstrapCIWithSeed([]float64{0.5, 0.5, 0.5, 0.5}, 0.95, 42)
	assert.InDelta(t, 0.5, ci.Lower, 1e-9)
	assert.InDelta(t, 0.5, ci.Upper, 1e-9)
	assert.InDelta(t, 0, ci.Width(), 1e-9)
}

func TestBootstrapCI_Spread(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	ci := BootstrapCIWithSeed(values, 0.95, 42)

	assert.InDelta(t, 0.55, ci.Mean, 1e-9)
	assert.Less(t, ci.Lower, ci.Mean)
	assert.Greater(t, ci.Upper, ci.Mean)
	assert.GreaterOrEqual(t, ci.Lower, 0.1)
	assert.LessOrEqual(t, ci.Upper, 1.0)
	assert.True(t, ci.Contains(ci.Mean))
	assert.Equal(t, DefaultBootstrapIterations, ci.NumBootstraps)
}

func TestBootstrapCI_SeedIsReproducible(t *testing.T) {
	values := []float64{0.3, 0.5, 0.7, 0.4, 0.6}
	a := BootstrapCIWithSeed(values, 0.9, 123)
	b := BootstrapCIWithSeed(values, 0.9, 123)
	assert.Equal(t, a, b)
}

func TestBootstrapCI_NarrowerWithMoreData(t *testing.T) {
	small := []float64{0.3, 0.5, 0.7}
	var large []float64
	for i := 0; i < 4; i++ {
		large = append(large, 0.3, 0.4, 0.5, 0.6, 0.7)
	}

	wSmall := BootstrapCIWithSeed(small, 0.95, 42).Width()
	wLarge := BootstrapCIWithSeed(large, 0.95, 42).Width()
	assert.Less(t, wLarge, wSmall)
}

func TestAccuracyCI(t *testing.T) {
	correct := make([]bool, 100)
	for i := range correct {
		correct[i] = i%4 != 0
	}
	ci := AccuracyCI(correct, 0.95, 7)

	assert.InDelta(t, 0.75, ci.Mean, 1e-9)
	assert.True(t, ci.Contains(0.75))
	assert.Greater(t, ci.Lower, 0.6)
	assert.Less(t, ci.Upper, 0.9)
}

func TestAccuracyCI_AllCorrect(t *testing.T) {
	ci := AccuracyCI([]bool{true, true, true}, 0.95, 1)
	assert.Equal(t, 1.0, ci.Lower)
	assert.Equal(t, 1.0, ci.Upper)
}

func TestIsSignificant(t *testing.T) {
	tests := []struct {
		name string
		ci   ConfidenceInterval
		want bool
	}{
		{"strictly positive", ConfidenceInterval{Lower: 0.01, Upper: 0.2}, true},
		{"strictly negative", ConfidenceInterval{Lower: -0.3, Upper: -0.1}, true},
		{"spans zero", ConfidenceInterval{Lower: -0.1, Upper: 0.1}, false},
		{"touches zero", ConfidenceInterval{Lower: 0, Upper: 0.4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSignificant(tt.ci))
		})
	}
}

func TestNormalizedGain(t *testing.T) {
	tests := []struct {
		name      string
		pre, post float64
		want      float64
	}{
		{"half the headroom", 0.6, 0.8, 0.5},
		{"no change", 0.7, 0.7, 0},
		{"already at ceiling", 1.0, 1.0, 0},
		{"reaches ceiling", 0.4, 1.0, 1},
		{"regression", 0.8, 0.7, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, NormalizedGain(tt.pre, tt.post), 1e-9)
		})
	}
}
