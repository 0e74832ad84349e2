// Package statistics provides the resampling statistics used to summarise
// experiment runs and evaluation reports.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval is a percentile bootstrap interval around a mean.
type ConfidenceInterval struct {
	Lower         float64 `json:"lower"`
	Upper         float64 `json:"upper"`
	Mean          float64 `json:"mean"`
	Level         float64 `json:"level"`
	NumBootstraps int     `json:"numBootstraps"`
}

// Width is Upper minus Lower.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// Contains reports whether v lies inside the closed interval.
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

// DefaultBootstrapIterations is the number of resamples drawn per interval.
const DefaultBootstrapIterations = 10000

// BootstrapCI is BootstrapCIWithSeed with a non-deterministic seed.
func BootstrapCI(values []float64, level float64) ConfidenceInterval {
	return BootstrapCIWithSeed(values, level, -1)
}

// BootstrapCIWithSeed computes a percentile bootstrap interval of the mean of
// values at the given level, e.g. 0.95. A negative seed draws one from the
// global source. With fewer than two values the interval collapses onto the
// mean and no resampling happens.
func BootstrapCIWithSeed(values []float64, level float64, seed int64) ConfidenceInterval {
	m := mean(values)
	if len(values) < 2 {
		return ConfidenceInterval{Lower: m, Upper: m, Mean: m, Level: level}
	}

	if seed < 0 {
		seed = rand.Int63()
	}
	means := resampleMeans(rand.New(rand.NewSource(seed)), values, DefaultBootstrapIterations)

	alpha := 1 - level
	return ConfidenceInterval{
		Lower:         percentile(means, alpha/2),
		Upper:         percentile(means, 1-alpha/2),
		Mean:          m,
		Level:         level,
		NumBootstraps: len(means),
	}
}

// AccuracyCI bootstraps the accuracy of a set of per-sample outcomes, where
// each element of correct says whether that prediction matched its label.
func AccuracyCI(correct []bool, level float64, seed int64) ConfidenceInterval {
	values := make([]float64, len(correct))
	for i, ok := range correct {
		if ok {
			values[i] = 1
		}
	}
	return BootstrapCIWithSeed(values, level, seed)
}

// IsSignificant reports whether ci excludes zero.
func IsSignificant(ci ConfidenceInterval) bool {
	return ci.Lower > 0 || ci.Upper < 0
}

// NormalizedGain is Hake's normalized gain (post - pre) / (1 - pre): the
// share of the remaining headroom that was recovered. It is 0 when pre is
// already at the ceiling or nothing changed, and 1 once post reaches 1.
func NormalizedGain(pre, post float64) float64 {
	switch {
	case pre >= 1:
		return 0
	case post >= 1:
		return 1
	case math.Abs(post-pre) < 1e-12:
		return 0
	}
	return (post - pre) / (1 - pre)
}

// resampleMeans draws iters resamples of values with replacement and returns
// their means in ascending order.
func resampleMeans(rng *rand.Rand, values []float64, iters int) []float64 {
	n := len(values)
	means := make([]float64, iters)
	for i := range means {
		var sum float64
		for j := 0; j < n; j++ {
			sum += values[rng.Intn(n)]
		}
		means[i] = sum / float64(n)
	}
	sort.Float64s(means)
	return means
}

// percentile picks the q-quantile of sorted by floor index.
func percentile(sorted []float64, q float64) float64 {
	idx := int(math.Floor(q * float64(len(sorted))))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
