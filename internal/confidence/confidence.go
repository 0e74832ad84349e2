// Package confidence provides stand-in confidence functions for the one-vs-rest
// AUC computation when no probabilistic classifier output is available.
package confidence

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/go-viper/mapstructure/v2"
	"github.com/promptlens/promptlens/internal/classification"
)

type Kind string

const (
	// KindProxy scores a matching prediction high and everything else low.
	KindProxy Kind = "proxy"

	// KindJitter is KindProxy with a per-(sample, class) spread on mismatches,
	// the scheme the synthetic generator uses.
	KindJitter Kind = "jitter"
)

const (
	DefaultMatch    = 0.9
	DefaultMismatch = 0.1
	DefaultLow      = 0.1
	DefaultHigh     = 0.4
)

// Proxy is a deterministic confidence function.
type Proxy struct {
	Match    float64 `mapstructure:"match"`
	Mismatch float64 `mapstructure:"mismatch"`
}

// Func returns p as a classification.ConfidenceFunc.
func (p Proxy) Func() classification.ConfidenceFunc {
	return func(_ int, predicted, class string) float64 {
		if predicted == class {
			return p.Match
		}
		return p.Mismatch
	}
}

// Jitter scores a matching prediction Match and a mismatch somewhere in
// [Low, High). The mismatch value is a hash of (Seed, sample, class), so the
// same seed always yields the same scores regardless of call order.
type Jitter struct {
	Match float64 `mapstructure:"match"`
	Low   float64 `mapstructure:"low"`
	High  float64 `mapstructure:"high"`
	Seed  int64   `mapstructure:"seed"`
}

// Func returns j as a classification.ConfidenceFunc.
func (j Jitter) Func() classification.ConfidenceFunc {
	return func(sample int, predicted, class string) float64 {
		if predicted == class {
			return j.Match
		}
		return j.Low + (j.High-j.Low)*unitHash(j.Seed, sample, class)
	}
}

// unitHash maps (seed, sample, class) to [0, 1).
func unitHash(seed int64, sample int, class string) float64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(sample))
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(class))
	return float64(h.Sum64()>>11) / float64(uint64(1)<<53)
}

// New builds a confidence function of the given kind from loosely typed
// params, typically decoded from .promptlens.yaml. Missing params take the
// package defaults.
func New(kind Kind, params map[string]any) (classification.ConfidenceFunc, error) {
	switch kind {
	case KindProxy, "":
		p := Proxy{Match: DefaultMatch, Mismatch: DefaultMismatch}
		if err := mapstructure.Decode(params, &p); err != nil {
			return nil, fmt.Errorf("decoding %s params: %w", KindProxy, err)
		}
		if err := checkRange("match", p.Match); err != nil {
			return nil, err
		}
		if err := checkRange("mismatch", p.Mismatch); err != nil {
			return nil, err
		}
		return p.Func(), nil
	case KindJitter:
		j := Jitter{Match: DefaultMatch, Low: DefaultLow, High: DefaultHigh}
		if err := mapstructure.Decode(params, &j); err != nil {
			return nil, fmt.Errorf("decoding %s params: %w", KindJitter, err)
		}
		if err := checkRange("match", j.Match); err != nil {
			return nil, err
		}
		if err := checkRange("low", j.Low); err != nil {
			return nil, err
		}
		if err := checkRange("high", j.High); err != nil {
			return nil, err
		}
		if j.High < j.Low {
			return nil, fmt.Errorf("jitter high (%v) must be >= low (%v)", j.High, j.Low)
		}
		return j.Func(), nil
	default:
		return nil, fmt.Errorf("unknown confidence kind %q", kind)
	}
}

func checkRange(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("confidence %s must be in [0, 1], got %v", name, v)
	}
	return nil
}
