package synth

import (
	"math/rand"
	"slices"

	"github.com/promptlens/promptlens/internal/models"
)

const (
	improvementPerIteration = 0.05
	predictionNoise         = 0.04
	minClassAccuracy        = 0.6
	maxClassAccuracy        = 0.95

	recallAccuracyFactor = 0.94
	recallFixRate        = 0.55
	easyBucketNoise      = 0.06
)

// SimulatePredictions labels every entry, getting it right with a
// probability built from baseAccuracy, the intent's difficulty and the
// iteration number. Wrong answers follow the intent's confusion pattern.
func SimulatePredictions(rng *rand.Rand, entries []models.DatasetEntry, baseAccuracy float64, iteration int) []string {
	labels := Intents.Labels()
	out := make([]string, len(entries))
	for i, e := range entries {
		r := rng.Float64()
		acc := baseAccuracy + classDifficulty[e.IntentCategory] + float64(iteration)*improvementPerIteration
		acc = clamp(acc+(rng.Float64()-0.5)*predictionNoise, minClassAccuracy, maxClassAccuracy)
		if r < acc {
			out[i] = e.IntentCategory
			continue
		}
		out[i] = confuse(rng, e.IntentCategory, labels)
	}
	return out
}

// confuse picks a wrong label for intent weighted by its confusion pattern,
// falling back to a uniform pick.
func confuse(rng *rand.Rand, intent string, labels []string) string {
	pattern := confusionPatterns[intent]
	var total float64
	for _, w := range pattern {
		total += w.weight
	}
	remaining := rng.Float64() * total
	fallback := labels[rng.Intn(len(labels))]
	for _, w := range pattern {
		remaining -= w.weight
		if remaining <= 0 {
			return w.intent
		}
	}
	return fallback
}

// SimulateRecallOrientedPredictions trades a little accuracy for recall. It
// starts below baseAccuracy with near-miss errors, fixes a share of the
// mistakes on messages whose keywords give the intent away, then perturbs a
// few correct answers in the easy general and billing buckets.
func SimulateRecallOrientedPredictions(rng *rand.Rand, entries []models.DatasetEntry, baseAccuracy float64) []string {
	reduced := clamp(baseAccuracy*recallAccuracyFactor, 0.55, 0.9)
	labels := Intents.Labels()

	out := make([]string, len(entries))
	for i, e := range entries {
		if rng.Float64() < reduced {
			out[i] = e.IntentCategory
			continue
		}
		out[i] = nearMiss(rng, e.IntentCategory, labels)
	}

	for i, e := range entries {
		if out[i] == e.IntentCategory {
			continue
		}
		if hint, ok := intentHints[e.IntentCategory]; ok && hint.MatchString(e.MessageContent) && rng.Float64() < recallFixRate {
			out[i] = e.IntentCategory
		}
	}

	easy := []string{IntentGeneral, IntentBilling}
	for i, e := range entries {
		if out[i] != e.IntentCategory || !slices.Contains(easy, e.IntentCategory) {
			continue
		}
		if rng.Float64() < easyBucketNoise {
			out[i] = nearMiss(rng, e.IntentCategory, labels)
		}
	}
	return out
}

func nearMiss(rng *rand.Rand, intent string, labels []string) string {
	opts, ok := nearMisses[intent]
	if !ok {
		opts = labels
	}
	return opts[rng.Intn(len(opts))]
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
