package classification

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryAUC(t *testing.T) {
	tests := []struct {
		name     string
		positive []bool
		scores   []float64
		want     float64
	}{
		{
			name:     "perfect separation",
			positive: []bool{true, true, false, false},
			scores:   []float64{0.9, 0.8, 0.2, 0.1},
			want:     1.0,
		},
		{
			name:     "inverted separation",
			positive: []bool{true, true, false, false},
			scores:   []float64{0.1, 0.2, 0.8, 0.9},
			want:     0.0,
		},
		{
			// pairs (pos, neg): (.9,.6) (.9,.1) (.4,.1) ranked right, (.4,.6) wrong
			name:     "one misranked pair of four",
			positive: []bool{true, true, false, false},
			scores:   []float64{0.9, 0.4, 0.6, 0.1},
			want:     0.75,
		},
		{
			name:     "all scores tied",
			positive: []bool{true, false, true, false},
			scores:   []float64{0.5, 0.5, 0.5, 0.5},
			want:     0.5,
		},
		{
			// tied pair counts one half: (1*0.5 + 1 + 0 + 1) / 4
			name:     "tie across classes",
			positive: []bool{true, false, true, false},
			scores:   []float64{0.8, 0.8, 0.3, 0.1},
			want:     0.625,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinaryAUC(tt.positive, tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, epsilon)
		})
	}
}

func TestBinaryAUC_TieOrderIndependent(t *testing.T) {
	a, err := BinaryAUC([]bool{true, false}, []float64{0.5, 0.5})
	require.NoError(t, err)
	b, err := BinaryAUC([]bool{false, true}, []float64{0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, 0.5, a, epsilon)
}

// pairwiseAUC is the probability that a random positive outranks a random
// negative, counting ties as one half.
func pairwiseAUC(positive []bool, scores []float64) float64 {
	var wins float64
	var pairs int
	for i := range positive {
		if !positive[i] {
			continue
		}
		for j := range positive {
			if positive[j] {
				continue
			}
			pairs++
			switch {
			case scores[i] > scores[j]:
				wins++
			case scores[i] == scores[j]:
				wins += 0.5
			}
		}
	}
	return wins / float64(pairs)
}

func TestBinaryAUC_MatchesPairwiseRanking(t *testing.T) {
	tests := []struct {
		name     string
		positive []bool
		scores   []float64
	}{
		{"partial ties", []bool{true, false, true, false, false, true}, []float64{0.9, 0.9, 0.4, 0.4, 0.1, 0.1}},
		{"all tied", []bool{false, true, true, false, true}, []float64{0.3, 0.3, 0.3, 0.3, 0.3}},
		{"unsorted input", []bool{false, true, false, true}, []float64{0.7, 0.2, 0.1, 0.7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinaryAUC(tt.positive, tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, pairwiseAUC(tt.positive, tt.scores), got, epsilon)
		})
	}

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		n := 20 + rng.Intn(30)
		positive := make([]bool, n)
		scores := make([]float64, n)
		for i := range positive {
			positive[i] = i%3 == 0
			// coarse buckets force ties across both classes
			scores[i] = float64(rng.Intn(5)) / 4
		}
		got, err := BinaryAUC(positive, scores)
		require.NoError(t, err)
		assert.InDelta(t, pairwiseAUC(positive, scores), got, epsilon, "trial %d", trial)
	}
}

func TestROCCurve_ThresholdsDescend(t *testing.T) {
	curve, err := ROCCurve([]bool{false, true, true, false, true}, []float64{0.2, 0.9, 0.5, 0.5, 0.2})
	require.NoError(t, err)
	require.Len(t, curve, 4)
	for i := 1; i < len(curve); i++ {
		assert.Less(t, curve[i].Threshold, curve[i-1].Threshold)
		assert.GreaterOrEqual(t, curve[i].FPR, curve[i-1].FPR)
		assert.GreaterOrEqual(t, curve[i].TPR, curve[i-1].TPR)
	}
	assert.Equal(t, 0.9, curve[1].Threshold)
}

func TestBinaryAUC_Errors(t *testing.T) {
	t.Run("no positives", func(t *testing.T) {
		_, err := BinaryAUC([]bool{false, false}, []float64{0.1, 0.2})
		var dg *DegenerateLabelSetError
		require.True(t, errors.As(err, &dg))
		assert.Equal(t, 0, dg.Positives)
		assert.Equal(t, 2, dg.Negatives)
	})

	t.Run("no negatives", func(t *testing.T) {
		_, err := BinaryAUC([]bool{true}, []float64{0.1})
		var dg *DegenerateLabelSetError
		require.True(t, errors.As(err, &dg))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := BinaryAUC(nil, nil)
		var dg *DegenerateLabelSetError
		require.True(t, errors.As(err, &dg))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := BinaryAUC([]bool{true, false}, []float64{0.1})
		var lm *LengthMismatchError
		require.True(t, errors.As(err, &lm))
	})

	t.Run("NaN score", func(t *testing.T) {
		_, err := BinaryAUC([]bool{true, false}, []float64{math.NaN(), 0.1})
		var is *InvalidScoreError
		require.True(t, errors.As(err, &is))
		assert.Equal(t, 0, is.Index)
	})
}

func TestROCCurve_Endpoints(t *testing.T) {
	curve, err := ROCCurve([]bool{true, false, true, false}, []float64{0.8, 0.8, 0.3, 0.1})
	require.NoError(t, err)

	// origin plus one point per distinct score
	require.Len(t, curve, 4)
	assert.True(t, math.IsInf(curve[0].Threshold, 1))
	assert.Equal(t, 0.0, curve[0].FPR)
	assert.Equal(t, 0.0, curve[0].TPR)
	assert.Equal(t, ROCPoint{Threshold: 0.8, FPR: 0.5, TPR: 0.5}, curve[1])
	last := curve[len(curve)-1]
	assert.Equal(t, 1.0, last.FPR)
	assert.Equal(t, 1.0, last.TPR)
}

func TestBinaryAUC_ScramblingNeverBeatsPerfect(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 200
	positive := make([]bool, n)
	scores := make([]float64, n)
	for i := range positive {
		positive[i] = i%2 == 0
		if positive[i] {
			scores[i] = 0.6 + 0.4*rng.Float64()
		} else {
			scores[i] = 0.4 * rng.Float64()
		}
	}
	perfect, err := BinaryAUC(positive, scores)
	require.NoError(t, err)
	require.InDelta(t, 1.0, perfect, epsilon)

	for frac := 0.1; frac <= 1.0; frac += 0.1 {
		scrambled := append([]float64(nil), scores...)
		for i := range scrambled {
			if rng.Float64() < frac {
				scrambled[i] = rng.Float64()
			}
		}
		got, err := BinaryAUC(positive, scrambled)
		require.NoError(t, err)
		assert.LessOrEqual(t, got, perfect+epsilon, "scramble fraction %.1f", frac)
	}
}

func TestBinaryAUC_RandomScoresAverageHalf(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const trials = 200
	n := 200
	positive := make([]bool, n)
	for i := range positive {
		positive[i] = i%2 == 0
	}

	var sum float64
	for trial := 0; trial < trials; trial++ {
		scores := make([]float64, n)
		for i := range scores {
			scores[i] = rng.Float64()
		}
		auc, err := BinaryAUC(positive, scores)
		require.NoError(t, err)
		sum += auc
	}
	assert.InDelta(t, 0.5, sum/trials, 0.03)
}

func TestBinaryAUC_DoesNotMutateInputs(t *testing.T) {
	positive := []bool{false, true, false, true}
	scores := []float64{0.3, 0.9, 0.1, 0.4}
	_, err := BinaryAUC(positive, scores)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, positive)
	assert.Equal(t, []float64{0.3, 0.9, 0.1, 0.4}, scores)
}

func TestOneVsRestAUC(t *testing.T) {
	cs := MustClassSet("a", "b", "c")

	t.Run("degenerate class excluded from mean", func(t *testing.T) {
		actual := []string{"a", "b", "a", "b"}
		predicted := []string{"a", "b", "b", "b"}

		s, err := OneVsRestAUC(actual, predicted, cs, proxyConfidence)
		require.NoError(t, err)
		require.Len(t, s.PerClass, 3)
		assert.True(t, s.PerClass[2].Degenerate)
		assert.Len(t, s.Notes, 1)
		assert.Contains(t, s.Notes[0], `"c"`)

		want := (s.PerClass[0].AUC + s.PerClass[1].AUC) / 2
		assert.InDelta(t, want, s.Macro, epsilon)
	})

	t.Run("confidence receives sample index and class", func(t *testing.T) {
		var calls int
		seen := map[string]bool{}
		fn := func(i int, predicted, class string) float64 {
			calls++
			seen[class] = true
			return float64(i) / 10
		}
		_, err := OneVsRestAUC([]string{"a", "b", "c"}, []string{"a", "b", "c"}, cs, fn)
		require.NoError(t, err)
		assert.Equal(t, 9, calls)
		assert.Len(t, seen, 3)
	})

	t.Run("nil confidence", func(t *testing.T) {
		_, err := OneVsRestAUC([]string{"a"}, []string{"a"}, cs, nil)
		require.ErrorIs(t, err, ErrNilConfidence)
	})

	t.Run("invalid score is wrapped", func(t *testing.T) {
		fn := func(int, string, string) float64 { return math.Inf(1) }
		_, err := OneVsRestAUC([]string{"a", "b"}, []string{"a", "b"}, cs, fn)
		var is *InvalidScoreError
		require.True(t, errors.As(err, &is))
	})
}
