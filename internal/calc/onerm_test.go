package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateOneRepMaxBrzycki(t *testing.T) {
	t.Run("single rep is its own max", func(t *testing.T) {
		assert.Equal(t, 315.0, EstimateOneRepMaxBrzycki(315, 1))
	})

	t.Run("five reps at 225", func(t *testing.T) {
		// 225 * 36 / 32 = 253.125, rounded
		assert.Equal(t, 253.0, EstimateOneRepMaxBrzycki(225, 5))
	})

	t.Run("estimate exceeds working weight for multiple reps", func(t *testing.T) {
		for reps := 2; reps <= 10; reps++ {
			assert.Greater(t, EstimateOneRepMaxBrzycki(200, reps), 200.0, "reps=%d", reps)
		}
	})

	t.Run("non positive inputs yield zero", func(t *testing.T) {
		assert.Zero(t, EstimateOneRepMaxBrzycki(0, 5))
		assert.Zero(t, EstimateOneRepMaxBrzycki(-135, 5))
		assert.Zero(t, EstimateOneRepMaxBrzycki(225, 0))
		assert.Zero(t, EstimateOneRepMaxBrzycki(225, -3))
	})
}

func TestEstimateOneRepMaxDisplay(t *testing.T) {
	t.Run("single rep is its own max", func(t *testing.T) {
		assert.Equal(t, 405.0, EstimateOneRepMaxDisplay(405, 1))
	})

	t.Run("five reps at 225", func(t *testing.T) {
		// 225 / (1.0278 - 0.139) = 253.18..., rounded
		assert.Equal(t, 253.0, EstimateOneRepMaxDisplay(225, 5))
	})

	t.Run("non positive inputs yield zero", func(t *testing.T) {
		assert.Zero(t, EstimateOneRepMaxDisplay(0, 5))
		assert.Zero(t, EstimateOneRepMaxDisplay(225, 0))
	})
}

func TestWeightFromPercentage(t *testing.T) {
	t.Run("known max", func(t *testing.T) {
		w := WeightFromPercentage(200, 75)
		require.NotNil(t, w)
		assert.Equal(t, 150.0, *w)
	})

	t.Run("rounds to whole pounds", func(t *testing.T) {
		w := WeightFromPercentage(315, 72.5)
		require.NotNil(t, w)
		assert.Equal(t, 228.0, *w) // 228.375 rounds down
	})

	t.Run("no max means no weight", func(t *testing.T) {
		assert.Nil(t, WeightFromPercentage(0, 75))
		assert.Nil(t, WeightFromPercentage(-100, 75))
	})

	t.Run("non positive percentage means no weight", func(t *testing.T) {
		assert.Nil(t, WeightFromPercentage(300, 0))
		assert.Nil(t, WeightFromPercentage(300, -10))
	})
}

func TestResolveDisplayWeight(t *testing.T) {
	t.Run("with a known max the text carries the weight", func(t *testing.T) {
		max := 300.0
		dw := ResolveDisplayWeight(&max, 75)
		require.NotNil(t, dw.CalculatedWeight)
		assert.Equal(t, 225.0, *dw.CalculatedWeight)
		assert.Equal(t, "225 lbs (75%)", dw.DisplayText)
	})

	t.Run("without a max only the percentage shows", func(t *testing.T) {
		dw := ResolveDisplayWeight(nil, 75)
		assert.Nil(t, dw.CalculatedWeight)
		assert.Equal(t, "75%", dw.DisplayText)
	})

	t.Run("zero max behaves like no max", func(t *testing.T) {
		zero := 0.0
		dw := ResolveDisplayWeight(&zero, 80)
		assert.Nil(t, dw.CalculatedWeight)
		assert.Equal(t, "80%", dw.DisplayText)
	})
}

func TestFormulaStrategies(t *testing.T) {
	var brzycki OneRepMaxFormula = BrzyckiFormula{}
	var display OneRepMaxFormula = DisplayFormula{}

	assert.Equal(t, "brzycki", brzycki.Name())
	assert.Equal(t, "display", display.Name())

	// The two coefficient sets agree at 1 rep and drift apart as reps grow.
	assert.Equal(t, brzycki.Estimate(225, 1), display.Estimate(225, 1))
	assert.Equal(t, EstimateOneRepMaxBrzycki(185, 8), brzycki.Estimate(185, 8))
	assert.Equal(t, EstimateOneRepMaxDisplay(185, 8), display.Estimate(185, 8))
}
