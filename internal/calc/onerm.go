// Package calc holds the pure computation behind programming: one-rep-max
// estimation, percentage-of-max weight resolution and prescription/log
// reconciliation. Nothing in here performs I/O or returns errors; missing
// data comes back as nil or zero and the caller decides what that means.
package calc

import (
	"fmt"
	"math"
)

// OneRepMaxFormula is a named estimation strategy. Two near-identical
// formulas coexist on purpose: stat logging and workout-log display used
// different constants historically, and unifying them would silently change
// stored maxes. Keep both.
type OneRepMaxFormula interface {
	Name() string
	Estimate(weight float64, reps int) float64
}

// BrzyckiFormula is the strategy used when logging raw stat entries
// (bench/squat/deadlift history): weight * 36 / (37 - reps).
type BrzyckiFormula struct{}

func (BrzyckiFormula) Name() string { return "brzycki" }

func (BrzyckiFormula) Estimate(weight float64, reps int) float64 {
	return EstimateOneRepMaxBrzycki(weight, reps)
}

// DisplayFormula is the strategy used for the estimated-1RM column on the
// workout log view: weight / (1.0278 - 0.0278*reps), valid for reps in
// (0,12].
type DisplayFormula struct{}

func (DisplayFormula) Name() string { return "display" }

func (DisplayFormula) Estimate(weight float64, reps int) float64 {
	return EstimateOneRepMaxDisplay(weight, reps)
}

// EstimateOneRepMaxBrzycki estimates a one-rep max from a submaximal set.
// A single rep is its own max. Non-positive inputs return 0, which callers
// must treat as "no valid estimate" rather than an error. The formula
// degrades above ~10 reps (the denominator crosses zero at reps=37);
// callers should not invoke it for reps >= 12.
func EstimateOneRepMaxBrzycki(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return math.Round(weight * 36 / float64(37-reps))
}

// EstimateOneRepMaxDisplay is the log-view variant of the estimate.
// Same guards as the Brzycki form; only defined for reps in (0,12].
func EstimateOneRepMaxDisplay(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return math.Round(weight / (1.0278 - 0.0278*float64(reps)))
}

// WeightFromPercentage converts a percentage of a known one-rep max into a
// concrete target weight, rounded to the nearest pound. Returns nil when
// either input is missing/zero.
func WeightFromPercentage(oneRepMax, percentage float64) *float64 {
	if oneRepMax <= 0 || percentage <= 0 {
		return nil
	}
	w := math.Round(oneRepMax * percentage / 100)
	return &w
}

// DisplayWeight is what the UI shows for a percentage prescription.
type DisplayWeight struct {
	DisplayText      string
	CalculatedWeight *float64
}

// ResolveDisplayWeight renders a percentage prescription against an
// athlete's max. With a known max the text carries the computed weight
// ("225 lbs (75%)"); without one only the raw percentage is shown. The
// UI must never claim a weight it cannot compute.
func ResolveDisplayWeight(oneRepMax *float64, percentage float64) DisplayWeight {
	if oneRepMax != nil {
		if w := WeightFromPercentage(*oneRepMax, percentage); w != nil {
			return DisplayWeight{
				DisplayText:      fmt.Sprintf("%g lbs (%g%%)", *w, percentage),
				CalculatedWeight: w,
			}
		}
	}
	return DisplayWeight{DisplayText: fmt.Sprintf("%g%%", percentage)}
}
