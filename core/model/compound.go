// Package model holds the planner's domain types: tire compounds, cleaned
// lap records, fitted compound models and strategy candidates.
package model

// Compound is a tire compound as reported by the timing feed.
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
)

// DryCompounds lists the slick compounds, soft to hard.
var DryCompounds = []Compound{CompoundSoft, CompoundMedium, CompoundHard}

// WetCompounds lists the grooved compounds, shallow to deep.
var WetCompounds = []Compound{CompoundIntermediate, CompoundWet}

// ValidCompounds lists every modeled compound in family order.
var ValidCompounds = []Compound{
	CompoundSoft, CompoundMedium, CompoundHard,
	CompoundIntermediate, CompoundWet,
}

// IsValid reports whether the compound is one of the five modeled ones.
// Feeds occasionally carry UNKNOWN or TEST_UNKNOWN, which are not.
func (c Compound) IsValid() bool {
	switch c {
	case CompoundSoft, CompoundMedium, CompoundHard, CompoundIntermediate, CompoundWet:
		return true
	}
	return false
}

// IsWet reports whether the compound is grooved.
func (c Compound) IsWet() bool {
	return c == CompoundIntermediate || c == CompoundWet
}

// TrackType is a coarse speed classification of a circuit.
type TrackType string

const (
	TrackLow    TrackType = "Low"
	TrackMedium TrackType = "Medium"
	TrackHigh   TrackType = "High"
)

// RaceCondition selects the compound pool for the strategy search. Auto
// defers the choice to the historical wet-lap share.
type RaceCondition string

const (
	ConditionAuto  RaceCondition = "auto"
	ConditionDry   RaceCondition = "dry"
	ConditionWet   RaceCondition = "wet"
	ConditionMixed RaceCondition = "mixed"
)

// IsValid reports whether the condition is one of the accepted values.
func (c RaceCondition) IsValid() bool {
	switch c {
	case ConditionAuto, ConditionDry, ConditionWet, ConditionMixed:
		return true
	}
	return false
}
