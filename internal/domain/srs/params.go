package srs

// Mastery thresholds shared by the scheduler, the progress analyzer and the
// revision service. A competence is considered mastered once the ease factor
// and the repetition count both clear their bars, and struggling when the
// ease factor has sunk to the floor region.
const (
	MasteryMinEaseFactor  = 2.2
	MasteryMinRepetitions = 3
	StruggleMaxEaseFactor = 1.6
)

// IntervalCap bounds the scheduled interval for cards whose repetition number
// is at most MaxRepetition. Children should never be scheduled months ahead
// on the strength of a few good answers.
type IntervalCap struct {
	MaxRepetition int
	CapDays       int
}

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// Core limits
	MinEaseFactor     float64
	MaxEaseFactor     float64
	InitialEaseFactor float64

	// Early review intervals in days
	FirstInterval  int
	SecondInterval int

	// Quality at or above this counts as a success. Lower than canonical
	// SM-2's 3 so hesitant but engaged answers still advance.
	SuccessThreshold float64

	// Ease factor penalty applied on failure, floored at MinEaseFactor.
	FailureEasePenalty float64

	// Interval caps by repetition tier, ascending by MaxRepetition. The last
	// entry's CapDays also bounds every higher tier.
	IntervalCaps []IntervalCap

	// Expected answer time in seconds indexed by difficulty 0-5, with a
	// fallback for anything outside the table.
	ExpectedSeconds        []float64
	DefaultExpectedSeconds float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MinEaseFactor      float64
	MaxEaseFactor      float64
	InitialEaseFactor  float64
	FirstInterval      int
	SecondInterval     int
	SuccessThreshold   float64
	FailureEasePenalty float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.5,
		InitialEaseFactor: 2.5,

		FirstInterval:  1,
		SecondInterval: 6,

		SuccessThreshold:   2.5,
		FailureEasePenalty: 0.15,

		IntervalCaps: []IntervalCap{
			{MaxRepetition: 2, CapDays: 3},
			{MaxRepetition: 4, CapDays: 7},
			{MaxRepetition: 8, CapDays: 14},
			{MaxRepetition: 0, CapDays: 30}, // MaxRepetition 0 means "everything above"
		},

		ExpectedSeconds:        []float64{30, 45, 60, 90, 120, 180},
		DefaultExpectedSeconds: 60,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.InitialEaseFactor > 0 {
		params.InitialEaseFactor = config.InitialEaseFactor
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}
	if config.SuccessThreshold > 0 {
		params.SuccessThreshold = config.SuccessThreshold
	}
	if config.FailureEasePenalty > 0 {
		params.FailureEasePenalty = config.FailureEasePenalty
	}

	return params
}

// capForRepetition returns the interval cap in days for a repetition number.
func (p *Params) capForRepetition(repetition int) int {
	last := 0
	for _, tier := range p.IntervalCaps {
		last = tier.CapDays
		if tier.MaxRepetition != 0 && repetition <= tier.MaxRepetition {
			return tier.CapDays
		}
	}
	return last
}

// expectedSecondsFor returns the expected answer time for a difficulty,
// clamping the difficulty into the table's range.
func (p *Params) expectedSecondsFor(difficulty int) float64 {
	if difficulty < 0 {
		difficulty = 0
	}
	if difficulty > 5 {
		difficulty = 5
	}
	if difficulty >= len(p.ExpectedSeconds) {
		return p.DefaultExpectedSeconds
	}
	return p.ExpectedSeconds[difficulty]
}
