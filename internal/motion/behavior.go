package motion

import "math/rand"

// Behavior is the current speed mode of an orbiting enemy.
type Behavior int

const (
	BehaviorNormal Behavior = iota
	BehaviorPause
	BehaviorReverse
	BehaviorDash
	BehaviorSlow
)

func (b Behavior) String() string {
	switch b {
	case BehaviorNormal:
		return "normal"
	case BehaviorPause:
		return "pause"
	case BehaviorReverse:
		return "reverse"
	case BehaviorDash:
		return "dash"
	case BehaviorSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// behaviorWeight is one row of the cumulative selection table. A row is
// chosen when the roll is below upTo; its multiplier is drawn from [lo, hi].
type behaviorWeight struct {
	behavior Behavior
	upTo     float64
	lo, hi   float64
}

var behaviorTable = []behaviorWeight{
	{BehaviorPause, 0.10, 0, 0},
	{BehaviorReverse, 0.30, -1, -1},
	{BehaviorDash, 0.60, 0.8, 0.9},
	{BehaviorSlow, 0.85, 0.4, 0.8},
	{BehaviorNormal, 1.00, 1, 1},
}

// Behavior dwell windows in seconds.
const (
	firstDwellMin = 0.8
	firstDwellMax = 2.5
	dwellMin      = 0.6
	dwellMax      = 3.0
)

func behaviorFor(roll float64) behaviorWeight {
	for _, w := range behaviorTable {
		if roll < w.upTo {
			return w
		}
	}
	return behaviorTable[len(behaviorTable)-1]
}

// pickBehavior rolls a new behavior. Only ranged rows consume a second
// random number, which keeps seeded replays stable.
func pickBehavior(rng *rand.Rand) (Behavior, float64) {
	w := behaviorFor(rng.Float64())
	mult := w.lo
	if w.hi > w.lo {
		mult = w.lo + rng.Float64()*(w.hi-w.lo)
	}
	return w.behavior, mult
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
