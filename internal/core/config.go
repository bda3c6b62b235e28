package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickMillis returns the simulated duration of one tick in milliseconds.
func (c RuntimeConfig) TickMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60.0
	}
	return 1000.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind classifies something notable that happened during a tick.
type EventKind int

const (
	EventEnemyKilled EventKind = iota
	EventPlayerHit
	EventImpact
	EventBounce
	EventBulletExploded
	EventWaveCleared
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerHit:
		return "player_hit"
	case EventImpact:
		return "impact"
	case EventBounce:
		return "bounce"
	case EventBulletExploded:
		return "bullet_exploded"
	case EventWaveCleared:
		return "wave_cleared"
	default:
		return "unknown"
	}
}

// Event is a single gameplay occurrence reported by Step.
type Event struct {
	Kind EventKind
	Tick int
	Pos  Vec2
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
