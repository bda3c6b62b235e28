package arena

import "github.com/vovakirdan/rocket-arcade/internal/storage"

// Record converts the summary into a row for the run store.
func (s Summary) Record(source string) storage.RunRecord {
	return storage.RunRecord{
		Scenario:   s.Scenario,
		Source:     source,
		Seed:       s.Seed,
		Score:      s.Score,
		Wave:       s.Wave,
		Kills:      s.Kills,
		Ticks:      s.Ticks,
		LivesLeft:  s.LivesLeft,
		GameOver:   s.GameOver,
		DurationMs: s.DurationMs,
		Hash:       s.Hash,
	}
}
