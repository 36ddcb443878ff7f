// Package dedupe collapses moments sharing a natural key down to the
// highest-scored record.
package dedupe

import "github.com/voyo-music/canonizer/internal/models"

// Result holds the surviving moments and the count that were dropped.
type Result struct {
	Moments []models.Moment
	Dropped int
}

// Deduplicate keeps, per (platform, source id), the moment with the strictly
// greatest virality score; ties keep the first one seen. Output preserves
// first-appearance order, so the step is idempotent.
func Deduplicate(moments []models.Moment) Result {
	index := make(map[models.NaturalKey]int, len(moments))
	kept := make([]models.Moment, 0, len(moments))
	dropped := 0

	for _, m := range moments {
		key := m.Key()
		at, seen := index[key]
		if !seen {
			index[key] = len(kept)
			kept = append(kept, m)
			continue
		}
		dropped++
		if m.ViralityScore > kept[at].ViralityScore {
			kept[at] = m
		}
	}

	return Result{Moments: kept, Dropped: dropped}
}
