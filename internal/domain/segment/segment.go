// Package segment selects the fights worth enriching.
package segment

import (
	"github.com/okian/wclscrape/internal/domain/model"
)

// IsEncounter reports whether s is tied to a real opponent.
func IsEncounter(s model.Segment) bool {
	return s.EncounterID > 0
}

// Select returns the encounter segments in their original order.
func Select(segments []model.Segment) []model.Segment {
	out := make([]model.Segment, 0, len(segments))
	for _, s := range segments {
		if IsEncounter(s) {
			out = append(out, s)
		}
	}
	return out
}
