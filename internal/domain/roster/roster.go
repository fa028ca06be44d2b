// Package roster maps participant ids to player names.
package roster

import (
	"github.com/okian/wclscrape/internal/domain/model"
)

// Roster is an id -> display name lookup restricted to players.
type Roster map[int]string

// Build keeps player participants only. A nil or empty input yields an empty Roster.
func Build(participants []model.Participant) Roster {
	r := make(Roster, len(participants))
	for _, p := range participants {
		if p.Category != model.CategoryPlayer {
			continue
		}
		r[p.ID] = p.Name
	}
	return r
}

// Name resolves id; absent ids yield None.
func (r Roster) Name(id int) model.Opt[string] {
	name, ok := r[id]
	if !ok {
		return model.None[string]()
	}
	return model.Some(name)
}
