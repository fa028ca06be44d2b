package enrich

import (
	"time"

	"github.com/okian/wclscrape/internal/domain/model"
)

// Elapsed returns the whole seconds between start and ts, both in ms.
// It is absent when start is unknown or ts precedes start.
func Elapsed(start model.Opt[int64], ts int64) model.Opt[time.Duration] {
	s, ok := start.Get()
	if !ok || ts < s {
		return model.None[time.Duration]()
	}
	secs := (ts - s) / 1000
	return model.Some(time.Duration(secs) * time.Second)
}
