package enrich

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SummaryURL links to a fight's summary page.
func SummaryURL(siteURL, code string, fightID int) string {
	return fmt.Sprintf("%s/reports/%s#fight=%d", strings.TrimRight(siteURL, "/"), url.PathEscape(code), fightID)
}

// DeathURL links to the deaths pane of a fight, windowed around ts (ms) and
// pointing at the ordinal-th sampled death (1-based). start is not clamped
// and goes negative for deaths less than window after the report's time zero.
func DeathURL(siteURL, code string, fightID int, ts int64, window time.Duration, ordinal int) string {
	w := window.Milliseconds()
	return fmt.Sprintf("%s&type=deaths&start=%d&end=%d&death=%d",
		SummaryURL(siteURL, code, fightID), ts-w, ts+w, ordinal)
}
