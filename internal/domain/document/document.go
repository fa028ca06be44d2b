// Package document assembles enriched records into the fights document.
package document

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	json "github.com/goccy/go-json"

	"github.com/okian/wclscrape/internal/domain/model"
)

// Sentinels written in place of absent values.
const (
	UnknownTime    = "Unknown"
	UnknownOutcome = "N/A"
	UnknownPlayer  = "Unknown Player"
	KillLabel      = "Kill"
)

const (
	dateLayout = "2006-01-02"
	fileSuffix = "_Fights.json"
)

// Document is the output of one run.
type Document struct {
	Title    string
	Date     string
	FileName string
	Records  []model.Record
}

// Assemble names the document after now (already in the wanted location)
// and the session title.
func Assemble(title string, now time.Time, records []model.Record) Document {
	date := now.Format(dateLayout)
	return Document{
		Title:    title,
		Date:     date,
		FileName: FileName(date, title),
		Records:  records,
	}
}

// FileName builds "<date>_<slug>_Fights.json".
func FileName(date, title string) string {
	return date + "_" + Slug(title) + fileSuffix
}

// Slug replaces every whitespace rune with an underscore.
func Slug(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, title)
}

// FormatElapsed renders a duration as M:SS, or UnknownTime when absent.
func FormatElapsed(elapsed model.Opt[time.Duration]) string {
	d, ok := elapsed.Get()
	if !ok || d < 0 {
		return UnknownTime
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// OutcomeLabel is "Kill", the wipe percentage as a number, or UnknownOutcome.
func OutcomeLabel(o model.Outcome) any {
	if o.Kill {
		return KillLabel
	}
	if pct, ok := o.Percentage.Get(); ok {
		return pct
	}
	return UnknownOutcome
}

type recordJSON struct {
	SummaryURL     string      `json:"summary_url"`
	BossName       string      `json:"boss_name"`
	WipePercentage any         `json:"wipe_percentage"`
	Deaths         []deathJSON `json:"deaths"`
}

type deathJSON struct {
	Player    string `json:"player"`
	DeathTime string `json:"death_time"`
	DeathURL  string `json:"death_url"`
}

func toJSON(records []model.Record) []recordJSON {
	out := make([]recordJSON, 0, len(records))
	for _, r := range records {
		deaths := make([]deathJSON, 0, len(r.Deaths))
		for _, d := range r.Deaths {
			deaths = append(deaths, deathJSON{
				Player:    d.Player.Or(UnknownPlayer),
				DeathTime: FormatElapsed(d.Elapsed),
				DeathURL:  d.URL,
			})
		}
		out = append(out, recordJSON{
			SummaryURL:     r.SummaryURL,
			BossName:       r.Opponent,
			WipePercentage: OutcomeLabel(r.Outcome),
			Deaths:         deaths,
		})
	}
	return out
}

// Encode renders the records as a JSON array indented by two spaces.
func (d Document) Encode() ([]byte, error) {
	b, err := json.MarshalIndentWithOption(toJSON(d.Records), "", "  ", json.DisableHTMLEscape())
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}
