package wcl

import (
	"strings"

	"github.com/okian/wclscrape/internal/domain/model"
)

type gqlError struct {
	Message string `json:"message"`
}

type gqlErrors []gqlError

func (e gqlErrors) String() string {
	msgs := make([]string, 0, len(e))
	for _, m := range e {
		msgs = append(msgs, m.Message)
	}
	return strings.Join(msgs, "; ")
}

// envelope mirrors {"data":{"reportData":{"report":...}},"errors":[...]}.
// Every level is a pointer so a missing level decodes to nil instead of failing.
type envelope[T any] struct {
	Data *struct {
		ReportData *struct {
			Report *T `json:"report"`
		} `json:"reportData"`
	} `json:"data"`
	Errors gqlErrors `json:"errors"`
}

func (e *envelope[T]) report() *T {
	if e.Data == nil || e.Data.ReportData == nil {
		return nil
	}
	return e.Data.ReportData.Report
}

type sessionReport struct {
	Title      string      `json:"title"`
	Fights     []fightDTO  `json:"fights"`
	MasterData *masterData `json:"masterData"`
}

type masterData struct {
	Actors []actorDTO `json:"actors"`
}

type actorDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type fightDTO struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Kill            *bool    `json:"kill"`
	FightPercentage *float64 `json:"fightPercentage"`
	EncounterID     *int     `json:"encounterID"`
	StartTime       *int64   `json:"startTime"`
	EndTime         *int64   `json:"endTime"`
}

type deathsReport struct {
	Events *struct {
		Data              []eventDTO `json:"data"`
		NextPageTimestamp *int64     `json:"nextPageTimestamp"`
	} `json:"events"`
}

type eventDTO struct {
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
	Fight     int    `json:"fight"`
	TargetID  int    `json:"targetID"`
}

func (r *sessionReport) toModel(code string) model.Session {
	s := model.Session{
		Code:     code,
		Title:    r.Title,
		Segments: make([]model.Segment, 0, len(r.Fights)),
	}
	for _, f := range r.Fights {
		seg := model.Segment{
			ID:              f.ID,
			Name:            f.Name,
			Kill:            f.Kill != nil && *f.Kill,
			FightPercentage: model.FromPtr(f.FightPercentage),
			StartTime:       model.FromPtr(f.StartTime),
			EndTime:         model.FromPtr(f.EndTime),
		}
		if f.EncounterID != nil {
			seg.EncounterID = *f.EncounterID
		}
		s.Segments = append(s.Segments, seg)
	}
	if r.MasterData != nil {
		s.Participants = make([]model.Participant, 0, len(r.MasterData.Actors))
		for _, a := range r.MasterData.Actors {
			s.Participants = append(s.Participants, model.Participant{ID: a.ID, Name: a.Name, Category: a.Type})
		}
	}
	return s
}

func (r *deathsReport) toModel() model.DeathPage {
	var page model.DeathPage
	if r.Events == nil {
		return page
	}
	page.NextPageTimestamp = model.FromPtr(r.Events.NextPageTimestamp)
	page.Events = make([]model.DeathEvent, 0, len(r.Events.Data))
	for _, e := range r.Events.Data {
		page.Events = append(page.Events, model.DeathEvent{
			Timestamp: e.Timestamp,
			Fight:     e.Fight,
			TargetID:  e.TargetID,
		})
	}
	return page
}
