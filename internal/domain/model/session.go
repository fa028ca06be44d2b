// Package model contains domain models passed between layers.
package model

// CategoryPlayer is the participant category kept by the roster.
const CategoryPlayer = "Player"

// Session is one report as returned by the analytics service.
type Session struct {
	Code         string
	Title        string
	Segments     []Segment
	Participants []Participant
}

// Participant is any actor tracked in a session.
type Participant struct {
	ID       int
	Name     string
	Category string // "Player", "NPC", "Pet", ...
}

// Segment is one fight within a session.
type Segment struct {
	ID              int
	Name            string
	EncounterID     int // 0 when the fight is not a boss encounter
	Kill            bool
	FightPercentage Opt[float64]
	StartTime       Opt[int64] // ms, same clock as DeathEvent.Timestamp
	EndTime         Opt[int64]
}

// DeathEvent is a single participant death inside a segment.
type DeathEvent struct {
	Timestamp int64
	Fight     int
	TargetID  int
}

// DeathPage is one page of the death feed for a segment.
type DeathPage struct {
	Events []DeathEvent
	// NextPageTimestamp is the continuation token; it is never followed.
	NextPageTimestamp Opt[int64]
}
