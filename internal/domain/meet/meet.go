// Package meet implements the meet scoring state machine.
//
// A meet is a value: every operation returns a fresh snapshot and
// leaves its input untouched, so no caller can observe a transition
// half-applied. The roster is the copy captured at creation time;
// group edits made later never reach an in-progress meet.
package meet

import (
	"fmt"

	"github.com/gymlab/palaestra/internal/domain/model"
	"github.com/gymlab/palaestra/internal/domain/score"
)

// New creates an in-progress meet over a roster snapshot. The roster
// is copied; all four event records start empty and not completed.
func New(id, name, date, groupID string, roster []model.Athlete) (*model.Meet, error) {
	if len(roster) == 0 {
		return nil, ErrNoActiveRoster
	}
	m := &model.Meet{
		ID:      id,
		Name:    name,
		Date:    date,
		GroupID: groupID,
		Roster:  append([]model.Athlete(nil), roster...),
		Records: make(map[model.Event]model.EventRecord, len(model.Events)),
	}
	for _, e := range model.Events {
		m.Records[e] = model.EventRecord{Event: e, Scores: map[string]float64{}}
	}
	return m, nil
}

// WithActiveEvent returns a snapshot focused on the given apparatus.
// An empty event clears the focus. No other validation applies.
func WithActiveEvent(m *model.Meet, e model.Event) (*model.Meet, error) {
	if e != "" && !model.ValidEvent(e) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, e)
	}
	next := m.Clone()
	next.ActiveEvent = e
	return next, nil
}

// WithScore returns a snapshot with the athlete's score on the event
// upserted, or removed when v is nil. The athlete must belong to the
// roster snapshot. Scoring a completed event is deliberately allowed;
// the completion flag gates nothing here.
func WithScore(m *model.Meet, e model.Event, athleteID string, v *float64) (*model.Meet, error) {
	if !model.ValidEvent(e) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, e)
	}
	if !m.HasAthlete(athleteID) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAthlete, athleteID)
	}
	next := m.Clone()
	rec := next.Records[e]
	if v == nil {
		delete(rec.Scores, athleteID)
	} else {
		rec.Scores[athleteID] = score.Round(*v)
	}
	next.Records[e] = rec
	return next, nil
}

// WithEventComplete returns a snapshot with the event marked
// completed. Every roster athlete must hold an in-range score for the
// event; otherwise the meet is unchanged and ErrIncompleteScores is
// returned. Completing the focused event clears the focus.
func WithEventComplete(m *model.Meet, e model.Event) (*model.Meet, error) {
	if !model.ValidEvent(e) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, e)
	}
	rec := m.Records[e]
	for _, a := range m.Roster {
		v, ok := rec.Scores[a.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing score for %s", ErrIncompleteScores, a.Name, e)
		}
		if !score.Valid(v) {
			return nil, fmt.Errorf("%w: %s has out-of-range score on %s", ErrIncompleteScores, a.Name, e)
		}
	}
	next := m.Clone()
	rec = next.Records[e]
	rec.Completed = true
	next.Records[e] = rec
	if next.ActiveEvent == e {
		next.ActiveEvent = ""
	}
	return next, nil
}

// Complete reports whether every apparatus has been marked completed.
func Complete(m *model.Meet) bool {
	for _, e := range model.Events {
		if !m.Records[e].Completed {
			return false
		}
	}
	return true
}
