// Package model contains domain models passed between layers.
package model

import "time"

// SkillLevel identifies the competitive level of a group.
type SkillLevel string

// Supported skill levels, lowest to highest.
const (
	Bronze   SkillLevel = "Bronze"
	Silver   SkillLevel = "Silver"
	Gold     SkillLevel = "Gold"
	Platinum SkillLevel = "Platinum"
	Diamond  SkillLevel = "Diamond"
)

// SkillLevels lists every valid level in ascending order.
var SkillLevels = []SkillLevel{Bronze, Silver, Gold, Platinum, Diamond}

// ValidSkillLevel reports whether s is one of the supported levels.
func ValidSkillLevel(s SkillLevel) bool {
	for _, l := range SkillLevels {
		if s == l {
			return true
		}
	}
	return false
}

// Event identifies one of the four judged apparatus categories.
// A meet always scores all four; there is no subset.
type Event string

// The four apparatus events.
const (
	Bars  Event = "bars"
	Beam  Event = "beam"
	Floor Event = "floor"
	Vault Event = "vault"
)

// Events lists the apparatus in their fixed display order.
var Events = []Event{Bars, Beam, Floor, Vault}

// ValidEvent reports whether e is one of the four apparatus tags.
func ValidEvent(e Event) bool {
	switch e {
	case Bars, Beam, Floor, Vault:
		return true
	}
	return false
}

// Athlete is a member of a group. The id is opaque and unique within
// the owning group.
type Athlete struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Group owns an ordered list of athletes that seed a new meet.
type Group struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SkillLevel SkillLevel `json:"skillLevel"`
	Athletes   []Athlete  `json:"gymnasts"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	c := g
	c.Athletes = append([]Athlete(nil), g.Athletes...)
	return c
}

// EventRecord holds the scores submitted for a single apparatus plus
// its completion flag. Scores map athlete id to a value in [0, 10].
type EventRecord struct {
	Event     Event              `json:"event"`
	Scores    map[string]float64 `json:"scores"`
	Completed bool               `json:"completed"`
}

// Clone returns a deep copy of the record.
func (r EventRecord) Clone() EventRecord {
	c := r
	c.Scores = make(map[string]float64, len(r.Scores))
	for id, s := range r.Scores {
		c.Scores[id] = s
	}
	return c
}

// Meet is the in-progress meet. The roster is a snapshot copy of the
// group's athlete list taken at creation time; later group edits must
// not change it.
type Meet struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Date        string                `json:"date"`
	GroupID     string                `json:"groupId"`
	Roster      []Athlete             `json:"gymnasts"`
	Records     map[Event]EventRecord `json:"eventScores"`
	ActiveEvent Event                 `json:"activeEvent,omitempty"`
}

// Clone returns a deep copy of the meet.
func (m *Meet) Clone() *Meet {
	if m == nil {
		return nil
	}
	c := *m
	c.Roster = append([]Athlete(nil), m.Roster...)
	c.Records = make(map[Event]EventRecord, len(m.Records))
	for e, r := range m.Records {
		c.Records[e] = r.Clone()
	}
	return &c
}

// HasAthlete reports whether id is part of the roster snapshot.
func (m *Meet) HasAthlete(id string) bool {
	for _, a := range m.Roster {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Score returns the recorded score for an athlete on an event.
func (m *Meet) Score(e Event, athleteID string) (float64, bool) {
	s, ok := m.Records[e].Scores[athleteID]
	return s, ok
}

// Result is the derived standing of one athlete. EventScores carries
// an entry per apparatus; nil marks an unscored event.
type Result struct {
	Athlete     Athlete            `json:"gymnast"`
	TotalScore  float64            `json:"totalScore"`
	EventScores map[Event]*float64 `json:"eventScores"`
	Rank        int                `json:"rank"`
}

// MeetResults is the derived standing of the whole meet, recomputed
// on demand and never stored independently of the meet.
type MeetResults struct {
	Results         []Result `json:"gymnasts"`
	TeamTotal       float64  `json:"teamTotal"`
	TopThree        []Result `json:"topThree"`
	CompletedEvents []Event  `json:"completedEvents"`
}

// CompletedMeet is the immutable archival record appended to history.
type CompletedMeet struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Date        string      `json:"date"`
	GroupName   string      `json:"groupName"`
	SkillLevel  SkillLevel  `json:"skillLevel"`
	Results     MeetResults `json:"results"`
	CompletedAt time.Time   `json:"completedAt"`
}

// AppData is the full persisted state blob.
type AppData struct {
	Groups      []Group         `json:"groups"`
	CurrentMeet *Meet           `json:"currentMeet"`
	MeetHistory []CompletedMeet `json:"meetHistory"`
}

// DefaultAppData returns the empty state used before anything was
// saved, and as the fallback when a stored blob cannot be read.
func DefaultAppData() *AppData {
	return &AppData{
		Groups:      []Group{},
		MeetHistory: []CompletedMeet{},
	}
}

// Normalize fills nil collections after decoding a partial blob so
// callers never hit nil maps or slices. Unknown fields are already
// dropped by the JSON decoder.
func (d *AppData) Normalize() {
	if d.Groups == nil {
		d.Groups = []Group{}
	}
	if d.MeetHistory == nil {
		d.MeetHistory = []CompletedMeet{}
	}
	for i := range d.Groups {
		if d.Groups[i].Athletes == nil {
			d.Groups[i].Athletes = []Athlete{}
		}
	}
	if m := d.CurrentMeet; m != nil {
		if m.Roster == nil {
			m.Roster = []Athlete{}
		}
		if m.Records == nil {
			m.Records = make(map[Event]EventRecord, len(Events))
		}
		for _, e := range Events {
			r, ok := m.Records[e]
			if !ok {
				r = EventRecord{Event: e}
			}
			if r.Scores == nil {
				r.Scores = map[string]float64{}
			}
			m.Records[e] = r
		}
	}
}

// Clone returns a deep copy of the whole state blob.
func (d *AppData) Clone() *AppData {
	if d == nil {
		return nil
	}
	c := &AppData{
		Groups:      make([]Group, 0, len(d.Groups)),
		CurrentMeet: d.CurrentMeet.Clone(),
		MeetHistory: append([]CompletedMeet(nil), d.MeetHistory...),
	}
	for _, g := range d.Groups {
		c.Groups = append(c.Groups, g.Clone())
	}
	return c
}
