// Package service owns the application state and its lifecycle.
//
// A single Service instance holds the authoritative state blob for
// the session: the group roster, the meet in progress (at most one),
// and the archive of completed meets. Every command takes the write
// lock, builds the next snapshot from the current one, publishes it,
// and then writes through to the store. A failed write is logged and
// swallowed; the in-memory snapshot stays the source of truth.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gymlab/palaestra/internal/adapters/repository"
	"github.com/gymlab/palaestra/internal/domain/meet"
	"github.com/gymlab/palaestra/internal/domain/model"
	"github.com/gymlab/palaestra/internal/domain/results"
	"github.com/gymlab/palaestra/internal/domain/score"
	"github.com/gymlab/palaestra/pkg/logger"
	"github.com/gymlab/palaestra/pkg/metrics"
)

// meetDateLayout is the ISO day a meet was started on.
const meetDateLayout = "2006-01-02"

// defaultMeetName is used when a meet is started with a blank name.
const defaultMeetName = "New Meet"

// Fallbacks recorded on a completed meet when its group was deleted
// while the meet was running.
const (
	unknownGroupName = "Unknown"
	fallbackSkill    = model.Bronze
)

// Service is the lifecycle controller plus group repository. All
// methods are safe for concurrent use; internally there is exactly
// one writer at a time.
type Service struct {
	mu sync.Mutex

	data  *model.AppData
	store repository.Store

	now   func() time.Time
	newID func() string

	maxHistory int

	logger logger.Logger
}

// New constructs a Service with default configuration. Without a
// WithStore option the state lives only in memory.
func New(opts ...Option) *Service {
	s := &Service{
		data:  model.DefaultAppData(),
		store: repository.NewMemStore(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the configured logger, falling back to the global one.
func (s *Service) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s.logger
}

// Start loads persisted state. A missing blob is normal on first run;
// a corrupt one is logged and replaced with the default empty state
// so startup never fails on bad data.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load(ctx)
	switch {
	case err == nil:
		s.data = data
		s.log().Info(ctx, "state loaded",
			logger.Int("groups", len(data.Groups)),
			logger.Int("history", len(data.MeetHistory)))
	case err == repository.ErrNoData:
		s.log().Info(ctx, "no stored state; starting empty")
	default:
		s.log().Warn(ctx, "stored state unreadable; starting empty", logger.Error(err))
		metrics.RecordPersistError()
	}

	metrics.SetGroupCount(len(s.data.Groups))
	return nil
}

// Stop closes the underlying store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Close(); err != nil {
		s.log().Warn(context.Background(), "store close failed", logger.Error(err))
	}
}

// persist writes the current snapshot through to the store. Failures
// are cosmetic for the session; they are logged, counted, and
// swallowed. Callers must hold the lock.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		s.log().Warn(ctx, "state save failed; in-memory state retained", logger.Error(err))
		metrics.RecordPersistError()
	}
}

// Groups returns a copy of every group, insertion order.
func (s *Service) Groups(_ context.Context) []model.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Group, 0, len(s.data.Groups))
	for _, g := range s.data.Groups {
		out = append(out, g.Clone())
	}
	return out
}

// Group returns a copy of one group by id.
func (s *Service) Group(_ context.Context, id string) (model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.data.Groups {
		if g.ID == id {
			return g.Clone(), nil
		}
	}
	return model.Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
}

// CreateGroup adds a group with the given athlete names. Blank names
// are skipped; each athlete receives its own id, so a whole batch
// created in one call can never collide.
func (s *Service) CreateGroup(ctx context.Context, name string, skill model.SkillLevel, athleteNames []string) (model.Group, error) {
	if !model.ValidSkillLevel(skill) {
		return model.Group{}, fmt.Errorf("%w: %q", ErrInvalidSkillLevel, skill)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := model.Group{
		ID:         s.newID(),
		Name:       strings.TrimSpace(name),
		SkillLevel: skill,
		Athletes:   []model.Athlete{},
		CreatedAt:  s.now(),
	}
	for _, n := range athleteNames {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		g.Athletes = append(g.Athletes, model.Athlete{ID: s.newID(), Name: n})
	}

	next := s.data.Clone()
	next.Groups = append(next.Groups, g)
	s.data = next
	s.persist(ctx)
	metrics.SetGroupCount(len(s.data.Groups))
	return g.Clone(), nil
}

// UpdateGroup renames a group or changes its level. Zero values keep
// the existing field.
func (s *Service) UpdateGroup(ctx context.Context, id, name string, skill model.SkillLevel) (model.Group, error) {
	if skill != "" && !model.ValidSkillLevel(skill) {
		return model.Group{}, fmt.Errorf("%w: %q", ErrInvalidSkillLevel, skill)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	for i := range next.Groups {
		if next.Groups[i].ID != id {
			continue
		}
		if n := strings.TrimSpace(name); n != "" {
			next.Groups[i].Name = n
		}
		if skill != "" {
			next.Groups[i].SkillLevel = skill
		}
		s.data = next
		s.persist(ctx)
		return next.Groups[i].Clone(), nil
	}
	return model.Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
}

// DeleteGroup removes a group wholesale. A meet already running on
// its roster keeps the snapshot it captured at start.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	for i := range next.Groups {
		if next.Groups[i].ID != id {
			continue
		}
		next.Groups = append(next.Groups[:i], next.Groups[i+1:]...)
		s.data = next
		s.persist(ctx)
		metrics.SetGroupCount(len(s.data.Groups))
		return nil
	}
	return fmt.Errorf("%w: %s", ErrGroupNotFound, id)
}

// AddAthlete appends an athlete to a group.
func (s *Service) AddAthlete(ctx context.Context, groupID, name string) (model.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := model.Athlete{ID: s.newID(), Name: strings.TrimSpace(name)}
	next := s.data.Clone()
	for i := range next.Groups {
		if next.Groups[i].ID != groupID {
			continue
		}
		next.Groups[i].Athletes = append(next.Groups[i].Athletes, a)
		s.data = next
		s.persist(ctx)
		return a, nil
	}
	return model.Athlete{}, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
}

// RemoveAthlete drops an athlete from a group.
func (s *Service) RemoveAthlete(ctx context.Context, groupID, athleteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	for i := range next.Groups {
		if next.Groups[i].ID != groupID {
			continue
		}
		athletes := next.Groups[i].Athletes
		for j := range athletes {
			if athletes[j].ID != athleteID {
				continue
			}
			next.Groups[i].Athletes = append(athletes[:j], athletes[j+1:]...)
			s.data = next
			s.persist(ctx)
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAthleteNotFound, athleteID)
	}
	return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
}

// StartMeet moves the controller from Idle to InProgress over a
// snapshot of the group's roster. Exactly one meet may run at a time.
func (s *Service) StartMeet(ctx context.Context, name, groupID string) (*model.Meet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.CurrentMeet != nil {
		return nil, ErrMeetInProgress
	}

	var group *model.Group
	for i := range s.data.Groups {
		if s.data.Groups[i].ID == groupID {
			group = &s.data.Groups[i]
			break
		}
	}
	if group == nil {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultMeetName
	}

	m, err := meet.New(s.newID(), name, s.now().Format(meetDateLayout), groupID, group.Athletes)
	if err != nil {
		return nil, err
	}

	next := s.data.Clone()
	next.CurrentMeet = m
	s.data = next
	s.persist(ctx)
	metrics.RecordMeetStarted()
	s.log().Info(ctx, "meet started",
		logger.String("meet", m.Name),
		logger.Int("roster", len(m.Roster)))
	return m.Clone(), nil
}

// CurrentMeet returns a copy of the meet in progress.
func (s *Service) CurrentMeet(_ context.Context) (*model.Meet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.CurrentMeet == nil {
		return nil, ErrNoMeet
	}
	return s.data.CurrentMeet.Clone(), nil
}

// SetActiveEvent changes which apparatus is in focus. Empty clears.
func (s *Service) SetActiveEvent(ctx context.Context, e model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.CurrentMeet == nil {
		return ErrNoMeet
	}
	m, err := meet.WithActiveEvent(s.data.CurrentMeet, e)
	if err != nil {
		return err
	}
	next := s.data.Clone()
	next.CurrentMeet = m
	s.data = next
	s.persist(ctx)
	return nil
}

// UpdateScore upserts an athlete's score for an event, or clears it
// when v is nil. Editing a completed event is allowed.
func (s *Service) UpdateScore(ctx context.Context, e model.Event, athleteID string, v *float64) error {
	if v != nil && !score.Valid(*v) {
		return fmt.Errorf("%w: %v", ErrInvalidScore, *v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.CurrentMeet == nil {
		return ErrNoMeet
	}
	m, err := meet.WithScore(s.data.CurrentMeet, e, athleteID, v)
	if err != nil {
		return err
	}
	next := s.data.Clone()
	next.CurrentMeet = m
	s.data = next
	s.persist(ctx)
	if v != nil {
		metrics.RecordScoreRecorded()
	}
	return nil
}

// MarkEventComplete flips the completion flag for an event once every
// roster athlete has a score on it.
func (s *Service) MarkEventComplete(ctx context.Context, e model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.CurrentMeet == nil {
		return ErrNoMeet
	}
	m, err := meet.WithEventComplete(s.data.CurrentMeet, e)
	if err != nil {
		return err
	}
	next := s.data.Clone()
	next.CurrentMeet = m
	s.data = next
	s.persist(ctx)
	metrics.RecordEventCompleted()
	return nil
}

// Results recomputes the live standings for the meet in progress.
func (s *Service) Results(_ context.Context) (model.MeetResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.CurrentMeet == nil {
		return model.MeetResults{}, ErrNoMeet
	}
	return results.Compute(s.data.CurrentMeet), nil
}

// CompleteMeet computes the final standings, archives the meet at the
// head of history, and returns the controller to Idle. Completing
// with unscored events is permitted; totals reflect what was scored.
func (s *Service) CompleteMeet(ctx context.Context) (model.CompletedMeet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.data.CurrentMeet
	if m == nil {
		return model.CompletedMeet{}, ErrNoMeet
	}

	groupName := unknownGroupName
	skill := fallbackSkill
	for _, g := range s.data.Groups {
		if g.ID == m.GroupID {
			groupName = g.Name
			skill = g.SkillLevel
			break
		}
	}

	completed := model.CompletedMeet{
		ID:          m.ID,
		Name:        m.Name,
		Date:        m.Date,
		GroupName:   groupName,
		SkillLevel:  skill,
		Results:     results.Compute(m),
		CompletedAt: s.now(),
	}

	next := s.data.Clone()
	next.CurrentMeet = nil
	next.MeetHistory = append([]model.CompletedMeet{completed}, next.MeetHistory...)
	if s.maxHistory > 0 && len(next.MeetHistory) > s.maxHistory {
		next.MeetHistory = next.MeetHistory[:s.maxHistory]
	}
	s.data = next
	s.persist(ctx)
	metrics.RecordMeetCompleted()
	s.log().Info(ctx, "meet completed",
		logger.String("meet", completed.Name),
		logger.Float64("team_total", completed.Results.TeamTotal))
	return completed, nil
}

// CancelMeet discards the meet in progress without archiving it.
func (s *Service) CancelMeet(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.CurrentMeet == nil {
		return ErrNoMeet
	}
	next := s.data.Clone()
	next.CurrentMeet = nil
	s.data = next
	s.persist(ctx)
	metrics.RecordMeetCancelled()
	return nil
}

// History returns the completed meets, most recent first.
func (s *Service) History(_ context.Context) []model.CompletedMeet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CompletedMeet(nil), s.data.MeetHistory...)
}

// Export serializes the full state blob.
func (s *Service) Export(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export state: %w", err)
	}
	return b, nil
}

// Import replaces the whole state from an exported blob. The payload
// must carry a groups array; anything else is rejected before any
// state changes.
func (s *Service) Import(ctx context.Context, payload []byte) error {
	var probe struct {
		Groups *json.RawMessage `json:"groups"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if probe.Groups == nil {
		return ErrInvalidImport
	}
	var groups []model.Group
	if err := json.Unmarshal(*probe.Groups, &groups); err != nil {
		return fmt.Errorf("%w: groups is not an array", ErrInvalidImport)
	}

	var data model.AppData
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	data.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = &data
	s.persist(ctx)
	metrics.SetGroupCount(len(s.data.Groups))
	s.log().Info(ctx, "state imported", logger.Int("groups", len(data.Groups)))
	return nil
}

// ClearAll wipes everything back to the default empty state. The
// caller must pass an explicit confirmation.
func (s *Service) ClearAll(ctx context.Context, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = model.DefaultAppData()
	s.persist(ctx)
	metrics.SetGroupCount(0)
	s.log().Warn(ctx, "all data cleared")
	return nil
}
