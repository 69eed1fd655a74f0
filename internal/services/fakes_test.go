package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var frozenNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// In-memory repository fakes backing the service tests. They mirror the
// SQL repositories' contracts: pgx.ErrNoRows on missing rows and
// (false, nil) on conditional updates that matched nothing.

type fakeActionRepo struct {
	mu      sync.Mutex
	actions map[string]*models.ModerationAction
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{actions: make(map[string]*models.ModerationAction)}
}

func (f *fakeActionRepo) Create(ctx context.Context, a *models.ModerationAction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.NewString()
	cp := *a
	f.actions[a.ID] = &cp
	return nil
}

func (f *fakeActionRepo) Get(ctx context.Context, id string) (*models.ModerationAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actions[id]
	if !ok || a.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeActionRepo) List(ctx context.Context, limit, offset int) ([]*models.ModerationAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ModerationAction
	for _, a := range f.actions {
		if a.DeletedAt == nil {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeActionRepo) Update(ctx context.Context, a *models.ModerationAction) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.actions[a.ID]
	if !ok || existing.DeletedAt != nil {
		return false, nil
	}
	cp := *a
	f.actions[a.ID] = &cp
	return true, nil
}

func (f *fakeActionRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actions[id]
	if !ok || a.DeletedAt != nil {
		return false, nil
	}
	now := frozenNow
	a.DeletedAt = &now
	return true, nil
}

type fakeAppealRepo struct {
	mu      sync.Mutex
	appeals map[string]*models.Appeal
	logs    []*models.ModerationLog
}

func newFakeAppealRepo() *fakeAppealRepo {
	return &fakeAppealRepo{appeals: make(map[string]*models.Appeal)}
}

func (f *fakeAppealRepo) Create(ctx context.Context, a *models.Appeal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.NewString()
	a.Status = models.AppealPending
	cp := *a
	f.appeals[a.ID] = &cp
	return nil
}

func (f *fakeAppealRepo) Get(ctx context.Context, id string) (*models.Appeal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appeals[id]
	if !ok || a.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppealRepo) GetLiveByActionID(ctx context.Context, actionID string) (*models.Appeal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appeals {
		if a.ModerationActionID == actionID && a.DeletedAt == nil {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAppealRepo) List(ctx context.Context, limit, offset int) ([]*models.Appeal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Appeal
	for _, a := range f.appeals {
		if a.DeletedAt == nil {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppealRepo) UpdateRationale(ctx context.Context, id, rationale string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appeals[id]
	if !ok || a.DeletedAt != nil || a.Status.Terminal() {
		return false, nil
	}
	a.AppealRationale = rationale
	return true, nil
}

func (f *fakeAppealRepo) Transition(ctx context.Context, id string, from, to models.AppealStatus,
	resolutionNotes *string, logEntry *models.ModerationLog) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appeals[id]
	if !ok || a.DeletedAt != nil || a.Status != from {
		return false, nil
	}
	a.Status = to
	if resolutionNotes != nil {
		a.ResolutionNotes = resolutionNotes
	}
	f.logs = append(f.logs, logEntry)
	return true, nil
}

func (f *fakeAppealRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appeals[id]
	if !ok || a.DeletedAt != nil {
		return false, nil
	}
	now := frozenNow
	a.DeletedAt = &now
	return true, nil
}

type fakeLogRepo struct {
	mu        sync.Mutex
	entries   map[string]*models.ModerationLog
	liveIDs   map[string]bool // action IDs considered live
	createErr error
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{
		entries: make(map[string]*models.ModerationLog),
		liveIDs: make(map[string]bool),
	}
}

func (f *fakeLogRepo) Create(ctx context.Context, l *models.ModerationLog) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return false, f.createErr
	}
	if !f.liveIDs[l.RelatedActionID] {
		return false, nil
	}
	l.ID = uuid.NewString()
	cp := *l
	f.entries[l.ID] = &cp
	return true, nil
}

func (f *fakeLogRepo) Get(ctx context.Context, id string) (*models.ModerationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (f *fakeLogRepo) ListByAction(ctx context.Context, actionID string) ([]*models.ModerationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ModerationLog
	for _, e := range f.entries {
		if e.RelatedActionID == actionID && e.DeletedAt == nil {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) UpdateDetails(ctx context.Context, id string, details *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.DeletedAt != nil {
		return false, nil
	}
	e.EventDetails = details
	return true, nil
}

func (f *fakeLogRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.DeletedAt != nil {
		return false, nil
	}
	now := frozenNow
	e.DeletedAt = &now
	return true, nil
}

type fakeTargets struct {
	live map[string]bool // key: type/id
}

func newFakeTargets() *fakeTargets {
	return &fakeTargets{live: make(map[string]bool)}
}

func (f *fakeTargets) add(targetType models.TargetType, id string) {
	f.live[fmt.Sprintf("%s/%s", targetType, id)] = true
}

func (f *fakeTargets) TargetExists(ctx context.Context, targetType models.TargetType, id string) (bool, error) {
	return f.live[fmt.Sprintf("%s/%s", targetType, id)], nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

type sentNotification struct {
	MemberID string
	Kind     string
	Subject  string
}

func (f *fakeNotifier) Notify(ctx context.Context, memberID, kind, subject string, body *string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{MemberID: memberID, Kind: kind, Subject: subject})
}
