package services

import (
	"context"
	"sync"
	"testing"

	"board-backend/internal/apperr"
	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[string]*models.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*models.Member)}
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *models.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = uuid.NewString()
	// New accounts start active, matching the column default
	m.IsActive = true
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMemberRepo) Get(ctx context.Context, id string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok || m.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.Email == email && m.DeletedAt == nil {
			cp := *m
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.Username == username && m.DeletedAt == nil {
			cp := *m
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) List(ctx context.Context) ([]*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Member
	for _, m := range f.members {
		if m.DeletedAt == nil {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, m *models.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.members[m.ID]
	if !ok || existing.DeletedAt != nil {
		return nil
	}
	cp := *m
	if cp.PasswordHash == "" {
		cp.PasswordHash = existing.PasswordHash
	}
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMemberRepo) SetActiveStatus(ctx context.Context, memberID string, isActive bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.members[memberID]; ok && m.DeletedAt == nil {
		m.IsActive = isActive
	}
	return nil
}

func (f *fakeMemberRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok || m.DeletedAt != nil {
		return false, nil
	}
	now := frozenNow
	m.DeletedAt = &now
	return true, nil
}

type fakeIssuer struct{}

func (fakeIssuer) GenerateToken(m *models.Member) (string, error)     { return "token-" + m.ID, nil }
func (fakeIssuer) GenerateTempToken(m *models.Member) (string, error) { return "temp-" + m.ID, nil }

func TestSignup(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMemberRepo()
	svc := NewMemberService(repo, fakeIssuer{})

	resp, err := svc.Signup(ctx, &models.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter2hunter2",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleMember, resp.Member.Role)
	assert.True(t, resp.Member.IsActive)
	assert.NotEmpty(t, resp.Token)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Signup(ctx, &models.SignupRequest{
			Username: "alice2", Email: "alice@example.com", Password: "hunter2hunter2",
		})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := svc.Signup(ctx, &models.SignupRequest{
			Username: "alice", Email: "other@example.com", Password: "hunter2hunter2",
		})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, &models.SignupRequest{Username: "bob"})
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMemberRepo()
	svc := NewMemberService(repo, fakeIssuer{})

	resp, err := svc.Signup(ctx, &models.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter2hunter2",
	})
	assert.NoError(t, err)
	memberID := resp.Member.ID

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Login(ctx, &models.LoginRequest{Email: "alice@example.com", Password: "hunter2hunter2"})
		assert.NoError(t, err)
		assert.Equal(t, "token-"+memberID, got.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, badPass := svc.Login(ctx, &models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		_, badEmail := svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
		assert.Equal(t, ErrInvalidCredentials, badPass)
		assert.Equal(t, ErrInvalidCredentials, badEmail)
	})

	t.Run("suspended account is forbidden", func(t *testing.T) {
		assert.NoError(t, svc.SetActiveStatus(ctx, memberID, false))
		_, err := svc.Login(ctx, &models.LoginRequest{Email: "alice@example.com", Password: "hunter2hunter2"})
		assert.True(t, apperr.IsForbidden(err))
		assert.NoError(t, svc.SetActiveStatus(ctx, memberID, true))
	})

	t.Run("2fa account gets a temp token", func(t *testing.T) {
		repo.mu.Lock()
		repo.members[memberID].TOTPEnabled = true
		repo.mu.Unlock()

		got, err := svc.Login(ctx, &models.LoginRequest{Email: "alice@example.com", Password: "hunter2hunter2"})
		assert.Equal(t, ErrTOTPRequired, err)
		assert.Equal(t, "temp-"+memberID, got.Token)
	})
}

func TestAdminAccountManagement(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMemberRepo()
	svc := NewMemberService(repo, fakeIssuer{})

	mod, err := svc.CreateMember(ctx, &models.CreateMemberRequest{
		Username: "mod", Email: "mod@example.com", Password: "hunter2hunter2", Role: models.RoleModerator,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, mod.Role)

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := svc.CreateMember(ctx, &models.CreateMemberRequest{
			Username: "x", Email: "x@example.com", Password: "hunter2hunter2", Role: models.Role("superuser"),
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("role promotion", func(t *testing.T) {
		got, err := svc.UpdateMember(ctx, mod.ID, &models.UpdateMemberRequest{Role: models.RoleAdmin})
		assert.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
	})

	t.Run("delete is a soft delete", func(t *testing.T) {
		assert.NoError(t, svc.Delete(ctx, mod.ID))
		assert.True(t, apperr.IsNotFound(svc.Delete(ctx, mod.ID)))
		_, err := svc.Get(ctx, mod.ID)
		assert.True(t, apperr.IsNotFound(err))
	})
}
