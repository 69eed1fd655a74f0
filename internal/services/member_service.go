package services

import (
	"context"
	"errors"

	"board-backend/internal/apperr"
	"board-backend/internal/auth"
	"board-backend/internal/cache"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// MemberRepo is the slice of the member repository this service consumes.
type MemberRepo interface {
	Create(ctx context.Context, m *models.Member) error
	Get(ctx context.Context, id string) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	GetByUsername(ctx context.Context, username string) (*models.Member, error)
	List(ctx context.Context) ([]*models.Member, error)
	Update(ctx context.Context, m *models.Member) error
	SetActiveStatus(ctx context.Context, memberID string, isActive bool) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// TokenIssuer abstracts the JWT manager for tests.
type TokenIssuer interface {
	GenerateToken(m *models.Member) (string, error)
	GenerateTempToken(m *models.Member) (string, error)
}

type MemberService struct {
	Repo MemberRepo
	JWT  TokenIssuer
}

func NewMemberService(repo MemberRepo, jwt TokenIssuer) *MemberService {
	return &MemberService{Repo: repo, JWT: jwt}
}

// ErrInvalidCredentials is deliberately indistinguishable between a bad
// email and a bad password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTOTPRequired signals login step 2: the caller holds a temp token and
// must present a TOTP code.
var ErrTOTPRequired = errors.New("totp verification required")

// Signup registers a new member account with the member role.
func (s *MemberService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("username, email, and password are required")
	}

	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperr.Conflict("an account with this email already exists")
	}
	if existing, _ := s.Repo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, apperr.Conflict("this username is taken")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleMember,
	}
	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, err
	}

	token, err := s.JWT.GenerateToken(member)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, Member: member.DTO()}, nil
}

// Login authenticates a member. When 2FA is enabled the returned token is
// a short-lived temp token and err is ErrTOTPRequired.
func (s *MemberService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	member, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Redis short-circuits repeat bcrypt verifications of the same
	// credentials; a miss falls through to the full check.
	if cachedID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); !ok || cachedID != member.ID {
		if !auth.VerifyPassword(member.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, req.Email, req.Password, member.ID)
	}

	if !member.IsActive {
		return nil, apperr.Forbidden("account suspended")
	}

	if member.TOTPEnabled {
		temp, err := s.JWT.GenerateTempToken(member)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{Token: temp, Member: member.DTO()}, ErrTOTPRequired
	}

	token, err := s.JWT.GenerateToken(member)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, Member: member.DTO()}, nil
}

func (s *MemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}
	return member, nil
}

func (s *MemberService) List(ctx context.Context) ([]*models.Member, error) {
	return s.Repo.List(ctx)
}

// CreateMember is the administrator path that can assign any role.
func (s *MemberService) CreateMember(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("username, email, and password are required")
	}
	if req.Role != "" && !req.Role.Valid() {
		return nil, apperr.Validation("unknown role %q", req.Role)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateMember is the administrator path for account edits.
func (s *MemberService) UpdateMember(ctx context.Context, id string, req *models.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != "" {
		if !req.Role.Valid() {
			return nil, apperr.Validation("unknown role %q", req.Role)
		}
		member.Role = req.Role
	}
	if req.Username != "" {
		member.Username = req.Username
	}
	if req.Email != "" {
		member.Email = req.Email
	}
	member.PasswordHash = ""
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		member.PasswordHash = hashed
	}

	if err := s.Repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// SetActiveStatus suspends or reinstates an account.
func (s *MemberService) SetActiveStatus(ctx context.Context, id string, isActive bool) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.SetActiveStatus(ctx, id, isActive)
}

// Delete soft-deletes an account; a second delete reports NotFound.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	ok, err := s.Repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("member not found")
	}
	return nil
}
