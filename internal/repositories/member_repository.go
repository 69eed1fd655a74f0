package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepository struct {
	DB *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{DB: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *models.Member) error {
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	m.ID = uuid.NewString()
	m.IsActive = true
	return r.DB.QueryRow(ctx,
		`INSERT INTO members(id, username, email, password_hash, role, is_active)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING created_at, updated_at`,
		m.ID, m.Username, m.Email, m.PasswordHash, m.Role, m.IsActive,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

const memberColumns = `id, username, email, password_hash, role, is_active,
	 COALESCE(totp_secret, ''), totp_enabled, totp_verified_at, created_at, updated_at, deleted_at`

func (r *MemberRepository) scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &m.Role, &m.IsActive,
		&m.TOTPSecret, &m.TOTPEnabled, &m.TOTPVerifiedAt, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) Get(ctx context.Context, id string) (*models.Member, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id=$1 AND deleted_at IS NULL`, id)
	return r.scanMember(row)
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE email=$1 AND deleted_at IS NULL`, email)
	return r.scanMember(row)
}

func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE username=$1 AND deleted_at IS NULL`, username)
	return r.scanMember(row)
}

// List returns all live members, newest first
func (r *MemberRepository) List(ctx context.Context) ([]*models.Member, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+memberColumns+` FROM members WHERE deleted_at IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Update updates an existing member
func (r *MemberRepository) Update(ctx context.Context, m *models.Member) error {
	// If password is empty, don't update it (keep existing password)
	if m.PasswordHash != "" {
		_, err := r.DB.Exec(ctx,
			`UPDATE members SET username=$1, email=$2, password_hash=$3, role=$4, updated_at=NOW()
			 WHERE id=$5 AND deleted_at IS NULL`,
			m.Username, m.Email, m.PasswordHash, m.Role, m.ID)
		return err
	}

	_, err := r.DB.Exec(ctx,
		`UPDATE members SET username=$1, email=$2, role=$3, updated_at=NOW()
         WHERE id=$4 AND deleted_at IS NULL`,
		m.Username, m.Email, m.Role, m.ID)
	return err
}

// SetActiveStatus suspends or reinstates a member
func (r *MemberRepository) SetActiveStatus(ctx context.Context, memberID string, isActive bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET is_active=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		isActive, memberID)
	return err
}

// SoftDelete marks the member deleted; returns false if already gone.
func (r *MemberRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE members SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetTOTPSecret stores the TOTP secret for a member (during setup, before verification)
func (r *MemberRepository) SetTOTPSecret(ctx context.Context, memberID, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET totp_secret=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		secret, memberID)
	return err
}

// EnableTOTP marks 2FA as enabled after verification
func (r *MemberRepository) EnableTOTP(ctx context.Context, memberID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET totp_enabled=true, totp_verified_at=NOW(), updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL`, memberID)
	return err
}

// DisableTOTP disables 2FA and clears the secret
func (r *MemberRepository) DisableTOTP(ctx context.Context, memberID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET totp_enabled=false, totp_secret=NULL, totp_verified_at=NULL, updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL`, memberID)
	return err
}
