package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"board-backend/internal/apperr"
	"board-backend/internal/auth"
	"board-backend/internal/models"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "BoardBackend"

// TOTPMemberRepo is the member repository slice the 2FA flow needs.
type TOTPMemberRepo interface {
	Get(ctx context.Context, id string) (*models.Member, error)
	SetTOTPSecret(ctx context.Context, memberID, secret string) error
	EnableTOTP(ctx context.Context, memberID string) error
	DisableTOTP(ctx context.Context, memberID string) error
}

type TOTPService struct {
	Members TOTPMemberRepo
	JWT     TokenIssuer
}

func NewTOTPService(members TOTPMemberRepo, jwt TokenIssuer) *TOTPService {
	return &TOTPService{Members: members, JWT: jwt}
}

// GenerateSetup provisions a fresh secret for a member and returns the QR
// code. The secret stays dormant until VerifyAndEnable confirms it.
func (s *TOTPService) GenerateSetup(ctx context.Context, member *models.Member) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: member.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Members.SetTOTPSecret(ctx, member.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: member.Email,
	}, nil
}

// VerifyAndEnable confirms the first code from the authenticator app and
// switches 2FA on for the account.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, memberID, code string) error {
	member, err := s.Members.Get(ctx, memberID)
	if err != nil {
		return err
	}
	if member.TOTPSecret == "" {
		return apperr.Conflict("2fa setup not initiated")
	}
	if !totp.Validate(code, member.TOTPSecret) {
		return apperr.Forbidden("invalid verification code")
	}
	return s.Members.EnableTOTP(ctx, memberID)
}

// CompleteLogin exchanges a valid code presented with a temp token for a
// full session token.
func (s *TOTPService) CompleteLogin(ctx context.Context, memberID, code string) (*models.AuthResponse, error) {
	member, err := s.Members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !member.TOTPEnabled || member.TOTPSecret == "" {
		return nil, apperr.Conflict("2fa is not enabled")
	}
	if !totp.Validate(code, member.TOTPSecret) {
		return nil, apperr.Forbidden("invalid verification code")
	}

	token, err := s.JWT.GenerateToken(member)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Member: member.DTO()}, nil
}

// Disable turns 2FA off after re-verifying both password and a current code.
func (s *TOTPService) Disable(ctx context.Context, memberID string, req *models.TOTPDisableRequest) error {
	member, err := s.Members.Get(ctx, memberID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(member.PasswordHash, req.Password) {
		return apperr.Forbidden("invalid password")
	}
	if !totp.Validate(req.Code, member.TOTPSecret) {
		return apperr.Forbidden("invalid verification code")
	}
	return s.Members.DisableTOTP(ctx, memberID)
}

func (s *TOTPService) Status(ctx context.Context, memberID string) (*models.TOTPStatusResponse, error) {
	member, err := s.Members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &models.TOTPStatusResponse{
		Enabled:   member.TOTPEnabled,
		EnabledAt: models.ISOTimePtr(member.TOTPVerifiedAt),
	}, nil
}
