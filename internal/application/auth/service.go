package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/edustack/accounts-api/internal/domain"
	"github.com/edustack/accounts-api/internal/infrastructure/smtp"
	"github.com/edustack/accounts-api/internal/infrastructure/userstore"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RequestResetRequest struct {
	Email string `json:"email"`
}

type VerifyPasscodeRequest struct {
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) error
	RequestReset(ctx context.Context, email string) error
	VerifyPasscode(ctx context.Context, email, passcode string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type recordStore interface {
	Load(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, users []domain.User) error
}

type service struct {
	store  recordStore
	mailer smtp.Mailer
}

func NewService(store recordStore, mailer smtp.Mailer) Service {
	return &service{store: store, mailer: mailer}
}

// Login checks the password against the stored bcrypt hash. The two failure
// cases carry distinct messages on purpose, matching the product's surface;
// both map to the same status code.
func (s *service) Login(ctx context.Context, req LoginRequest) error {
	users, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	u := userstore.FindByEmail(users, req.Email)
	if u == nil {
		return fmt.Errorf("account doesn't exist: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
	}
	slog.Info("login successful", "email", u.Email)
	return nil
}

// RequestReset stores a fresh 6-digit passcode on the record and emails it.
// The passcode is persisted before the email goes out, so a delivered code
// is always the one on record; a persistence failure aborts without sending.
func (s *service) RequestReset(ctx context.Context, email string) error {
	norm := domain.NormalizeEmail(email)
	if norm == "" {
		return fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	u := userstore.FindByEmail(users, norm)
	if u == nil {
		return fmt.Errorf("email not found: %w", domain.ErrNotFound)
	}

	passcode, err := newPasscode()
	if err != nil {
		return err
	}
	u.Passcode = &passcode

	if err := s.store.Save(ctx, users); err != nil {
		return fmt.Errorf("save passcode: %w", err)
	}

	body := fmt.Sprintf("Your password reset passcode is: %s\n\nPlease use this passcode to reset your password.", passcode)
	if err := s.mailer.SendEmail(u.Email, "Password Reset Passcode", body); err != nil {
		return fmt.Errorf("send passcode email: %w", err)
	}
	slog.Info("password reset passcode sent", "email", norm)
	return nil
}

// VerifyPasscode consumes the stored passcode on an exact match. The record's
// passcode is cleared before the success is reported, so the same code can
// never verify twice.
func (s *service) VerifyPasscode(ctx context.Context, email, passcode string) error {
	if domain.NormalizeEmail(email) == "" {
		return fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}
	if passcode == "" {
		return fmt.Errorf("passcode is required: %w", domain.ErrBadRequest)
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	u := userstore.FindByEmail(users, email)
	if u == nil {
		return fmt.Errorf("email not found: %w", domain.ErrNotFound)
	}
	if u.Passcode == nil || *u.Passcode != passcode {
		return fmt.Errorf("invalid passcode: %w", domain.ErrUnauthorized)
	}

	u.Passcode = nil
	if err := s.store.Save(ctx, users); err != nil {
		return fmt.Errorf("clear passcode: %w", err)
	}
	slog.Info("passcode verified", "email", u.Email)
	return nil
}

// ResetPassword replaces the stored hash. It is not gated on a prior
// VerifyPasscode; the client flow is trusted to order the two calls.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	u := userstore.FindByEmail(users, email)
	if u == nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)

	if err := s.store.Save(ctx, users); err != nil {
		return err
	}
	slog.Info("password reset", "email", email)
	return nil
}

// newPasscode draws uniformly from [100000, 999999], always six ASCII digits.
func newPasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}
