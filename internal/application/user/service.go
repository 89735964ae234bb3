package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edustack/accounts-api/internal/domain"
	"github.com/edustack/accounts-api/internal/infrastructure/userstore"
	"github.com/edustack/accounts-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) error
	GetProfile(ctx context.Context, email string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) error
}

type recordStore interface {
	Load(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, users []domain.User) error
}

type service struct {
	store recordStore
}

func NewService(store recordStore) Service {
	return &service{store: store}
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) error {
	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if userstore.FindByEmail(users, email) != nil {
		return fmt.Errorf("user already exists: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := domain.User{
		UserID:       id.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Mobile:       req.Mobile,
		Email:        email,
		DateOfBirth:  req.DateOfBirth,
		Age:          req.Age,
		Gender:       req.Gender,
		Profession:   req.Profession,
		PasswordHash: string(hash),
		Passcode:     nil,
	}
	u.SetProfessionDetail(req.Profession, req.StudyField, req.JobRole, req.OtherProfession)

	users = append(users, u)
	if err := s.store.Save(ctx, users); err != nil {
		return err
	}
	slog.Info("user signed up", "email", email)
	return nil
}

func (s *service) GetProfile(ctx context.Context, email string) (*domain.Profile, error) {
	if domain.NormalizeEmail(email) == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}
	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	u := userstore.FindByEmail(users, email)
	if u == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return u.Profile(), nil
}

func (s *service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) error {
	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	u := userstore.FindByEmail(users, email)
	if u == nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	u.FirstName = orKeep(req.FirstName, u.FirstName)
	u.LastName = orKeep(req.LastName, u.LastName)
	u.Mobile = orKeep(req.Mobile, u.Mobile)
	u.DateOfBirth = orKeep(req.DateOfBirth, u.DateOfBirth)
	u.Age = orKeep(req.Age, u.Age)
	u.Gender = orKeep(req.Gender, u.Gender)
	u.Profession = orKeep(req.Profession, u.Profession)
	u.Email = email
	// The dependent field follows the profession submitted in this request,
	// not the merged one: submitting no profession clears all three.
	u.SetProfessionDetail(req.Profession, req.StudyField, req.JobRole, req.OtherProfession)

	if err := s.store.Save(ctx, users); err != nil {
		return err
	}
	slog.Info("user profile updated", "email", email)
	return nil
}

// orKeep keeps the stored value when the submitted one is empty. An
// intentional clear-to-empty is indistinguishable from an omitted field.
func orKeep(submitted, stored string) string {
	if submitted != "" {
		return submitted
	}
	return stored
}
