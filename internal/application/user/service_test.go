package user

import (
	"context"
	"errors"
	"testing"

	"github.com/edustack/accounts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) Load(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u, _ := args.Get(0).([]domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, users []domain.User) error {
	return m.Called(ctx, users).Error(0)
}

func signupReq() domain.SignupRequest {
	return domain.SignupRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Mobile:          "5551234",
		Email:           "A@B.com",
		DateOfBirth:     "1990-12-10",
		Age:             "35",
		Gender:          "female",
		Profession:      domain.ProfessionStudent,
		StudyField:      "mathematics",
		JobRole:         "ignored",
		OtherProfession: "ignored",
		Password:        "abc123",
		ConfirmPassword: "abc123",
	}
}

// --- Signup ---

func TestSignup_MissingEmail(t *testing.T) {
	svc := NewService(nil)
	req := signupReq()
	req.Email = "   "

	err := svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSignup_PasswordMismatch(t *testing.T) {
	svc := NewService(nil)
	req := signupReq()
	req.ConfirmPassword = "abc124"

	err := svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSignup_DuplicateEmailAnyCasing(t *testing.T) {
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{{Email: "a@b.com"}}, nil)

	svc := NewService(st)
	err := svc.Signup(context.Background(), signupReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestSignup_HappyPath(t *testing.T) {
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{}, nil)

	var saved []domain.User
	st.On("Save", mock.Anything, mock.AnythingOfType("[]domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.User)
	}).Return(nil)

	svc := NewService(st)
	require.NoError(t, svc.Signup(context.Background(), signupReq()))

	require.Len(t, saved, 1)
	u := saved[0]
	assert.Equal(t, "a@b.com", u.Email)
	assert.NotEmpty(t, u.UserID)
	assert.Nil(t, u.Passcode)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("abc123")))
	assert.NotContains(t, u.PasswordHash, "abc123")

	// only the field matching the profession survives
	assert.Equal(t, domain.ProfessionStudent, u.Profession)
	assert.Equal(t, "mathematics", u.StudyField)
	assert.Empty(t, u.JobRole)
	assert.Empty(t, u.OtherProfession)
}

// --- GetProfile ---

func TestGetProfile_MissingEmail(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.GetProfile(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestGetProfile_NotFound(t *testing.T) {
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{}, nil)

	svc := NewService(st)
	_, err := svc.GetProfile(context.Background(), "x@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetProfile_StripsCredentials(t *testing.T) {
	code := "482913"
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{{
		UserID:       "u1",
		FirstName:    "Ada",
		Email:        "a@b.com",
		Profession:   domain.ProfessionEmployee,
		JobRole:      "engineer",
		PasswordHash: "$2a$10$secret",
		Passcode:     &code,
	}}, nil)

	svc := NewService(st)
	p, err := svc.GetProfile(context.Background(), "A@B.COM")
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "a@b.com", p.Email)
	assert.Equal(t, "engineer", p.JobRole)
}

// --- UpdateProfile ---

func TestUpdateProfile_NotFound(t *testing.T) {
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{}, nil)

	svc := NewService(st)
	err := svc.UpdateProfile(context.Background(), domain.UpdateProfileRequest{Email: "x@x.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateProfile_EmptyFieldsKeepStoredValues(t *testing.T) {
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{{
		Email:       "a@b.com",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Mobile:      "5551234",
		Age:         "35",
		Gender:      "female",
		Profession:  domain.ProfessionStudent,
		StudyField:  "mathematics",
		DateOfBirth: "1990-12-10",
	}}, nil)

	var saved []domain.User
	st.On("Save", mock.Anything, mock.AnythingOfType("[]domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.User)
	}).Return(nil)

	svc := NewService(st)
	require.NoError(t, svc.UpdateProfile(context.Background(), domain.UpdateProfileRequest{
		Email:      "a@b.com",
		Mobile:     "5559999",
		Profession: domain.ProfessionStudent,
		StudyField: "mathematics",
	}))

	require.Len(t, saved, 1)
	u := saved[0]
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Equal(t, "5559999", u.Mobile)
	assert.Equal(t, "35", u.Age)
	assert.Equal(t, "female", u.Gender)
	assert.Equal(t, "1990-12-10", u.DateOfBirth)
}

func TestUpdateProfile_ProfessionSwitchSwapsDependentField(t *testing.T) {
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{{
		Email:      "a@b.com",
		Profession: domain.ProfessionStudent,
		StudyField: "mathematics",
	}}, nil)

	var saved []domain.User
	st.On("Save", mock.Anything, mock.AnythingOfType("[]domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.User)
	}).Return(nil)

	svc := NewService(st)
	require.NoError(t, svc.UpdateProfile(context.Background(), domain.UpdateProfileRequest{
		Email:      "a@b.com",
		Profession: domain.ProfessionEmployee,
		JobRole:    "engineer",
	}))

	u := saved[0]
	assert.Equal(t, domain.ProfessionEmployee, u.Profession)
	assert.Equal(t, "engineer", u.JobRole)
	assert.Empty(t, u.StudyField)
	assert.Empty(t, u.OtherProfession)
}

func TestUpdateProfile_OmittedProfessionClearsDependentFields(t *testing.T) {
	st := &mockStore{}
	st.On("Load", mock.Anything).Return([]domain.User{{
		Email:      "a@b.com",
		Profession: domain.ProfessionStudent,
		StudyField: "mathematics",
	}}, nil)

	var saved []domain.User
	st.On("Save", mock.Anything, mock.AnythingOfType("[]domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.User)
	}).Return(nil)

	svc := NewService(st)
	require.NoError(t, svc.UpdateProfile(context.Background(), domain.UpdateProfileRequest{
		Email:     "a@b.com",
		FirstName: "Ada",
	}))

	u := saved[0]
	// the stored profession survives the merge, but the dependent field
	// follows the submitted (empty) profession
	assert.Equal(t, domain.ProfessionStudent, u.Profession)
	assert.Empty(t, u.StudyField)
	assert.Empty(t, u.JobRole)
	assert.Empty(t, u.OtherProfession)
}
