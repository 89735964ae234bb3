package domain

import "strings"

// Profession values accepted on signup and profile update.
const (
	ProfessionStudent     = "student"
	ProfessionEmployee    = "employee"
	ProfessionOther       = "other"
	ProfessionUnspecified = "unspecified"
)

// User is a stored account record. Email is the unique lookup key and is
// always held in normalized form (lowercased, trimmed). Exactly one of
// StudyField/JobRole/OtherProfession is populated, matching Profession.
// Passcode is non-nil only while a password reset is in progress.
type User struct {
	UserID          string  `json:"user_id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Mobile          string  `json:"mobile"`
	Email           string  `json:"email"`
	DateOfBirth     string  `json:"dateOfBirth"` // expected format: YYYY-MM-DD
	Age             string  `json:"age"`
	Gender          string  `json:"gender"`
	Profession      string  `json:"profession"`
	StudyField      string  `json:"studyField,omitempty"`
	JobRole         string  `json:"jobRole,omitempty"`
	OtherProfession string  `json:"otherProfession,omitempty"`
	PasswordHash    string  `json:"password"`
	Passcode        *string `json:"passcode"`
}

// Profile is the client-facing view of a User with credential fields stripped.
type Profile struct {
	UserID          string `json:"user_id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Mobile          string `json:"mobile"`
	Email           string `json:"email"`
	DateOfBirth     string `json:"dateOfBirth"`
	Age             string `json:"age"`
	Gender          string `json:"gender"`
	Profession      string `json:"profession"`
	StudyField      string `json:"studyField,omitempty"`
	JobRole         string `json:"jobRole,omitempty"`
	OtherProfession string `json:"otherProfession,omitempty"`
}

// Profile returns the user without PasswordHash and Passcode.
func (u *User) Profile() *Profile {
	return &Profile{
		UserID:          u.UserID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Mobile:          u.Mobile,
		Email:           u.Email,
		DateOfBirth:     u.DateOfBirth,
		Age:             u.Age,
		Gender:          u.Gender,
		Profession:      u.Profession,
		StudyField:      u.StudyField,
		JobRole:         u.JobRole,
		OtherProfession: u.OtherProfession,
	}
}

// SetProfessionDetail populates the profession-dependent field matching the
// submitted profession and clears the other two. An unrecognized or empty
// profession clears all three.
func (u *User) SetProfessionDetail(profession, studyField, jobRole, otherProfession string) {
	u.StudyField, u.JobRole, u.OtherProfession = "", "", ""
	switch profession {
	case ProfessionStudent:
		u.StudyField = studyField
	case ProfessionEmployee:
		u.JobRole = jobRole
	case ProfessionOther:
		u.OtherProfession = otherProfession
	}
}

// NormalizeEmail lowercases and trims an email for use as the record key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Mobile          string `json:"mobile"`
	Email           string `json:"email" validate:"required,email"`
	DateOfBirth     string `json:"dateOfBirth"`
	Age             string `json:"age"`
	Gender          string `json:"gender"`
	Profession      string `json:"profession"`
	StudyField      string `json:"studyField"`
	JobRole         string `json:"jobRole"`
	OtherProfession string `json:"otherProfession"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdateProfileRequest carries a partial profile. An empty field keeps the
// stored value; clients cannot clear a field back to empty.
type UpdateProfileRequest struct {
	Email           string `json:"email" validate:"required"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Mobile          string `json:"mobile"`
	DateOfBirth     string `json:"dateOfBirth"`
	Age             string `json:"age"`
	Gender          string `json:"gender"`
	Profession      string `json:"profession"`
	StudyField      string `json:"studyField"`
	JobRole         string `json:"jobRole"`
	OtherProfession string `json:"otherProfession"`
}
