package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type signup struct {
	Name            string `json:"name" validate:"required,notblank,min=2"`
	Email           string `json:"email" validate:"required,email,urmail"`
	Role            string `json:"role" validate:"required,oneof=student staff"`
	Department      string `json:"department" validate:"required_if=Role staff"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type feedbackDraft struct {
	Description string `json:"description" validate:"detailed"`
}

func validSignup() signup {
	return signup{Name: "Alice", Email: "alice@ur.ac.rw", Role: "student", Password: "password1", ConfirmPassword: "password1"}
}

func TestCampusEmailRule(t *testing.T) {
	v := New()
	req := validSignup()
	require.NoError(t, v.Struct(req))

	req.Email = "alice@gmail.com"
	msgs := Messages(v.Struct(req))
	assert.Equal(t, "Please use your University of Rwanda email (@ur.ac.rw)", msgs["email"])
}

func TestStaffRequiresDepartment(t *testing.T) {
	v := New()
	req := validSignup()
	req.Role = "staff"
	msgs := Messages(v.Struct(req))
	assert.Equal(t, "department is required", msgs["department"])

	req.Department = "Computer Science"
	assert.NoError(t, v.Struct(req))
}

func TestConfirmPasswordMustMatch(t *testing.T) {
	v := New()
	req := validSignup()
	req.ConfirmPassword = "different1"
	msgs := Messages(v.Struct(req))
	assert.Contains(t, msgs["confirmPassword"], "must match")
}

func TestDetailedDescription(t *testing.T) {
	v := New()
	err := Error(v.Struct(feedbackDraft{Description: "too short"}))
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Please provide a detailed description (at least 10 characters)", appErr.Message)
	assert.Contains(t, appErr.Details, "description")

	assert.NoError(t, v.Struct(feedbackDraft{Description: "The projector keeps flickering"}))
	assert.NoError(t, v.Struct(feedbackDraft{Description: "too short "}), "length counts the raw text")
}

func TestMessagesIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Messages(errors.New("boom")))
	assert.Nil(t, Error(nil))
}
