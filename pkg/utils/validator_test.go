package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userForm struct {
	Name     string `form:"name" validate:"required,notblank,max=10"`
	Email    string `form:"email" validate:"required,notblank,max=255,email_shape"`
	Password string `form:"password" validate:"required"`
}

type movieForm struct {
	Summary string `form:"summary" validate:"required,notblank,min=10"`
}

func TestValidateStruct_EmailShape(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"USER@EXAMPLE.COM", true},
		{"first.last+tag@mail-server.example.org", true},
		{"user_1@sub.example.co", true},
		{"user@example", false},
		{"user@@example.com", false},
		{"user example@example.com", false},
		{"@example.com", false},
		{"user@example.c0m", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			errs := ValidateStruct(&userForm{Name: "alice", Email: tt.email, Password: "secret"})
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, "is invalid", errs["email"])
			}
		})
	}
}

func TestValidateStruct_NameLength(t *testing.T) {
	errs := ValidateStruct(&userForm{Name: "abcdefghij", Email: "a@b.co", Password: "x"})
	assert.Empty(t, errs)

	errs = ValidateStruct(&userForm{Name: "abcdefghijk", Email: "a@b.co", Password: "x"})
	assert.Equal(t, "is too long (maximum is 10 characters)", errs["name"])
}

func TestValidateStruct_EmailLength(t *testing.T) {
	local := strings.Repeat("a", 255-len("@example.com"))
	errs := ValidateStruct(&userForm{Name: "a", Email: local + "@example.com", Password: "x"})
	assert.Empty(t, errs)

	errs = ValidateStruct(&userForm{Name: "a", Email: local + "a@example.com", Password: "x"})
	assert.Equal(t, "is too long (maximum is 255 characters)", errs["email"])
}

func TestValidateStruct_BlankFields(t *testing.T) {
	errs := ValidateStruct(&userForm{Name: "   ", Email: "", Password: ""})
	require.Len(t, errs, 3)
	assert.Equal(t, "can't be blank", errs["name"])
	assert.Equal(t, "can't be blank", errs["email"])
	assert.Equal(t, "can't be blank", errs["password"])
}

func TestValidateStruct_SummaryBoundary(t *testing.T) {
	errs := ValidateStruct(&movieForm{Summary: "123456789"})
	assert.Equal(t, "is too short (minimum is 10 characters)", errs["summary"])

	assert.Nil(t, ValidateStruct(&movieForm{Summary: "1234567890"}))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{}
	errs.Add("name", "can't be blank")
	errs.Add("name", "is too long")
	errs.Add("email", "is invalid")

	assert.Equal(t, "can't be blank", errs["name"])
	assert.Equal(t, "validation failed: email is invalid; name can't be blank", errs.Error())

	got, ok := AsValidationErrors(errs)
	require.True(t, ok)
	assert.Equal(t, errs, got)

	_, ok = AsValidationErrors(ErrMissingSessionSecret)
	assert.False(t, ok)
}
