package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (signupForm) ValidationMessages() map[string]string {
	return map[string]string{"confirm_password.eqfield": "Passwords do not match."}
}

func TestMobileTag(t *testing.T) {
	cases := map[string]bool{
		"1234567890":   true,
		"123456789":    false,
		"12345678901":  false,
		"12345a7890":   false,
		"":             false,
		"١٢٣٤٥٦٧٨٩٠":   false,
		"1234567890\n": false,
	}
	for in, want := range cases {
		err := Var(in, "mobile")
		assert.Equal(t, want, err == nil, "mobile %q", in)
	}
}

func TestLooseEmailTag(t *testing.T) {
	assert.NoError(t, Var("a@b.co", "loose_email"))
	assert.Error(t, Var("a@b", "loose_email"))
	assert.Error(t, Var("ab.co", "loose_email"))
	assert.Error(t, Var("", "loose_email"))
}

func TestValidateStructUsesJSONNamesAndOverrides(t *testing.T) {
	errs := ValidateStruct(&signupForm{
		Name:     "  ",
		Email:    "x@y.z",
		Password: "abcdef",
		Confirm:  "abcdeg",
	})

	assert.Len(t, errs, 2)
	assert.Equal(t, "The field 'name' is required.", errs["name"])
	assert.Equal(t, "Passwords do not match.", errs["confirm_password"])
}

func TestValidateStructMinLength(t *testing.T) {
	errs := ValidateStruct(&signupForm{Name: "n", Email: "x@y.z", Password: "abcde", Confirm: "abcde"})
	assert.Equal(t, "The field 'password' must be at least 6 characters long.", errs["password"])
	assert.NotContains(t, errs, "confirm_password")
}

func TestValidateStructValid(t *testing.T) {
	assert.Empty(t, ValidateStruct(&signupForm{Name: "n", Email: "x@y.z", Password: "abcdef", Confirm: "abcdef"}))
}

func TestStructReturnsFirstFailure(t *testing.T) {
	type user struct {
		ID string `json:"_id" validate:"required"`
	}
	assert.Error(t, Struct(&user{}))
	assert.NoError(t, Struct(&user{ID: "1"}))
}
