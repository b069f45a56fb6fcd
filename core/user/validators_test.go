package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/shulelabs/shule/core"
)

func newTestValidator() *validator.Validate {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func TestNewUserValidation(t *testing.T) {
	validate := newTestValidator()

	tests := []struct {
		name    string
		nu      NewUser
		wantTag string
	}{
		{
			name: "valid",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe", Email: "jane@test.test",
				Role: "teacher", Password: "Str0ng#Pass!", PasswordConfirm: "Str0ng#Pass!",
			},
		},
		{
			name: "username or email required",
			nu: NewUser{
				Name: "Jane Doe", Role: "teacher",
				Password: "Str0ng#Pass!", PasswordConfirm: "Str0ng#Pass!",
			},
			wantTag: usernameOrEmailTag,
		},
		{
			name: "unknown role",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe", Role: "admin",
				Password: "Str0ng#Pass!", PasswordConfirm: "Str0ng#Pass!",
			},
			wantTag: roleTag,
		},
		{
			name: "short password",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe", Role: "teacher",
				Password: "aB1!", PasswordConfirm: "aB1!",
			},
			wantTag: pwdMinLenTag,
		},
		{
			name: "whitespace in password",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe", Role: "teacher",
				Password: "aB1! aB1!", PasswordConfirm: "aB1! aB1!",
			},
			wantTag: pwdNoSpaceTag,
		},
		{
			name: "all numeric password",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe", Role: "teacher",
				Password: "123456789", PasswordConfirm: "123456789",
			},
			wantTag: pwdNotAllNumTag,
		},
		{
			name: "no complexity",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe", Role: "teacher",
				Password: "abcdefgh", PasswordConfirm: "abcdefgh",
			},
			wantTag: pwdComplexityTag,
		},
		{
			name: "similar to username",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe77", Role: "teacher",
				Password: "Janedoe77!", PasswordConfirm: "Janedoe77!",
			},
			wantTag: pwdAttrSimTag,
		},
		{
			name: "common password",
			nu: NewUser{
				Name: "Jane Doe", Username: "janedoe", Role: "teacher",
				Password: "P@ssw0rd", PasswordConfirm: "P@ssw0rd",
			},
			wantTag: pwdNoCommonTag,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.nu)
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Struct() error = %v, want nil", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Struct() error = %v, want ValidationErrors", err)
			}
			for _, fe := range vErrs {
				if fe.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Struct() errors = %v, want tag %q", vErrs, tt.wantTag)
		})
	}
}

func TestUpdateUserPasswordOptional(t *testing.T) {
	validate := newTestValidator()

	// empty password skips the password policy
	if err := validate.Struct(UpdateUser{Name: "Jane"}); err != nil {
		t.Errorf("Struct() error = %v, want nil", err)
	}

	// provided password goes through the policy
	err := validate.Struct(UpdateUser{Password: "weak", PasswordConfirm: "weak"})
	if err == nil {
		t.Error("Struct() accepted a weak password")
	}
}
