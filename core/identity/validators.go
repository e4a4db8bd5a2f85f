package identity

import (
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/darasa/console/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = "password cannot be entirely numeric"
)

func init() {
	// register validators
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, roleTag, roleText)

	core.Validate.RegisterStructValidation(registrationStructValidation, Registration{})
	core.RegisterCustomTranslation(core.Validate, core.Translator, pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterCustomTranslation(core.Validate, core.Translator, pwdNotAllNumTag, pwdNotAllNumText)
}

// Custom Validators

// roleValidation checks that the provided role is in the closed role set.
func roleValidation(fl validator.FieldLevel) bool {
	if role, ok := fl.Field().Interface().(Role); ok {
		return role.Known()
	}
	return Role(fl.Field().String()).Known()
}

// registrationStructValidation applies the password policy to Registration:
// - no whitespace
// - not entirely numeric
// (length is covered by the `min=8` field tag)
func registrationStructValidation(sl validator.StructLevel) {
	reg, ok := sl.Current().Interface().(Registration)
	if !ok {
		return
	}
	reportErr := func(tag string) {
		sl.ReportError(reg.Password, "password", "Password", tag, "")
	}

	var digitCount int
	for _, char := range reg.Password {
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if len(reg.Password) > 0 && digitCount == len(reg.Password) {
		reportErr(pwdNotAllNumTag)
	}
}
