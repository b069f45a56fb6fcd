package assessment

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/shulelabs/shule/core"
)

var (
	scopeLevelTag  = "scopelevel"
	scopeLevelText = "invalid scope level"

	stageLabelTag  = "stagelabel"
	stageLabelText = "invalid maturity stage"

	statusTag  = "assessmentstatus"
	statusText = "invalid assessment status"
)

// InitValidators registers the assessment domain's custom validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(scopeLevelTag, scopeLevelValidation)
	core.RegisterCustomTranslation(validate, translator, scopeLevelTag, scopeLevelText)

	_ = validate.RegisterValidation(stageLabelTag, stageLabelValidation)
	core.RegisterCustomTranslation(validate, translator, stageLabelTag, stageLabelText)

	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func scopeLevelValidation(fl validator.FieldLevel) bool {
	return ScopeLevel(fl.Field().String()).IsValid()
}

func stageLabelValidation(fl validator.FieldLevel) bool {
	return StageLabel(fl.Field().String()).IsValid()
}

func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).IsValid()
}
