package validator

import (
	"github.com/go-playground/validator/v10"
)

var stateActions = map[string]bool{
	"PUBLISH_EVENT":  true,
	"REJECT_EVENT":   true,
	"SEND_TO_REVIEW": true,
	"CANCEL_REVIEW":  true,
}

var decisionStatuses = map[string]bool{
	"CONFIRMED": true,
	"REJECTED":  true,
}

func registerRules(v *validator.Validate) {
	v.RegisterValidation("is-state-action", func(fl validator.FieldLevel) bool {
		return stateActions[fl.Field().String()]
	})
	v.RegisterValidation("is-decision-status", func(fl validator.FieldLevel) bool {
		return decisionStatuses[fl.Field().String()]
	})
}
