package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Email  string  `json:"email" validate:"required,email"`
	Name   string  `json:"name" validate:"required,min=2"`
	Action *string `json:"stateAction" validate:"omitempty,is-state-action"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := Validate(payload{Email: "not-an-email", Name: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "name")
	assert.NotContains(t, err.Error(), "Email", "messages must use json names")
}

func TestValidate_StateActionRule(t *testing.T) {
	good := "PUBLISH_EVENT"
	bad := "EXPLODE_EVENT"

	assert.NoError(t, Validate(payload{Email: "a@b.com", Name: "ok", Action: &good}))
	assert.Error(t, Validate(payload{Email: "a@b.com", Name: "ok", Action: &bad}))
}

func TestValidate_Passes(t *testing.T) {
	assert.NoError(t, Validate(payload{Email: "a@b.com", Name: "ok"}))
}
