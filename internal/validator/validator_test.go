package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email      string `json:"email" validate:"required,email"`
	BloodGroup string `json:"blood_group" validate:"required,is-blood-group"`
	Urgency    string `json:"urgency" validate:"omitempty,is-urgency"`
}

func TestValidateCustomRules(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:      "donor@example.com",
		BloodGroup: "O_NEGATIVE",
		Urgency:    "CRITICAL",
	})
	assert.NoError(t, err)

	err = v.Validate(&sampleRequest{
		Email:      "donor@example.com",
		BloodGroup: "O-", // метка вместо значения
		Urgency:    "WHENEVER",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Имена полей берутся из json-тегов
	assert.Contains(t, vErr.Errors, "blood_group")
	assert.Contains(t, vErr.Errors, "urgency")
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{BloodGroup: "A_POSITIVE"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.NotContains(t, vErr.Errors, "Email")
}
