package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Text       string `json:"text" validate:"required"`
	MaxResults int    `json:"maxResults" validate:"omitempty,gte=1,lte=50"`
}

func TestValidateStruct(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateStruct(sample{Text: "helo"}))
	assert.NoError(t, v.ValidateStruct(sample{Text: "helo", MaxResults: 50}))

	err := v.ValidateStruct(sample{})
	if assert.Error(t, err) {
		assert.Equal(t, "text is required", err.Error())
	}

	err = v.ValidateStruct(sample{MaxResults: 99})
	if assert.Error(t, err) {
		assert.Equal(t, "text is required; maxResults failed on lte=50", err.Error())
	}
}
