package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validatedInput struct {
	Name  string  `json:"name" validate:"required,notblank"`
	Code  *string `json:"code" validate:"omitempty,notblank"`
	Count int     `json:"subject_count" validate:"gt=0"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()
	blank := "  "

	tests := []struct {
		name       string
		input      validatedInput
		wantFields []FieldError
	}{
		{name: "valid", input: validatedInput{Name: "Grade 11", Count: 6}},
		{
			name:       "required",
			input:      validatedInput{Count: 1},
			wantFields: []FieldError{{Field: "name", Error: "this field is required"}},
		},
		{
			name:       "blank",
			input:      validatedInput{Name: " ", Code: &blank, Count: 1},
			wantFields: []FieldError{{Field: "name", Error: "this field cannot be blank"}, {Field: "code", Error: "this field cannot be blank"}},
		},
		{
			name:       "gt",
			input:      validatedInput{Name: "x"},
			wantFields: []FieldError{{Field: "subject_count", Error: "subject_count must be greater than 0"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsValidation(err))
			vErr, ok := err.(*ValidationError)
			if assert.True(t, ok) {
				assert.Equal(t, tt.wantFields, vErr.Fields)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "fallback"))
	assert.Equal(t, "Year not found", Message(&APIError{Status: 404, Detail: "Year not found"}, "fallback"))
	assert.Equal(t, "fallback", Message(&APIError{Status: 500}, "fallback"))
	assert.Equal(t, "name: this field is required",
		Message(NewValidationError(nil, FieldError{Field: "name", Error: "this field is required"}), "fallback"))
	assert.Equal(t, "fallback", Message(assert.AnError, "fallback"))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Grade", CleanString("  Grade \n"))
	assert.Equal(t, "grade", CleanString("  Grade ", true))
	assert.Nil(t, StringPtr("   "))
	assert.Equal(t, "G11", *StringPtr(" G11 "))
}
