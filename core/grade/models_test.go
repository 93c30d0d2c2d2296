package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/schooladmin/core"
)

func TestNewGrade_Validate(t *testing.T) {
	v := core.NewValidator()
	tests := []struct {
		name    string
		input   NewGrade
		wantErr string
	}{
		{name: "valid", input: NewGrade{Code: " G11 ", Name: "Eleven", SubjectCount: 6, HasElective: true, ElectiveCount: 2}},
		{name: "no electives ignores count", input: NewGrade{Code: "G1", Name: "One", SubjectCount: 2, ElectiveCount: 9}},
		{name: "code required", input: NewGrade{Name: "One", SubjectCount: 2}, wantErr: "code: this field is required"},
		{name: "subject count", input: NewGrade{Code: "G1", Name: "One"}, wantErr: "subject_count: subject_count must be greater than 0"},
		{
			name:    "elective count above subject count",
			input:   NewGrade{Code: "G1", Name: "One", SubjectCount: 2, HasElective: true, ElectiveCount: 3},
			wantErr: "Elective count cannot be greater than subject count",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate(v)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, core.IsValidation(err))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestGrade_ElectiveSlots(t *testing.T) {
	assert.Equal(t, 0, Grade{HasElective: false, ElectiveCount: 3}.ElectiveSlots())
	assert.Equal(t, 3, Grade{HasElective: true, ElectiveCount: 3}.ElectiveSlots())

	g := WithElectiveSubjects{ElectiveSubjects: []ElectiveSubject{{ID: 4, Code: "CS", Name: "Computer"}}}
	assert.True(t, g.HasElectiveSubject(4))
	assert.False(t, g.HasElectiveSubject(5))
	sub, ok := g.ElectiveSubject(4)
	assert.True(t, ok)
	assert.Equal(t, "CS", sub.Code)
}
