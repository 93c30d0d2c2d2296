package elective

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/schooladmin/core"
)

func TestNewSlots(t *testing.T) {
	existing := []Assignment{
		{ID: 1, SubjectID: 10, Year: "2080"},
		{ID: 2, SubjectID: 11, Year: "2081"},
		{ID: 3, SubjectID: 12, Year: "2081"},
		{ID: 4, SubjectID: 13, Year: "2081"},
	}
	tests := []struct {
		name        string
		k           int
		year        string
		wantSlots   Slots
		wantDropped int
	}{
		{name: "no assignment for year", k: 2, year: "2082", wantSlots: Slots{{}, {}}},
		{name: "padded", k: 2, year: "2080", wantSlots: Slots{{AssignmentID: 1, SubjectID: 10}, {}}},
		{name: "exact", k: 3, year: "2081", wantSlots: Slots{{2, 11}, {3, 12}, {4, 13}}},
		{name: "truncated", k: 2, year: "2081", wantSlots: Slots{{2, 11}, {3, 12}}, wantDropped: 1},
		{name: "no slot", k: 0, year: "2081", wantSlots: Slots{}, wantDropped: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, dropped := NewSlots(tt.k, existing, tt.year)
			assert.Equal(t, tt.wantSlots, slots)
			assert.Equal(t, tt.wantDropped, dropped)
			assert.Len(t, slots, tt.k)
		})
	}
}

func TestSlots_Select(t *testing.T) {
	tests := []struct {
		name      string
		slots     Slots
		subID     int
		wantSlots Slots
		wantErr   bool
	}{
		{name: "first empty slot", slots: Slots{{}, {}}, subID: 5, wantSlots: Slots{{SubjectID: 5}, {}}},
		{name: "hole is filled first", slots: Slots{{7, 0}, {8, 6}}, subID: 5, wantSlots: Slots{{7, 5}, {8, 6}}},
		{name: "already selected", slots: Slots{{SubjectID: 5}, {}}, subID: 5, wantSlots: Slots{{SubjectID: 5}, {}}},
		{name: "capacity", slots: Slots{{1, 5}, {2, 6}}, subID: 7, wantSlots: Slots{{1, 5}, {2, 6}}, wantErr: true},
		{name: "invalid id", slots: Slots{{}, {}}, subID: 0, wantSlots: Slots{{}, {}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slots.Select(tt.subID)
			if tt.wantErr {
				assert.True(t, core.IsValidation(err), "want validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantSlots, tt.slots)
		})
	}
}

func TestSlots_CapacityMessage(t *testing.T) {
	slots := Slots{{SubjectID: 1}, {SubjectID: 2}}
	err := slots.Select(3)
	assert.EqualError(t, err, "You can only select exactly 2 elective subjects")
}

func TestSlots_DeselectKeepsAssignment(t *testing.T) {
	slots := Slots{{AssignmentID: 4, SubjectID: 10}, {AssignmentID: 5, SubjectID: 11}}

	assert.True(t, slots.Deselect(10))
	assert.Equal(t, Slots{{AssignmentID: 4}, {AssignmentID: 5, SubjectID: 11}}, slots)
	assert.False(t, slots.Deselect(10))
	assert.Equal(t, 1, slots.Count())
	assert.False(t, slots.Full())

	assert.NoError(t, slots.Select(12))
	assert.Equal(t, Slots{{AssignmentID: 4, SubjectID: 12}, {AssignmentID: 5, SubjectID: 11}}, slots)
	assert.Equal(t, []int{12, 11}, slots.Selected())
	assert.True(t, slots.Full())
}
