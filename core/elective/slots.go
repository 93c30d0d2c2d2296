package elective

import (
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
)

// Slot is one of the K positions a student fills with an elective subject.
// SubjectID 0 marks an empty slot; AssignmentID > 0 marks a slot backed by a persisted assignment.
// Clearing a slot keeps its AssignmentID so the next subject put there updates the same record.
type Slot struct {
	AssignmentID int
	SubjectID    int
}

func (s Slot) Empty() bool { return s.SubjectID == 0 }

func (s Slot) Persisted() bool { return s.AssignmentID > 0 }

// Slots is the ordered, fixed length list of a student's elective slots.
type Slots []Slot

// NewSlots builds k slots from the student's existing assignments for year, in order.
// It returns how many assignments did not fit.
func NewSlots(k int, existing []Assignment, year string) (Slots, int) {
	slots := make(Slots, k)
	var i, dropped int
	for _, a := range existing {
		if a.Year != year {
			continue
		}
		if i >= k {
			dropped++
			continue
		}
		slots[i] = Slot{AssignmentID: a.ID, SubjectID: a.SubjectID}
		i++
	}
	return slots, dropped
}

// Count returns the number of filled slots.
func (ss Slots) Count() int {
	var n int
	for _, s := range ss {
		if !s.Empty() {
			n++
		}
	}
	return n
}

func (ss Slots) Full() bool { return ss.Count() == len(ss) }

// Contains reports whether subID fills one of the slots.
func (ss Slots) Contains(subID int) bool {
	return ss.indexOf(subID) >= 0
}

// Selected returns the subject IDs of the filled slots, in slot order.
func (ss Slots) Selected() []int {
	ids := make([]int, 0, len(ss))
	for _, s := range ss {
		if !s.Empty() {
			ids = append(ids, s.SubjectID)
		}
	}
	return ids
}

func (ss Slots) indexOf(subID int) int {
	if subID == 0 {
		return -1
	}
	for i, s := range ss {
		if s.SubjectID == subID {
			return i
		}
	}
	return -1
}

// Select puts subID in the first empty slot. Selecting a subject twice is a no-op.
// It fails without touching the slots when they are all filled.
func (ss Slots) Select(subID int) error {
	if subID <= 0 {
		return core.NewValidationError(errors.Errorf("invalid subject id %d", subID))
	}
	if ss.Contains(subID) {
		return nil
	}
	for i := range ss {
		if ss[i].Empty() {
			ss[i].SubjectID = subID
			return nil
		}
	}
	return CapacityError(len(ss))
}

// Deselect empties the slot holding subID and reports whether there was one.
func (ss Slots) Deselect(subID int) bool {
	i := ss.indexOf(subID)
	if i < 0 {
		return false
	}
	ss[i].SubjectID = 0
	return true
}

func (ss Slots) clone() Slots {
	out := make(Slots, len(ss))
	copy(out, ss)
	return out
}

// CapacityError is returned when selecting a subject while all k slots are filled.
func CapacityError(k int) error {
	return core.NewValidationError(errors.Errorf("You can only select exactly %d elective subjects", k))
}

// CountError is returned when saving with a number of filled slots other than k.
func CountError(k int) error {
	return core.NewValidationError(errors.Errorf("Please select exactly %d elective subjects", k))
}
