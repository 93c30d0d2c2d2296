package student

import (
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
)

type Student struct {
	ID       int    `json:"id"`
	Roll     string `json:"roll"`
	Name     string `json:"name"`
	Year     string `json:"year"`
	GradeID  int    `json:"grade_id"`
	IsActive bool   `json:"is_active"`
}

// ElectivePick is an elective subject chosen while creating a student.
type ElectivePick struct {
	SubjectID int    `json:"sub_id"`
	Year      string `json:"year"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Roll             string         `json:"roll" validate:"required,notblank"`
	Name             string         `json:"name" validate:"required,notblank"`
	Year             string         `json:"year" validate:"required,notblank"`
	GradeID          int            `json:"grade_id"`
	IsActive         *bool          `json:"is_active,omitempty"`
	ElectiveSubjects []ElectivePick `json:"elective_subjects,omitempty"`
}

// Validate checks the required fields and, when the grade has electives (k > 0), that exactly k
// distinct elective subjects were picked.
func (ns *NewStudent) Validate(v *core.Validator, k int) error {
	ns.Roll = core.CleanString(ns.Roll)
	ns.Name = core.CleanString(ns.Name)
	ns.Year = core.CleanString(ns.Year)
	if err := v.Struct(ns); err != nil {
		return err
	}
	if k <= 0 {
		ns.ElectiveSubjects = nil
		return nil
	}

	seen := make(map[int]bool, len(ns.ElectiveSubjects))
	for i, pick := range ns.ElectiveSubjects {
		if pick.SubjectID == 0 || seen[pick.SubjectID] {
			return exactlyKError(k)
		}
		seen[pick.SubjectID] = true
		if pick.Year == "" {
			ns.ElectiveSubjects[i].Year = ns.Year
		}
	}
	if len(seen) != k {
		return exactlyKError(k)
	}
	return nil
}

func exactlyKError(k int) error {
	err := errors.Errorf("Please select exactly %d elective subject(s)", k)
	return core.NewValidationError(err, core.FieldError{Field: "elective_subjects", Error: err.Error()})
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Roll     string `json:"roll,omitempty"`
	Name     string `json:"name,omitempty"`
	Year     string `json:"year,omitempty"`
	GradeID  int    `json:"grade_id,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (us *UpdateStudent) Validate(v *core.Validator, orig Student) error {
	if roll := core.CleanString(us.Roll); roll != "" {
		us.Roll = roll
	} else {
		us.Roll = orig.Roll
	}
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if year := core.CleanString(us.Year); year != "" {
		us.Year = year
	} else {
		us.Year = orig.Year
	}
	if us.GradeID == 0 {
		us.GradeID = orig.GradeID
	}
	return v.Struct(us)
}
