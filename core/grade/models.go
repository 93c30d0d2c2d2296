package grade

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
)

var errElectiveCountTooHigh = errors.New("Elective count cannot be greater than subject count")

// Teacher is the user in charge of a grade.
type Teacher struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Grade struct {
	ID             int      `json:"id"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	SubjectCount   int      `json:"subject_count"`
	HasElective    bool     `json:"has_elective"`
	ElectiveCount  int      `json:"elective_count"`
	GradeTeacherID *int     `json:"grade_teacher_id"`
	Teacher        *Teacher `json:"teacher"`
	IsActive       bool     `json:"is_active"`
}

// ElectiveSlots returns the number of elective subjects each student of the grade must hold per year.
func (g Grade) ElectiveSlots() int {
	if !g.HasElective || g.ElectiveCount < 0 {
		return 0
	}
	return g.ElectiveCount
}

func (g Grade) String() string {
	return fmt.Sprintf("%s (%s)", g.Name, g.Code)
}

// ElectiveSubject is an entry of a grade's elective catalog.
type ElectiveSubject struct {
	ID   int    `json:"id"`
	Code string `json:"sub_code"`
	Name string `json:"sub_name"`
}

// WithElectiveSubjects is a Grade along with its elective catalog.
type WithElectiveSubjects struct {
	Grade
	ElectiveSubjects []ElectiveSubject `json:"elective_subjects"`
}

// HasElectiveSubject reports whether subID belongs to the elective catalog.
func (g WithElectiveSubjects) HasElectiveSubject(subID int) bool {
	for _, sub := range g.ElectiveSubjects {
		if sub.ID == subID {
			return true
		}
	}
	return false
}

// ElectiveSubject looks subID up in the elective catalog.
func (g WithElectiveSubjects) ElectiveSubject(subID int) (ElectiveSubject, bool) {
	for _, sub := range g.ElectiveSubjects {
		if sub.ID == subID {
			return sub, true
		}
	}
	return ElectiveSubject{}, false
}

// NewGrade contains information needed to create a new Grade.
type NewGrade struct {
	Code           string `json:"code" validate:"required,notblank"`
	Name           string `json:"name" validate:"required,notblank"`
	SubjectCount   int    `json:"subject_count" validate:"gt=0"`
	HasElective    bool   `json:"has_elective"`
	ElectiveCount  int    `json:"elective_count" validate:"gte=0"`
	GradeTeacherID *int   `json:"grade_teacher_id"`
}

func (ng *NewGrade) Validate(v *core.Validator) error {
	ng.Code = core.CleanString(ng.Code)
	ng.Name = core.CleanString(ng.Name)
	if !ng.HasElective {
		ng.ElectiveCount = 0
	}
	if err := v.Struct(ng); err != nil {
		return err
	}
	return checkElectiveCount(ng.ElectiveCount, ng.SubjectCount)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
type UpdateGrade struct {
	Code           string `json:"code" validate:"required,notblank"`
	Name           string `json:"name" validate:"required,notblank"`
	SubjectCount   int    `json:"subject_count" validate:"gt=0"`
	HasElective    bool   `json:"has_elective"`
	ElectiveCount  int    `json:"elective_count" validate:"gte=0"`
	GradeTeacherID *int   `json:"grade_teacher_id"`
}

func (ug *UpdateGrade) Validate(v *core.Validator) error {
	ug.Code = core.CleanString(ug.Code)
	ug.Name = core.CleanString(ug.Name)
	if !ug.HasElective {
		ug.ElectiveCount = 0
	}
	if err := v.Struct(ug); err != nil {
		return err
	}
	return checkElectiveCount(ug.ElectiveCount, ug.SubjectCount)
}

func checkElectiveCount(electiveCount, subjectCount int) error {
	if electiveCount > subjectCount {
		return core.NewValidationError(
			errElectiveCountTooHigh,
			core.FieldError{Field: "elective_count", Error: errElectiveCountTooHigh.Error()},
		)
	}
	return nil
}
