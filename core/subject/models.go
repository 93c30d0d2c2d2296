package subject

import "github.com/trezcool/schooladmin/core"

type Subject struct {
	ID             int    `json:"id"`
	Code           string `json:"sub_code"`
	Name           string `json:"sub_name"`
	TheoryHours    int    `json:"Th_ch"`
	PracticalHours int    `json:"Pr_ch"`
	IsElective     bool   `json:"is_elective"`
	IsActive       bool   `json:"is_active"`
	GradeID        int    `json:"grade_id"`
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Code           string `json:"sub_code" validate:"required,notblank"`
	Name           string `json:"sub_name" validate:"required,notblank"`
	TheoryHours    int    `json:"Th_ch" validate:"gte=0"`
	PracticalHours int    `json:"Pr_ch" validate:"gte=0"`
	IsElective     bool   `json:"is_elective"`
	GradeID        int    `json:"grade_id,omitempty"`
}

func (ns *NewSubject) Validate(v *core.Validator) error {
	ns.Code = core.CleanString(ns.Code)
	ns.Name = core.CleanString(ns.Name)
	return v.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
type UpdateSubject struct {
	Code           string `json:"sub_code" validate:"required,notblank"`
	Name           string `json:"sub_name" validate:"required,notblank"`
	TheoryHours    int    `json:"Th_ch" validate:"gte=0"`
	PracticalHours int    `json:"Pr_ch" validate:"gte=0"`
	IsElective     bool   `json:"is_elective"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

func (us *UpdateSubject) Validate(v *core.Validator) error {
	us.Code = core.CleanString(us.Code)
	us.Name = core.CleanString(us.Name)
	return v.Struct(us)
}
