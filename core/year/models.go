package year

import "github.com/trezcool/schooladmin/core"

// Year is an academic year. Exactly one year is current at any time.
type Year struct {
	ID        int    `json:"id"`
	Label     string `json:"year"`
	IsCurrent bool   `json:"is_current"`
}

// NewYear contains information needed to create a new Year.
type NewYear struct {
	Label string `json:"year" validate:"required,notblank"`
}

func (ny *NewYear) Validate(v *core.Validator) error {
	ny.Label = core.CleanString(ny.Label)
	return v.Struct(ny)
}

// Default returns the current year, or the first one when none is marked current.
func Default(years []Year) (Year, bool) {
	for _, y := range years {
		if y.IsCurrent {
			return y, true
		}
	}
	if len(years) > 0 {
		return years[0], true
	}
	return Year{}, false
}
