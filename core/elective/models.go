package elective

// Assignment is an elective subject held by a student for an academic year.
// An ID of 0 means the assignment was never persisted.
type Assignment struct {
	ID        int    `json:"id"`
	SubjectID int    `json:"sub_id"`
	Year      string `json:"year"`
}

// Student is a student along with all of their elective assignments, all years included.
type Student struct {
	ID        int          `json:"id"`
	Roll      string       `json:"roll"`
	Name      string       `json:"name"`
	Electives []Assignment `json:"elective_subjects"`
}

// ForYear returns the student's assignments for year, in backend order.
func (s Student) ForYear(year string) []Assignment {
	var out []Assignment
	for _, a := range s.Electives {
		if a.Year == year {
			out = append(out, a)
		}
	}
	return out
}

// CountForYear returns how many elective subjects the student holds for year.
func (s Student) CountForYear(year string) int {
	var n int
	for _, a := range s.Electives {
		if a.Year == year {
			n++
		}
	}
	return n
}

// NewAssignment is the payload creating an assignment.
type NewAssignment struct {
	StudentID int    `json:"student_id"`
	SubjectID int    `json:"sub_id"`
	Year      string `json:"year"`
}

// UpdateAssignment is the payload moving an existing assignment to another subject.
type UpdateAssignment struct {
	ID        int    `json:"id"`
	SubjectID int    `json:"sub_id"`
	Year      string `json:"year"`
	StudentID int    `json:"student_id"`
}
