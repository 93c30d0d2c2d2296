package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/elective"
	"github.com/trezcool/schooladmin/core/student"
)

var ErrElectiveTaken = errors.New("Elective subject already assigned to this student for this year")

func (row electiveRow) assignment() elective.Assignment {
	return elective.Assignment{ID: row.ID, SubjectID: row.SubjectID, Year: row.Year}
}

func (db *DB) electivesOf(studentID int) []elective.Assignment {
	rows := db.electives.sorted(func(row electiveRow) bool { return row.StudentID == studentID })
	out := make([]elective.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.assignment())
	}
	return out
}

func (db *DB) electiveTaken(studentID, subID int, year string) bool {
	for _, row := range db.electives.rows {
		if row.StudentID == studentID && row.SubjectID == subID && row.Year == year {
			return true
		}
	}
	return false
}

// StudentsWithElectives returns the students of a grade by roll, each with all their assignments.
func (db *DB) StudentsWithElectives(gradeID int) []elective.Student {
	students := db.Students(gradeID)

	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]elective.Student, 0, len(students))
	for _, st := range students {
		if !st.IsActive {
			continue
		}
		out = append(out, elective.Student{ID: st.ID, Roll: st.Roll, Name: st.Name, Electives: db.electivesOf(st.ID)})
	}
	return out
}

func (db *DB) ElectivesByStudent(studentID int) []elective.Assignment {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.electivesOf(studentID)
}

// ElectiveByID returns an assignment and the student holding it.
func (db *DB) ElectiveByID(id int) (elective.Assignment, int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.electives.rows[id]
	if !ok {
		return elective.Assignment{}, 0, ErrNotFound
	}
	return row.assignment(), row.StudentID, nil
}

func (db *DB) CreateElective(studentID, subID int, year string) (elective.Assignment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.students.rows[studentID]; !ok {
		return elective.Assignment{}, ErrNotFound
	}
	if db.electiveTaken(studentID, subID, year) {
		return elective.Assignment{}, ErrElectiveTaken
	}
	row := electiveRow{ID: db.electives.nextID(), StudentID: studentID, SubjectID: subID, Year: year}
	db.electives.rows[row.ID] = row
	return row.assignment(), nil
}

// CreateStudentWithElectives creates a student and their elective subjects at once.
func (db *DB) CreateStudentWithElectives(st student.Student, picks []student.ElectivePick) (student.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.rollTaken(st.GradeID, st.Roll, 0) {
		return student.Student{}, ErrRollExists
	}
	st.ID = db.students.nextID()
	db.students.rows[st.ID] = st
	for _, pick := range picks {
		row := electiveRow{ID: db.electives.nextID(), StudentID: st.ID, SubjectID: pick.SubjectID, Year: pick.Year}
		db.electives.rows[row.ID] = row
	}
	return st, nil
}

// UpdateElective moves an assignment to another subject or year. Distinctness is only checked on
// create: swapping two subjects goes through a state where both rows hold the same one.
func (db *DB) UpdateElective(id, subID int, year string) (elective.Assignment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.electives.rows[id]
	if !ok {
		return elective.Assignment{}, ErrNotFound
	}
	row.SubjectID = subID
	row.Year = year
	db.electives.rows[id] = row
	return row.assignment(), nil
}

func (db *DB) DeleteElective(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.electives.rows[id]; !ok {
		return ErrNotFound
	}
	delete(db.electives.rows, id)
	return nil
}
