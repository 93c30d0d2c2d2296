package inmemdb

import (
	"sort"

	"github.com/trezcool/schooladmin/core/student"
)

func (db *DB) rollTaken(gradeID int, roll string, excludeID int) bool {
	for _, st := range db.students.rows {
		if st.GradeID == gradeID && st.Roll == roll && st.ID != excludeID {
			return true
		}
	}
	return false
}

// Students returns the students of a grade, active ones first, then by roll.
func (db *DB) Students(gradeID int) []student.Student {
	db.mu.RLock()
	defer db.mu.RUnlock()

	students := db.students.sorted(func(st student.Student) bool { return st.GradeID == gradeID })
	sort.SliceStable(students, func(i, j int) bool {
		if students[i].IsActive != students[j].IsActive {
			return students[i].IsActive
		}
		return students[i].Roll < students[j].Roll
	})
	return students
}

func (db *DB) StudentByID(id int) (student.Student, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if st, ok := db.students.rows[id]; ok {
		return st, nil
	}
	return student.Student{}, ErrNotFound
}

func (db *DB) CreateStudent(st student.Student) (student.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.rollTaken(st.GradeID, st.Roll, 0) {
		return student.Student{}, ErrRollExists
	}
	st.ID = db.students.nextID()
	db.students.rows[st.ID] = st
	return st, nil
}

func (db *DB) UpdateStudent(st student.Student) (student.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.students.rows[st.ID]; !ok {
		return student.Student{}, ErrNotFound
	}
	if db.rollTaken(st.GradeID, st.Roll, st.ID) {
		return student.Student{}, ErrRollExists
	}
	db.students.rows[st.ID] = st
	return st, nil
}
