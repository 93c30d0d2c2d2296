package inmemdb

import (
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/subject"
)

func (db *DB) subjectCodeTaken(gradeID int, code string, excludeID int) bool {
	for _, sub := range db.subjects.rows {
		if sub.GradeID == gradeID && sub.Code == code && sub.ID != excludeID {
			return true
		}
	}
	return false
}

func (db *DB) Subjects(gradeID int) []subject.Subject {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.subjects.sorted(func(sub subject.Subject) bool { return sub.GradeID == gradeID })
}

// ElectiveSubjects returns the active elective subjects of a grade.
func (db *DB) ElectiveSubjects(gradeID int) []grade.ElectiveSubject {
	db.mu.RLock()
	defer db.mu.RUnlock()

	subs := db.subjects.sorted(func(sub subject.Subject) bool {
		return sub.GradeID == gradeID && sub.IsElective && sub.IsActive
	})
	out := make([]grade.ElectiveSubject, 0, len(subs))
	for _, sub := range subs {
		out = append(out, grade.ElectiveSubject{ID: sub.ID, Code: sub.Code, Name: sub.Name})
	}
	return out
}

func (db *DB) SubjectByID(id int) (subject.Subject, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if sub, ok := db.subjects.rows[id]; ok {
		return sub, nil
	}
	return subject.Subject{}, ErrNotFound
}

func (db *DB) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.subjectCodeTaken(sub.GradeID, sub.Code, 0) {
		return subject.Subject{}, ErrSubjectExists
	}
	sub.ID = db.subjects.nextID()
	db.subjects.rows[sub.ID] = sub
	return sub, nil
}

func (db *DB) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.subjects.rows[sub.ID]; !ok {
		return subject.Subject{}, ErrNotFound
	}
	if db.subjectCodeTaken(sub.GradeID, sub.Code, sub.ID) {
		return subject.Subject{}, ErrSubjectExists
	}
	db.subjects.rows[sub.ID] = sub
	return sub, nil
}
