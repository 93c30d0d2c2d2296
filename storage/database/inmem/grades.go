package inmemdb

import "github.com/trezcool/schooladmin/core/grade"

func (db *DB) withTeacher(grd grade.Grade) grade.Grade {
	grd.Teacher = nil
	if grd.GradeTeacherID != nil {
		if row, ok := db.users.rows[*grd.GradeTeacherID]; ok {
			grd.Teacher = &grade.Teacher{ID: row.ID, Username: row.Username}
		}
	}
	return grd
}

func (db *DB) codeTaken(code string, excludeID int) bool {
	for _, grd := range db.grades.rows {
		if grd.Code == code && grd.ID != excludeID {
			return true
		}
	}
	return false
}

func (db *DB) Grades() []grade.Grade {
	db.mu.RLock()
	defer db.mu.RUnlock()

	grades := db.grades.sorted(nil)
	for i := range grades {
		grades[i] = db.withTeacher(grades[i])
	}
	return grades
}

func (db *DB) GradeByID(id int) (grade.Grade, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if grd, ok := db.grades.rows[id]; ok {
		return db.withTeacher(grd), nil
	}
	return grade.Grade{}, ErrNotFound
}

// GradeByTeacher returns the grade userID is the grade teacher of.
func (db *DB) GradeByTeacher(userID int) (grade.Grade, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, grd := range db.grades.sorted(nil) {
		if grd.GradeTeacherID != nil && *grd.GradeTeacherID == userID {
			return db.withTeacher(grd), nil
		}
	}
	return grade.Grade{}, ErrNotFound
}

func (db *DB) CreateGrade(grd grade.Grade) (grade.Grade, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.codeTaken(grd.Code, 0) {
		return grade.Grade{}, ErrGradeExists
	}
	grd.ID = db.grades.nextID()
	grd.Teacher = nil
	db.grades.rows[grd.ID] = grd
	return db.withTeacher(grd), nil
}

func (db *DB) UpdateGrade(grd grade.Grade) (grade.Grade, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.grades.rows[grd.ID]; !ok {
		return grade.Grade{}, ErrNotFound
	}
	if db.codeTaken(grd.Code, grd.ID) {
		return grade.Grade{}, ErrGradeExists
	}
	grd.Teacher = nil
	db.grades.rows[grd.ID] = grd
	return db.withTeacher(grd), nil
}

// IsGradeTeacher reports whether userID teaches any grade.
func (db *DB) IsGradeTeacher(userID int) bool {
	_, err := db.GradeByTeacher(userID)
	return err == nil
}
