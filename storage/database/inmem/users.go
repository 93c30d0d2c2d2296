package inmemdb

import (
	"sort"

	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/user"
)

func (db *DB) usernameTaken(username string, excludeID int) bool {
	for _, row := range db.users.rows {
		if row.Username == username && row.ID != excludeID {
			return true
		}
	}
	return false
}

func (db *DB) CreateUser(usr user.User) (user.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.usernameTaken(usr.Username, 0) {
		return user.User{}, ErrUsernameExists
	}
	usr.ID = db.users.nextID()
	db.users.rows[usr.ID] = userRow{User: usr}
	return usr, nil
}

func (db *DB) UserByID(id int) (user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if row, ok := db.users.rows[id]; ok {
		return row.User, nil
	}
	return user.User{}, ErrNotFound
}

func (db *DB) UserByUsername(username string) (user.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, row := range db.users.rows {
		if row.Username == username {
			return row.User, nil
		}
	}
	return user.User{}, ErrNotFound
}

// Users returns the admins first, then everyone by username.
func (db *DB) Users() []user.User {
	db.mu.RLock()
	defer db.mu.RUnlock()

	users := make([]user.User, 0, len(db.users.rows))
	for _, row := range db.users.sorted(nil) {
		users = append(users, row.User)
	}
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].IsAdmin != users[j].IsAdmin {
			return users[i].IsAdmin
		}
		return users[i].Username < users[j].Username
	})
	return users
}

// UpdateUser saves usr; a nil PasswordHash keeps the current password.
func (db *DB) UpdateUser(usr user.User) (user.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.users.rows[usr.ID]
	if !ok {
		return user.User{}, ErrNotFound
	}
	if db.usernameTaken(usr.Username, usr.ID) {
		return user.User{}, ErrUsernameExists
	}
	if usr.PasswordHash == nil {
		usr.PasswordHash = row.PasswordHash
	}
	row.User = usr
	db.users.rows[usr.ID] = row
	return usr, nil
}

func (db *DB) DeleteUser(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users.rows[id]; !ok {
		return ErrNotFound
	}
	delete(db.users.rows, id)
	return nil
}

// AvailableTeachers returns the non-admin users not yet teaching a grade, by username.
func (db *DB) AvailableTeachers() []grade.Teacher {
	db.mu.RLock()
	defer db.mu.RUnlock()

	busy := make(map[int]bool)
	for _, grd := range db.grades.rows {
		if grd.GradeTeacherID != nil {
			busy[*grd.GradeTeacherID] = true
		}
	}
	var teachers []grade.Teacher
	for _, row := range db.users.rows {
		if !row.IsAdmin && !busy[row.ID] {
			teachers = append(teachers, grade.Teacher{ID: row.ID, Username: row.Username})
		}
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].Username < teachers[j].Username })
	return teachers
}

// SelectGrade records the grade an admin administers.
func (db *DB) SelectGrade(userID, gradeID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.users.rows[userID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := db.grades.rows[gradeID]; !ok {
		return ErrNotFound
	}
	row.SelectedGradeID = gradeID
	db.users.rows[userID] = row
	return nil
}

func (db *DB) SelectedGrade(userID int) (grade.Grade, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.users.rows[userID]
	if !ok {
		return grade.Grade{}, ErrNotFound
	}
	grd, ok := db.grades.rows[row.SelectedGradeID]
	if !ok {
		return grade.Grade{}, ErrNotFound
	}
	return db.withTeacher(grd), nil
}
