// Package inmemdb is the in-memory store behind the development backend.
package inmemdb

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/student"
	"github.com/trezcool/schooladmin/core/subject"
	"github.com/trezcool/schooladmin/core/user"
	"github.com/trezcool/schooladmin/core/year"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUsernameExists = errors.New("Username already exists")
	ErrYearExists     = errors.New("Year already exists")
	ErrGradeExists    = errors.New("Grade code already exists")
	ErrSubjectExists  = errors.New("Subject code already exists in this grade")
	ErrRollExists     = errors.New("Roll already exists in this grade")
)

// table keeps rows by primary key. Callers hold the DB lock.
type table[T any] struct {
	pk   int
	rows map[int]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T)}
}

func (t *table[T]) nextID() int {
	t.pk++
	return t.pk
}

// sorted returns the rows ordered by primary key, optionally filtered.
func (t *table[T]) sorted(keep func(T) bool) []T {
	ids := make([]int, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

type userRow struct {
	user.User
	SelectedGradeID int
}

type electiveRow struct {
	ID        int
	StudentID int
	SubjectID int
	Year      string
}

type DB struct {
	mu        sync.RWMutex
	users     *table[userRow]
	years     *table[year.Year]
	grades    *table[grade.Grade]
	subjects  *table[subject.Subject]
	students  *table[student.Student]
	electives *table[electiveRow]
}

func New() *DB {
	db := new(DB)
	db.init()
	return db
}

// Reset empties every table and restarts the primary keys.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.init()
}

func (db *DB) init() {
	db.users = newTable[userRow]()
	db.years = newTable[year.Year]()
	db.grades = newTable[grade.Grade]()
	db.subjects = newTable[subject.Subject]()
	db.students = newTable[student.Student]()
	db.electives = newTable[electiveRow]()
}
