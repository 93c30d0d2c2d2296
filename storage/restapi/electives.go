package restapi

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/elective"
)

type ElectiveRepository struct {
	c *Client
}

var _ elective.Repository = (*ElectiveRepository)(nil)

func NewElectiveRepository(c *Client) *ElectiveRepository {
	return &ElectiveRepository{c: c}
}

func (repo *ElectiveRepository) QueryStudents(ctx context.Context) ([]elective.Student, error) {
	var students []elective.Student
	err := repo.c.get(ctx, "/electives/", &students)
	return students, errors.Wrap(err, "fetching students with electives")
}

func (repo *ElectiveRepository) QueryByStudent(ctx context.Context, studentID int) ([]elective.Assignment, error) {
	var assignments []elective.Assignment
	err := repo.c.get(ctx, "/electives/student/"+strconv.Itoa(studentID), &assignments)
	return assignments, errors.Wrap(err, "fetching student electives")
}

func (repo *ElectiveRepository) Create(ctx context.Context, studentID int, na elective.NewAssignment) (elective.Assignment, error) {
	var a elective.Assignment
	err := repo.c.post(ctx, "/electives/"+strconv.Itoa(studentID), na, &a)
	return a, errors.Wrap(err, "creating elective")
}

func (repo *ElectiveRepository) Update(ctx context.Context, id int, ua elective.UpdateAssignment) (elective.Assignment, error) {
	var a elective.Assignment
	err := repo.c.put(ctx, "/electives/"+strconv.Itoa(id), ua, &a)
	return a, errors.Wrap(err, "updating elective")
}

func (repo *ElectiveRepository) Delete(ctx context.Context, id int) error {
	return errors.Wrap(repo.c.delete(ctx, "/electives/"+strconv.Itoa(id), nil), "deleting elective")
}
