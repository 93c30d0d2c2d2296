package restapi

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/student"
)

type StudentRepository struct {
	c *Client
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(c *Client) *StudentRepository {
	return &StudentRepository{c: c}
}

func (repo *StudentRepository) QueryAll(ctx context.Context) ([]student.Student, error) {
	var students []student.Student
	err := repo.c.get(ctx, "/students", &students)
	return students, errors.Wrap(err, "fetching students")
}

func (repo *StudentRepository) Create(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	var st student.Student
	err := repo.c.post(ctx, "/students", ns, &st)
	return st, errors.Wrap(err, "creating student")
}

func (repo *StudentRepository) Update(ctx context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	var st student.Student
	err := repo.c.put(ctx, "/students/"+strconv.Itoa(id), us, &st)
	return st, errors.Wrap(err, "updating student")
}

func (repo *StudentRepository) ToggleActive(ctx context.Context, id int) (student.Student, error) {
	var st student.Student
	err := repo.c.patch(ctx, "/students/"+strconv.Itoa(id)+"/toggle-active", nil, &st)
	return st, errors.Wrap(err, "toggling student")
}
