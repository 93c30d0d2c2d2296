package restapi

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/subject"
)

type SubjectRepository struct {
	c *Client
}

var _ subject.Repository = (*SubjectRepository)(nil)

func NewSubjectRepository(c *Client) *SubjectRepository {
	return &SubjectRepository{c: c}
}

func (repo *SubjectRepository) QueryAll(ctx context.Context) ([]subject.Subject, error) {
	var subjects []subject.Subject
	err := repo.c.get(ctx, "/subjects", &subjects)
	return subjects, errors.Wrap(err, "fetching subjects")
}

func (repo *SubjectRepository) QueryElectives(ctx context.Context) ([]subject.Subject, error) {
	var subjects []subject.Subject
	err := repo.c.get(ctx, "/subjects/electives", &subjects)
	return subjects, errors.Wrap(err, "fetching elective subjects")
}

func (repo *SubjectRepository) Create(ctx context.Context, ns subject.NewSubject) (subject.Subject, error) {
	var sub subject.Subject
	err := repo.c.post(ctx, "/subjects", ns, &sub)
	return sub, errors.Wrap(err, "creating subject")
}

func (repo *SubjectRepository) Update(ctx context.Context, id int, us subject.UpdateSubject) (subject.Subject, error) {
	var sub subject.Subject
	err := repo.c.put(ctx, "/subjects/"+strconv.Itoa(id), us, &sub)
	return sub, errors.Wrap(err, "updating subject")
}

func (repo *SubjectRepository) SetActive(ctx context.Context, id int, isActive bool) (subject.Subject, error) {
	var sub subject.Subject
	err := repo.c.patch(ctx, "/subjects/"+strconv.Itoa(id)+"/toggle-active", activeBody{IsActive: isActive}, &sub)
	return sub, errors.Wrap(err, "toggling subject")
}
