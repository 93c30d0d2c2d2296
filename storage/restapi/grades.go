package restapi

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/grade"
)

type GradeRepository struct {
	c *Client
}

var _ grade.Repository = (*GradeRepository)(nil)

func NewGradeRepository(c *Client) *GradeRepository {
	return &GradeRepository{c: c}
}

func (repo *GradeRepository) QueryAll(ctx context.Context) ([]grade.Grade, error) {
	var grades []grade.Grade
	err := repo.c.get(ctx, "/grades", &grades)
	return grades, errors.Wrap(err, "fetching grades")
}

func (repo *GradeRepository) AvailableTeachers(ctx context.Context) ([]grade.Teacher, error) {
	var teachers []grade.Teacher
	err := repo.c.get(ctx, "/grades/available-grade-teachers", &teachers)
	return teachers, errors.Wrap(err, "fetching available grade teachers")
}

func (repo *GradeRepository) Mine(ctx context.Context) (grade.WithElectiveSubjects, error) {
	var g grade.WithElectiveSubjects
	err := repo.c.get(ctx, "/grades/grade-by-user", &g)
	return g, errors.Wrap(err, "fetching grade by user")
}

func (repo *GradeRepository) Create(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	var g grade.Grade
	err := repo.c.post(ctx, "/grades", ng, &g)
	return g, errors.Wrap(err, "creating grade")
}

func (repo *GradeRepository) Update(ctx context.Context, id int, ug grade.UpdateGrade) (grade.Grade, error) {
	var g grade.Grade
	err := repo.c.put(ctx, "/grades/"+strconv.Itoa(id), ug, &g)
	return g, errors.Wrap(err, "updating grade")
}

func (repo *GradeRepository) SetActive(ctx context.Context, id int, isActive bool) (grade.Grade, error) {
	var g grade.Grade
	err := repo.c.patch(ctx, "/grades/"+strconv.Itoa(id)+"/toggle-active", activeBody{IsActive: isActive}, &g)
	return g, errors.Wrap(err, "toggling grade")
}

type activeBody struct {
	IsActive bool `json:"is_active"`
}
