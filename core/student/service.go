package student

import (
	"context"

	"github.com/trezcool/schooladmin/core"
)

type (
	// Repository serves the students of the grade the authenticated user administers.
	Repository interface {
		QueryAll(ctx context.Context) ([]Student, error)
		Create(ctx context.Context, ns NewStudent) (Student, error)
		Update(ctx context.Context, id int, us UpdateStudent) (Student, error)
		ToggleActive(ctx context.Context, id int) (Student, error)
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAll(ctx)
}

// Create adds a student to a grade whose students hold k elective subjects per year.
func (svc *Service) Create(ctx context.Context, ns NewStudent, k int) (Student, error) {
	if err := ns.Validate(svc.validate, k); err != nil {
		return Student{}, err
	}
	return svc.repo.Create(ctx, ns)
}

func (svc *Service) Update(ctx context.Context, orig Student, us UpdateStudent) (Student, error) {
	if err := us.Validate(svc.validate, orig); err != nil {
		return Student{}, err
	}
	return svc.repo.Update(ctx, orig.ID, us)
}

func (svc *Service) ToggleActive(ctx context.Context, id int) (Student, error) {
	return svc.repo.ToggleActive(ctx, id)
}
