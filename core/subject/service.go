package subject

import (
	"context"

	"github.com/trezcool/schooladmin/core"
)

type (
	// Repository serves the subjects of the grade the authenticated user administers.
	Repository interface {
		QueryAll(ctx context.Context) ([]Subject, error)
		QueryElectives(ctx context.Context) ([]Subject, error)
		Create(ctx context.Context, ns NewSubject) (Subject, error)
		Update(ctx context.Context, id int, us UpdateSubject) (Subject, error)
		SetActive(ctx context.Context, id int, isActive bool) (Subject, error)
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) QueryElectives(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryElectives(ctx)
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Subject{}, err
	}
	return svc.repo.Create(ctx, ns)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateSubject) (Subject, error) {
	if err := us.Validate(svc.validate); err != nil {
		return Subject{}, err
	}
	return svc.repo.Update(ctx, id, us)
}

// ToggleActive flips the active flag of sub.
func (svc *Service) ToggleActive(ctx context.Context, sub Subject) (Subject, error) {
	return svc.repo.SetActive(ctx, sub.ID, !sub.IsActive)
}
