package year

import (
	"context"

	"github.com/trezcool/schooladmin/core"
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Year, error)
		Current(ctx context.Context) (Year, error)
		Create(ctx context.Context, ny NewYear) (Year, error)
		SetCurrent(ctx context.Context, id int) (Year, error)
		Delete(ctx context.Context, id int) error
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Year, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) Current(ctx context.Context) (Year, error) {
	return svc.repo.Current(ctx)
}

func (svc *Service) Create(ctx context.Context, ny NewYear) (Year, error) {
	if err := ny.Validate(svc.validate); err != nil {
		return Year{}, err
	}
	return svc.repo.Create(ctx, ny)
}

func (svc *Service) SetCurrent(ctx context.Context, id int) (Year, error) {
	return svc.repo.SetCurrent(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
