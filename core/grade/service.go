package grade

import (
	"context"

	"github.com/trezcool/schooladmin/core"
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Grade, error)
		AvailableTeachers(ctx context.Context) ([]Teacher, error)
		// Mine returns the grade the authenticated user administers, with its elective catalog.
		Mine(ctx context.Context) (WithElectiveSubjects, error)
		Create(ctx context.Context, ng NewGrade) (Grade, error)
		Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error)
		SetActive(ctx context.Context, id int, isActive bool) (Grade, error)
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) AvailableTeachers(ctx context.Context) ([]Teacher, error) {
	return svc.repo.AvailableTeachers(ctx)
}

func (svc *Service) Mine(ctx context.Context) (WithElectiveSubjects, error) {
	return svc.repo.Mine(ctx)
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := ng.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	return svc.repo.Create(ctx, ng)
}

func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	if err := ug.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	return svc.repo.Update(ctx, id, ug)
}

// ToggleActive flips the active flag of grd.
func (svc *Service) ToggleActive(ctx context.Context, grd Grade) (Grade, error) {
	return svc.repo.SetActive(ctx, grd.ID, !grd.IsActive)
}
