package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]User, error)
		Register(ctx context.Context, nu NewUser) (Message, error)
		Update(ctx context.Context, id int, uu UpdateUser) (Message, error)
		ResetPassword(ctx context.Context, rp ResetPassword) (Message, error)
		Delete(ctx context.Context, id int) (Message, error)
		// SelectGrade sets the grade the authenticated admin administers.
		SelectGrade(ctx context.Context, gradeID int) (Message, error)
		SelectedGrade(ctx context.Context) (grade.Grade, error)
	}

	Service struct {
		repo     Repository
		validate *core.Validator
		bus      *core.Bus
	}
)

func NewService(repo Repository, validate *core.Validator, bus *core.Bus) *Service {
	return &Service{repo: repo, validate: validate, bus: bus}
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) Register(ctx context.Context, nu NewUser) (Message, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return Message{}, err
	}
	return svc.repo.Register(ctx, nu)
}

func (svc *Service) Update(ctx context.Context, id int, uu UpdateUser) (Message, error) {
	if err := uu.Validate(svc.validate); err != nil {
		return Message{}, err
	}
	return svc.repo.Update(ctx, id, uu)
}

func (svc *Service) ResetPassword(ctx context.Context, rp ResetPassword) (Message, error) {
	if err := rp.Validate(svc.validate); err != nil {
		return Message{}, err
	}
	return svc.repo.ResetPassword(ctx, rp)
}

func (svc *Service) Delete(ctx context.Context, id int) (Message, error) {
	return svc.repo.Delete(ctx, id)
}

// SelectGrade records the admin's grade selection and tells the subscribers of the bus about it.
func (svc *Service) SelectGrade(ctx context.Context, gradeID int) (Message, error) {
	msg, err := svc.repo.SelectGrade(ctx, gradeID)
	if err != nil {
		return Message{}, errors.Wrap(err, "selecting grade")
	}
	if svc.bus != nil {
		svc.bus.Notify(core.EventAdminGradeChanged)
	}
	return msg, nil
}

func (svc *Service) SelectedGrade(ctx context.Context) (grade.Grade, error) {
	return svc.repo.SelectedGrade(ctx)
}
