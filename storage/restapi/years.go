package restapi

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/year"
)

type YearRepository struct {
	c *Client
}

var _ year.Repository = (*YearRepository)(nil)

func NewYearRepository(c *Client) *YearRepository {
	return &YearRepository{c: c}
}

func (repo *YearRepository) QueryAll(ctx context.Context) ([]year.Year, error) {
	var years []year.Year
	err := repo.c.get(ctx, "/years/", &years)
	return years, errors.Wrap(err, "fetching years")
}

func (repo *YearRepository) Current(ctx context.Context) (year.Year, error) {
	var y year.Year
	err := repo.c.get(ctx, "/years/current", &y)
	return y, errors.Wrap(err, "fetching current year")
}

func (repo *YearRepository) Create(ctx context.Context, ny year.NewYear) (year.Year, error) {
	var y year.Year
	err := repo.c.post(ctx, "/years/", ny, &y)
	return y, errors.Wrap(err, "creating year")
}

func (repo *YearRepository) SetCurrent(ctx context.Context, id int) (year.Year, error) {
	var y year.Year
	err := repo.c.patch(ctx, "/years/"+strconv.Itoa(id)+"/set-current", nil, &y)
	return y, errors.Wrap(err, "setting current year")
}

func (repo *YearRepository) Delete(ctx context.Context, id int) error {
	return errors.Wrap(repo.c.delete(ctx, "/years/"+strconv.Itoa(id), nil), "deleting year")
}
