package source

import (
	"context"

	"github.com/go-arcade/menuroute/internal/model"
	"github.com/go-arcade/menuroute/internal/repo"
	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/pkg/errors"
)

// DBSource reads the enabled functions of the system named by key.
type DBSource struct {
	repo repo.IFunctionRepository
}

func NewDBSource(functionRepo repo.IFunctionRepository) *DBSource {
	return &DBSource{repo: functionRepo}
}

func (s *DBSource) Load(ctx context.Context, key string) ([]menuroute.MenuItem, error) {
	functions, err := s.repo.ListBySystem(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "list functions of system %q", key)
	}
	if len(functions) == 0 {
		return nil, errors.Wrapf(ErrItemsNotFound, "system %q", key)
	}
	return model.ToMenuItems(functions), nil
}
