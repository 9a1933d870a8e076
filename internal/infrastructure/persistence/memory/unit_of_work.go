package memory

import (
	"context"

	"github.com/rafabene/contenthub-backend/internal/domain/ports"
)

// UnitOfWork é um pass-through: os repositórios em memória já são
// atômicos operação a operação, então não há transação a abrir.
type UnitOfWork struct{}

func NewUnitOfWork() ports.UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (u *UnitOfWork) Commit(ctx context.Context) error                   { return nil }
func (u *UnitOfWork) Rollback(ctx context.Context) error                 { return nil }

func (u *UnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
