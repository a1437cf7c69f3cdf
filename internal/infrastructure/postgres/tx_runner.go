package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ usecase.ReplaceRunner = (*TxRunner)(nil)

// TxRunner ejecuta el reemplazo de una partición dentro de una transacción
// PostgreSQL: el delete y el insert del save son una sola operación lógica,
// así que un fallo en cualquiera de los dos hace rollback y la partición
// queda como estaba.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Replace inicia una transacción, ejecuta fn con un repositorio atado a la
// tx y hace Commit o Rollback. Un fallo del commit se reporta como
// *domain.ReplaceError en fase commit: es el único punto donde el estado
// final de la partición es incierto para el caller.
func (r *TxRunner) Replace(ctx context.Context, fn func(repo repository.CategoryRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCategoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.ReplaceError{Phase: domain.ReplacePhaseCommit, Err: err}
	}
	return nil
}
