package usecase

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// ReplaceRunner ejecuta fn dentro de una transacción de BD, pasándole un
// CategoryRepository atado a esa transacción. El reemplazo delete+insert de
// la partición del dueño es una sola operación lógica: si fn retorna error
// se hace rollback; un fallo en el commit debe retornarse como
// *domain.ReplaceError con fase commit.
type ReplaceRunner interface {
	Replace(ctx context.Context, fn func(repo repository.CategoryRepository) error) error
}
