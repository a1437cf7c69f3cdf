package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las operaciones están acotadas a la partición de un userID; el
// store no conoce referencias entre dueños.
type CategoryRepository interface {
	// SelectAll devuelve todas las filas de la partición del dueño, en
	// orden no garantizado (la reconstrucción ordena por ParentID+Order).
	SelectAll(ctx context.Context, userID string) ([]*entity.Category, error)
	// SelectIDs devuelve solo los IDs persistidos del dueño (paso de
	// lectura del diff; no hace falta materializar filas completas).
	SelectIDs(ctx context.Context, userID string) ([]string, error)
	// DeleteAll borra la partición completa y devuelve cuántas filas había.
	DeleteAll(ctx context.Context, userID string) (int64, error)
	// InsertMany inserta el lote aplanado. Un ID duplicado dentro del lote
	// (o contra filas remanentes) retorna *domain.DuplicateIdentifierError.
	InsertMany(ctx context.Context, rows []*entity.Category) error

	// Operaciones de nodo individual.
	GetByID(ctx context.Context, userID, id string) (*entity.Category, error)
	Create(ctx context.Context, cat *entity.Category) error
	Update(ctx context.Context, cat *entity.Category) (bool, error)
	Delete(ctx context.Context, userID, id string) error
	CountChildren(ctx context.Context, userID, parentID string) (int, error)
}
