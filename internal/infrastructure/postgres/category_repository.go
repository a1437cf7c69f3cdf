package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// SelectAll devuelve todas las filas de la partición del dueño.
func (r *CategoryRepo) SelectAll(ctx context.Context, userID string) ([]*entity.Category, error) {
	query := `
		SELECT id, user_id, parent_id, name, sort_order, created_at, updated_at
		FROM categories WHERE user_id = $1`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SelectIDs devuelve solo los IDs persistidos del dueño.
func (r *CategoryRepo) SelectIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM categories WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("select category ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteAll borra la partición completa del dueño y devuelve cuántas filas había.
func (r *CategoryRepo) DeleteAll(ctx context.Context, userID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// InsertMany inserta el lote aplanado en un solo round trip (pgx.Batch).
// Una violación de unicidad sobre id se reporta como
// *domain.DuplicateIdentifierError con los IDs en conflicto.
func (r *CategoryRepo) InsertMany(ctx context.Context, rows []*entity.Category) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range rows {
		batch.Queue(`
			INSERT INTO categories (id, user_id, parent_id, name, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.UserID, nullIfEmpty(c.ParentID), c.Name, c.Order, c.CreatedAt, c.UpdatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for range rows {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isUniqueViolation(err) {
				return &domain.DuplicateIdentifierError{IDs: duplicatedIDs(rows)}
			}
			return fmt.Errorf("insert categories: %w", err)
		}
	}
	return br.Close()
}

// GetByID obtiene una categoría por ID dentro de la partición del dueño.
func (r *CategoryRepo) GetByID(ctx context.Context, userID, id string) (*entity.Category, error) {
	query := `
		SELECT id, user_id, parent_id, name, sort_order, created_at, updated_at
		FROM categories WHERE user_id = $1 AND id = $2`
	c, err := scanCategory(r.q.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Create persiste una nueva categoría individual.
func (r *CategoryRepo) Create(ctx context.Context, cat *entity.Category) error {
	query := `
		INSERT INTO categories (id, user_id, parent_id, name, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		cat.ID, cat.UserID, nullIfEmpty(cat.ParentID), cat.Name, cat.Order, cat.CreatedAt, cat.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateIdentifierError{IDs: []string{cat.ID}}
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Update actualiza una categoría existente. Devuelve false si no existe.
func (r *CategoryRepo) Update(ctx context.Context, cat *entity.Category) (bool, error) {
	query := `
		UPDATE categories SET parent_id = $3, name = $4, sort_order = $5, updated_at = $6
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		cat.UserID, cat.ID, nullIfEmpty(cat.ParentID), cat.Name, cat.Order, cat.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete borra una categoría individual de la partición del dueño.
func (r *CategoryRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// CountChildren cuenta los hijos directos de una categoría.
func (r *CategoryRepo) CountChildren(ctx context.Context, userID, parentID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE user_id = $1 AND parent_id = $2`,
		userID, parentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return n, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parentID *string
	if err := row.Scan(&c.ID, &c.UserID, &parentID, &c.Name, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if parentID != nil {
		c.ParentID = *parentID
	}
	return &c, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// duplicatedIDs devuelve los IDs que aparecen más de una vez en el lote,
// para poder reportar el conflicto con los valores exactos.
func duplicatedIDs(rows []*entity.Category) []string {
	seen := make(map[string]int, len(rows))
	var dups []string
	for _, c := range rows {
		seen[c.ID]++
		if seen[c.ID] == 2 {
			dups = append(dups, c.ID)
		}
	}
	return dups
}
