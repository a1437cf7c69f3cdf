package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/category"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// CategoryUseCase orquesta el árbol de categorías de cada dueño: el save de
// reemplazo total (validar → aplanar → diff → delete+insert transaccional)
// y las lecturas/operaciones individuales.
//
// Dos saves concurrentes del mismo dueño no son seguros (delete+insert
// intercalados pierden actualizaciones), así que el caso de uso serializa
// por user_id con un mutex por dueño, tomado desde la lectura de IDs hasta
// el final del reemplazo y liberado en toda salida. Dueños distintos operan
// sobre particiones disjuntas y no se coordinan entre sí.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	replacer ReplaceRunner
	log      *logger.Logger
	locks    sync.Map // user_id -> *sync.Mutex
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, replacer ReplaceRunner, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, replacer: replacer, log: log}
}

func (uc *CategoryUseCase) ownerLock(userID string) *sync.Mutex {
	v, _ := uc.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// SaveTree guarda el árbol completo del dueño con estrategia de reemplazo
// total: valida todos los IDs (reporta la lista completa de ofensores),
// aplana en pre-orden, calcula el diff contra los IDs persistidos y
// reemplaza la partición entera dentro de una transacción. El reporte
// devuelto corresponde al diff calculado antes de mutar.
func (uc *CategoryUseCase) SaveTree(ctx context.Context, userID string, in []dto.CategoryTreeNode) (*dto.TreeSaveResponse, error) {
	roots := fromTreeDTO(in)
	if invalid := category.ValidateTree(roots); len(invalid) > 0 {
		return nil, &domain.InvalidIdentifierError{IDs: invalid}
	}
	rows := category.Flatten(roots, userID)

	mu := uc.ownerLock(userID)
	mu.Lock()
	defer mu.Unlock()

	existingIDs, err := uc.repo.SelectIDs(ctx, userID)
	if err != nil {
		return nil, &domain.ReadFailure{Err: err}
	}
	diff := category.Diff(existingIDs, rows)

	// Cancelación antes de mutar: el estado persistido queda intacto.
	// Una vez iniciado el reemplazo, corre hasta terminar o falla con error.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	for _, r := range rows {
		r.CreatedAt = now
		r.UpdatedAt = now
	}

	err = uc.replacer.Replace(ctx, func(txRepo repository.CategoryRepository) error {
		if _, err := txRepo.DeleteAll(ctx, userID); err != nil {
			return &domain.ReplaceError{Phase: domain.ReplacePhaseDelete, Err: err}
		}
		if len(rows) == 0 {
			return nil
		}
		if err := txRepo.InsertMany(ctx, rows); err != nil {
			var dup *domain.DuplicateIdentifierError
			if errors.As(err, &dup) {
				return err
			}
			return &domain.ReplaceError{Phase: domain.ReplacePhaseInsert, Err: err}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("guardado del árbol de categorías falló")
		return nil, err
	}

	uc.log.Info().
		Str("user_id", userID).
		Int("created", len(diff.Created)).
		Int("updated", len(diff.Updated)).
		Int("deleted", len(diff.Deleted)).
		Msg("árbol de categorías guardado")

	return &dto.TreeSaveResponse{
		Created: diff.Created,
		Updated: diff.Updated,
		Deleted: diff.Deleted,
	}, nil
}

// GetTree reconstruye la jerarquía del dueño desde las filas persistidas.
// Las filas vienen de almacenamiento, así que un ciclo o una referencia
// padre rota se devuelve como domain.ErrCorruptHierarchy.
func (uc *CategoryUseCase) GetTree(ctx context.Context, userID string) ([]dto.CategoryTreeNode, error) {
	rows, err := uc.repo.SelectAll(ctx, userID)
	if err != nil {
		return nil, &domain.ReadFailure{Err: err}
	}
	forest, err := category.Build(rows)
	if err != nil {
		return nil, err
	}
	return toTreeDTO(forest), nil
}

// GetFlat devuelve las filas planas del dueño (parentId + order). El orden
// de la lista no es significativo; los hermanos se reconstruyen filtrando
// por parentId y ordenando por order.
func (uc *CategoryUseCase) GetFlat(ctx context.Context, userID string) ([]dto.CategoryResponse, error) {
	rows, err := uc.repo.SelectAll(ctx, userID)
	if err != nil {
		return nil, &domain.ReadFailure{Err: err}
	}
	out := make([]dto.CategoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toCategoryResponse(r))
	}
	return out, nil
}

// GetByID obtiene una categoría individual. Devuelve nil si no existe en la
// partición del dueño.
func (uc *CategoryUseCase) GetByID(ctx context.Context, userID, id string) (*dto.CategoryResponse, error) {
	if !category.ValidateID(id) {
		return nil, &domain.InvalidIdentifierError{IDs: []string{id}}
	}
	cat, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	return toCategoryResponse(cat), nil
}

// Create crea una categoría individual. El servidor genera el UUID y los
// timestamps; parentId es opcional y solo se valida su formato (la
// integridad referencial completa se verifica en el save de árbol, donde el
// conjunto entero es visible).
func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	parentID := ""
	if in.ParentID != nil && *in.ParentID != "" {
		if !category.ValidateID(*in.ParentID) {
			return nil, &domain.InvalidIdentifierError{IDs: []string{*in.ParentID}}
		}
		parentID = *in.ParentID
	}
	order := 0
	if in.Order != nil && *in.Order > 0 {
		order = *in.Order
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		ParentID:  parentID,
		Name:      in.Name,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Update actualiza nombre, padre u orden de una categoría individual.
// Devuelve nil si la categoría no existe en la partición del dueño.
func (uc *CategoryUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if !category.ValidateID(id) {
		return nil, &domain.InvalidIdentifierError{IDs: []string{id}}
	}
	cat, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.ParentID != nil {
		if *in.ParentID != "" && !category.ValidateID(*in.ParentID) {
			return nil, &domain.InvalidIdentifierError{IDs: []string{*in.ParentID}}
		}
		cat.ParentID = *in.ParentID
	}
	if in.Order != nil && *in.Order >= 0 {
		cat.Order = *in.Order
	}
	cat.UpdatedAt = time.Now()
	ok, err := uc.repo.Update(ctx, cat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return toCategoryResponse(cat), nil
}

// Delete borra una categoría individual. Si la categoría todavía tiene
// hijos en la jerarquía persistida, el borrado se rechaza con
// domain.ErrHasChildren (sin cascada; el save de árbol poda subárboles por
// omisión).
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteCategoryResponse, error) {
	if !category.ValidateID(id) {
		return nil, &domain.InvalidIdentifierError{IDs: []string{id}}
	}
	cat, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.repo.CountChildren(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrHasChildren
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteCategoryResponse{
		Success:     true,
		Deleted:     id,
		HasChildren: false,
		ChildCount:  0,
	}, nil
}

// ── conversiones wire ⇄ entidad ──────────────────────────────────────────────

func fromTreeDTO(in []dto.CategoryTreeNode) []*entity.CategoryNode {
	nodes := make([]*entity.CategoryNode, 0, len(in))
	for _, n := range in {
		nodes = append(nodes, &entity.CategoryNode{
			ID:       n.ID,
			Name:     n.Name,
			Children: fromTreeDTO(n.Children),
		})
	}
	return nodes
}

func toTreeDTO(nodes []*entity.CategoryNode) []dto.CategoryTreeNode {
	out := make([]dto.CategoryTreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryTreeNode{
			ID:       n.ID,
			Name:     n.Name,
			Children: toTreeDTO(n.Children),
		})
	}
	return out
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	var parentID *string
	if c.ParentID != "" {
		p := c.ParentID
		parentID = &p
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  parentID,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
