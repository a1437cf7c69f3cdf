package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogo-api/internal/domain/category"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func incoming(ids ...string) []*entity.Category {
	rows := make([]*entity.Category, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &entity.Category{ID: id, UserID: testOwner})
	}
	return rows
}

// TestDiff_CasoBase: existentes {1,2,3} contra entrantes {2,3,4} →
// created=[4], updated=[2,3], deleted=[1].
func TestDiff_CasoBase(t *testing.T) {
	res := category.Diff([]string{"1", "2", "3"}, incoming("2", "3", "4"))

	assert.Equal(t, []string{"4"}, res.Created)
	assert.Equal(t, []string{"2", "3"}, res.Updated)
	assert.Equal(t, []string{"1"}, res.Deleted)
}

// TestDiff_TodoNuevo: partición vacía, todo entrante es creado.
func TestDiff_TodoNuevo(t *testing.T) {
	res := category.Diff(nil, incoming("a", "b"))

	assert.Equal(t, []string{"a", "b"}, res.Created)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Deleted)
}

// TestDiff_ArbolVacio: guardar [] contra {1,2} borra todo.
func TestDiff_ArbolVacio(t *testing.T) {
	res := category.Diff([]string{"2", "1"}, nil)

	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
	assert.Equal(t, []string{"1", "2"}, res.Deleted, "deleted se ordena para un reporte determinista")
}

// TestDiff_Idempotente: reenviar el mismo conjunto deja created y deleted
// vacíos y updated igual a todos los IDs enviados.
func TestDiff_Idempotente(t *testing.T) {
	res := category.Diff([]string{"x", "y"}, incoming("x", "y"))

	assert.Empty(t, res.Created)
	assert.Equal(t, []string{"x", "y"}, res.Updated)
	assert.Empty(t, res.Deleted)
}

// TestDiff_SlicesNuncaNil: el reporte se serializa como [] en JSON, no null.
func TestDiff_SlicesNuncaNil(t *testing.T) {
	res := category.Diff(nil, nil)

	assert.NotNil(t, res.Created)
	assert.NotNil(t, res.Updated)
	assert.NotNil(t, res.Deleted)
}

// TestDiff_EntrantesDuplicados: un ID repetido en el lote cuenta una sola
// vez en el reporte (el conflicto real lo rechaza el insert).
func TestDiff_EntrantesDuplicados(t *testing.T) {
	res := category.Diff([]string{"a"}, incoming("a", "a", "b"))

	assert.Equal(t, []string{"b"}, res.Created)
	assert.Equal(t, []string{"a"}, res.Updated)
	assert.Empty(t, res.Deleted)
}
