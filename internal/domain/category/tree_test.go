package category_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/category"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

const testOwner = "user_2wUsqGRXsrr3oD5dsS8zJtGNXN4"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// node construye un nodo con UUID nuevo y los hijos dados, en ese orden.
func node(name string, children ...*entity.CategoryNode) *entity.CategoryNode {
	return &entity.CategoryNode{ID: uuid.New().String(), Name: name, Children: children}
}

// assertSameForest compara dos bosques estructuralmente: mismos IDs, nombres
// y orden de hermanos, nivel por nivel. No usa DeepEqual para que un slice
// nil y uno vacío cuenten como iguales.
func assertSameForest(t *testing.T, want, got []*entity.CategoryNode) {
	t.Helper()
	require.Len(t, got, len(want), "cantidad de hermanos distinta")
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID, "ID del hermano %d", i)
		assert.Equal(t, want[i].Name, got[i].Name, "nombre del hermano %d", i)
		assertSameForest(t, want[i].Children, got[i].Children)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Flatten
// ──────────────────────────────────────────────────────────────────────────────

// TestFlatten_PreOrdenYClaves verifica el recorrido pre-orden y la fórmula
// de la clave de orden (índice de hermano + nivel*1000).
func TestFlatten_PreOrdenYClaves(t *testing.T) {
	phones := node("Phones")
	laptops := node("Laptops")
	electronics := node("Electronics", phones, laptops)
	clothing := node("Clothing")

	rows := category.Flatten([]*entity.CategoryNode{electronics, clothing}, testOwner)

	require.Len(t, rows, 4)

	// Pre-orden: Electronics, Phones, Laptops, Clothing
	assert.Equal(t, electronics.ID, rows[0].ID)
	assert.Equal(t, phones.ID, rows[1].ID)
	assert.Equal(t, laptops.ID, rows[2].ID)
	assert.Equal(t, clothing.ID, rows[3].ID)

	// Raíces: ParentID vacío, order = índice de hermano
	assert.Equal(t, "", rows[0].ParentID)
	assert.Equal(t, 0, rows[0].Order)
	assert.Equal(t, "", rows[3].ParentID)
	assert.Equal(t, 1, rows[3].Order)

	// Hijos de Electronics: nivel 1 → order = i + 1000
	assert.Equal(t, electronics.ID, rows[1].ParentID)
	assert.Equal(t, 1000, rows[1].Order)
	assert.Equal(t, electronics.ID, rows[2].ParentID)
	assert.Equal(t, 1001, rows[2].Order)

	// Todas las filas comparten el dueño
	for _, r := range rows {
		assert.Equal(t, testOwner, r.UserID)
	}
}

func TestFlatten_BosqueVacio(t *testing.T) {
	rows := category.Flatten(nil, testOwner)
	assert.Empty(t, rows)
}

// TestFlatten_NoDeduplicaIDs: un ID repetido en el bosque se emite dos
// veces; el conflicto se detecta después, en el insert.
func TestFlatten_NoDeduplicaIDs(t *testing.T) {
	a := node("A")
	b := &entity.CategoryNode{ID: a.ID, Name: "B"}

	rows := category.Flatten([]*entity.CategoryNode{a, b}, testOwner)

	require.Len(t, rows, 2)
	assert.Equal(t, rows[0].ID, rows[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Build
// ──────────────────────────────────────────────────────────────────────────────

// TestBuild_OrdenaHermanosPorOrder verifica que la reconstrucción filtra por
// padre y ordena ascendente por order, sin importar el orden de las filas.
func TestBuild_OrdenaHermanosPorOrder(t *testing.T) {
	idA, idB, idC := uuid.New().String(), uuid.New().String(), uuid.New().String()
	rows := []*entity.Category{
		{ID: idC, UserID: testOwner, Name: "C", Order: 2},
		{ID: idA, UserID: testOwner, Name: "A", Order: 0},
		{ID: idB, UserID: testOwner, Name: "B", Order: 1},
	}

	forest, err := category.Build(rows)
	require.NoError(t, err)
	require.Len(t, forest, 3)
	assert.Equal(t, []string{idA, idB, idC}, []string{forest[0].ID, forest[1].ID, forest[2].ID},
		"los hermanos deben salir en orden ascendente de order, nunca alfabético ni por ID")
}

// TestBuild_ColisionEntreNiveles: dos nodos a distinta profundidad pueden
// compartir el mismo valor de order; agrupar por padre antes de ordenar los
// mantiene separados.
func TestBuild_ColisionEntreNiveles(t *testing.T) {
	root := uuid.New().String()
	child := uuid.New().String()
	rows := []*entity.Category{
		// Mismo order (0) a profundidades distintas
		{ID: root, UserID: testOwner, Name: "raíz", Order: 0},
		{ID: child, UserID: testOwner, ParentID: root, Name: "hijo", Order: 0},
	}

	forest, err := category.Build(rows)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, child, forest[0].Children[0].ID)
}

func TestBuild_SinFilas(t *testing.T) {
	forest, err := category.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, forest)
}

// TestBuild_AutoReferencia: una fila que es su propio padre no debe colgar
// la recursión; se reporta como jerarquía corrupta.
func TestBuild_AutoReferencia(t *testing.T) {
	id := uuid.New().String()
	root := uuid.New().String()
	rows := []*entity.Category{
		{ID: root, UserID: testOwner, Name: "raíz", Order: 0},
		{ID: id, UserID: testOwner, ParentID: id, Name: "se apunta a sí misma", Order: 0},
	}

	_, err := category.Build(rows)
	assert.ErrorIs(t, err, domain.ErrCorruptHierarchy)
}

// TestBuild_CicloEntreDosFilas: A→B→A no es alcanzable desde ninguna raíz;
// debe detectarse, no ignorarse en silencio.
func TestBuild_CicloEntreDosFilas(t *testing.T) {
	idA, idB := uuid.New().String(), uuid.New().String()
	rows := []*entity.Category{
		{ID: idA, UserID: testOwner, ParentID: idB, Name: "A", Order: 0},
		{ID: idB, UserID: testOwner, ParentID: idA, Name: "B", Order: 0},
	}

	_, err := category.Build(rows)
	assert.ErrorIs(t, err, domain.ErrCorruptHierarchy)
}

// TestBuild_PadreInexistente: una referencia a un padre que no está en el
// conjunto también es jerarquía corrupta.
func TestBuild_PadreInexistente(t *testing.T) {
	rows := []*entity.Category{
		{ID: uuid.New().String(), UserID: testOwner, ParentID: uuid.New().String(), Name: "huérfana", Order: 0},
	}

	_, err := category.Build(rows)
	assert.ErrorIs(t, err, domain.ErrCorruptHierarchy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip: build(flatten(F)) == F
// ──────────────────────────────────────────────────────────────────────────────

// TestRoundTrip_BosqueAnidado es el contrato central del motor: aplanar y
// reconstruir debe devolver exactamente la misma estructura, con el mismo
// orden de hermanos.
func TestRoundTrip_BosqueAnidado(t *testing.T) {
	forest := []*entity.CategoryNode{
		node("Electronics",
			node("Phones",
				node("Android"),
				node("iOS"),
			),
			node("Laptops"),
		),
		node("Clothing",
			node("Shirts"),
		),
		node("Books"),
	}

	rows := category.Flatten(forest, testOwner)
	rebuilt, err := category.Build(rows)

	require.NoError(t, err)
	assertSameForest(t, forest, rebuilt)
}

// TestRoundTrip_PreservaOrdenDeHermanos fija que [A, B, C] vuelve como
// [A, B, C], nunca reordenado alfabéticamente ni por ID.
func TestRoundTrip_PreservaOrdenDeHermanos(t *testing.T) {
	forest := []*entity.CategoryNode{
		node("Zapatos"),
		node("Abrigos"),
		node("Medias"),
	}

	rows := category.Flatten(forest, testOwner)
	rebuilt, err := category.Build(rows)

	require.NoError(t, err)
	require.Len(t, rebuilt, 3)
	assert.Equal(t, "Zapatos", rebuilt[0].Name)
	assert.Equal(t, "Abrigos", rebuilt[1].Name)
	assert.Equal(t, "Medias", rebuilt[2].Name)
}

// TestRoundTrip_MuchosHermanosProfundos: mezcla de profundidad y cantidad
// de hermanos dentro de los límites del esquema de claves.
func TestRoundTrip_MuchosHermanosProfundos(t *testing.T) {
	level3 := make([]*entity.CategoryNode, 0, 15)
	for i := 0; i < 15; i++ {
		level3 = append(level3, node("hoja"))
	}
	forest := []*entity.CategoryNode{
		node("raíz",
			node("rama", level3...),
		),
	}

	rows := category.Flatten(forest, testOwner)
	rebuilt, err := category.Build(rows)

	require.NoError(t, err)
	assertSameForest(t, forest, rebuilt)
}
