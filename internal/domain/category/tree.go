package category

import (
	"sort"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// levelStride separa los rangos numéricos de Order entre niveles del árbol,
// para que claves calculadas a distinta profundidad no colisionen si alguien
// las compara sin agrupar por ParentID. La reconstrucción SIEMPRE filtra por
// ParentID antes de ordenar; el orden global crudo no significa nada.
//
// Limitación conocida: colisiona con más de 1000 hermanos en un nivel o más
// de 1000 niveles de profundidad. Se mantiene por compatibilidad con las
// filas ya persistidas por la implementación original.
const levelStride = 1000

// Flatten convierte el bosque en la lista plana persistible, en recorrido
// DFS pre-orden. Para el hermano i (base 0) a profundidad level emite
// Order = i + level*levelStride. Un bosque de varias raíces se aplana como
// hermanos con ParentID vacío. No deduplica IDs: un duplicado se detecta
// después, como conflicto de persistencia en el insert.
func Flatten(roots []*entity.CategoryNode, userID string) []*entity.Category {
	out := make([]*entity.Category, 0, len(roots))
	flattenLevel(roots, "", userID, 0, &out)
	return out
}

func flattenLevel(nodes []*entity.CategoryNode, parentID, userID string, level int, out *[]*entity.Category) {
	for i, n := range nodes {
		*out = append(*out, &entity.Category{
			ID:       n.ID,
			UserID:   userID,
			ParentID: parentID,
			Name:     n.Name,
			Order:    i + level*levelStride,
		})
		flattenLevel(n.Children, n.ID, userID, level+1, out)
	}
}

// Build reconstruye el bosque a partir de filas planas en orden arbitrario:
// agrupa por ParentID (índice de adyacencia), ordena cada grupo de hermanos
// ascendente por Order (estable) y desciende desde las raíces.
//
// Las filas vienen de almacenamiento no confiable, así que un ciclo de
// ParentID o una referencia a un padre inexistente se detecta y se devuelve
// como domain.ErrCorruptHierarchy en lugar de recursión infinita.
func Build(rows []*entity.Category) ([]*entity.CategoryNode, error) {
	children := make(map[string][]*entity.Category, len(rows))
	for _, r := range rows {
		children[r.ParentID] = append(children[r.ParentID], r)
	}
	for _, siblings := range children {
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Order < siblings[j].Order
		})
	}

	visited := make(map[string]struct{}, len(rows))
	forest, err := buildLevel(children, "", visited)
	if err != nil {
		return nil, err
	}
	// Filas no alcanzables desde una raíz: padre roto o subárbol ciclado.
	if len(visited) != len(rows) {
		return nil, domain.ErrCorruptHierarchy
	}
	return forest, nil
}

func buildLevel(children map[string][]*entity.Category, parentID string, visited map[string]struct{}) ([]*entity.CategoryNode, error) {
	rows := children[parentID]
	nodes := make([]*entity.CategoryNode, 0, len(rows))
	for _, r := range rows {
		if _, seen := visited[r.ID]; seen {
			return nil, domain.ErrCorruptHierarchy
		}
		visited[r.ID] = struct{}{}
		kids, err := buildLevel(children, r.ID, visited)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &entity.CategoryNode{
			ID:       r.ID,
			Name:     r.Name,
			Children: kids,
		})
	}
	return nodes, nil
}
