package category

import (
	"sort"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// DiffResult es el reporte de un save: qué IDs se crearon, cuáles ya
// existían y se reescribieron, y cuáles desaparecieron. "Updated" significa
// "ya existía y fue reescrito" — el reemplazo total escribe siempre todas
// las filas entrantes, no hay patch por campo.
type DiffResult struct {
	Created []string
	Updated []string
	Deleted []string
}

// Diff calcula el reporte por aritmética de conjuntos pura:
//
//	Created = entrantes - existentes
//	Updated = entrantes ∩ existentes
//	Deleted = existentes - entrantes
//
// Created y Updated conservan el orden de las filas entrantes; Deleted se
// ordena lexicográficamente para que el reporte sea determinista.
func Diff(existingIDs []string, incoming []*entity.Category) DiffResult {
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	res := DiffResult{
		Created: make([]string, 0, len(incoming)),
		Updated: make([]string, 0, len(incoming)),
		Deleted: make([]string, 0),
	}
	incomingSet := make(map[string]struct{}, len(incoming))
	for _, row := range incoming {
		if _, dup := incomingSet[row.ID]; dup {
			continue
		}
		incomingSet[row.ID] = struct{}{}
		if _, ok := existing[row.ID]; ok {
			res.Updated = append(res.Updated, row.ID)
		} else {
			res.Created = append(res.Created, row.ID)
		}
	}
	for _, id := range existingIDs {
		if _, ok := incomingSet[id]; !ok {
			res.Deleted = append(res.Deleted, id)
		}
	}
	sort.Strings(res.Deleted)
	return res
}
