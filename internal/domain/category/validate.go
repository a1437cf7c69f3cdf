package category

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ValidateID verifica que un identificador sea un UUID en su forma textual
// canónica (36 caracteres con guiones). uuid.Parse acepta también variantes
// con llaves o prefijo urn:, que aquí se rechazan.
func ValidateID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidateTree recorre el bosque completo (no solo las raíces) y devuelve
// todos los IDs con formato inválido, sin cortar en el primero. Devuelve
// nil si el bosque es válido. Función pura.
func ValidateTree(roots []*entity.CategoryNode) []string {
	var invalid []string
	seen := make(map[string]struct{})
	walkInvalid(roots, seen, &invalid)
	return invalid
}

func walkInvalid(nodes []*entity.CategoryNode, seen map[string]struct{}, invalid *[]string) {
	for _, n := range nodes {
		if !ValidateID(n.ID) {
			if _, dup := seen[n.ID]; !dup {
				seen[n.ID] = struct{}{}
				*invalid = append(*invalid, n.ID)
			}
		}
		walkInvalid(n.Children, seen, invalid)
	}
}
