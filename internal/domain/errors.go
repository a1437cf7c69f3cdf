package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrHasChildren      = errors.New("la categoría tiene hijos")
	ErrCorruptHierarchy = errors.New("jerarquía persistida inconsistente: ciclo o referencia padre rota")
)

// InvalidIdentifierError agrupa todos los IDs con formato inválido de un
// payload. Se reporta la lista completa, no solo el primer ofensor.
type InvalidIdentifierError struct {
	IDs []string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("identificadores inválidos: %s", strings.Join(e.IDs, ", "))
}

// DuplicateIdentifierError indica que dos nodos del árbol enviado comparten
// el mismo ID; el insert lo rechaza como conflicto de persistencia.
type DuplicateIdentifierError struct {
	IDs []string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("identificadores duplicados: %s", strings.Join(e.IDs, ", "))
}

// Fases del reemplazo total de la partición del dueño.
const (
	ReplacePhaseDelete = "delete"
	ReplacePhaseInsert = "insert"
	ReplacePhaseCommit = "commit"
)

// ReplaceError reporta en qué fase falló el reemplazo delete+insert.
// Delete e insert ocurren dentro de una transacción, así que un fallo en
// esas fases deja la partición intacta (rollback). Un fallo en commit es el
// único caso donde el estado final es incierto: el caller debe reenviar el
// mismo árbol en lugar de asumir no-op.
type ReplaceError struct {
	Phase string
	Err   error
}

func (e *ReplaceError) Error() string {
	return fmt.Sprintf("reemplazo de categorías falló en fase %s: %v", e.Phase, e.Err)
}

func (e *ReplaceError) Unwrap() error { return e.Err }

// ReadFailure marca que la lectura de IDs existentes (paso previo al diff)
// no pudo completarse; el save aborta antes de cualquier mutación y es
// seguro reintentar.
type ReadFailure struct {
	Err error
}

func (e *ReadFailure) Error() string {
	return fmt.Sprintf("lectura de categorías existentes falló: %v", e.Err)
}

func (e *ReadFailure) Unwrap() error { return e.Err }
