package entity

import (
	"time"

	"github.com/jhoicas/finapi/internal/domain"
)

// Statement es el log append-only de operaciones de un cliente, en orden de inserción.
// No es seguro para uso concurrente: el registro serializa el acceso por cuenta.
type Statement []Operation

// Append agrega op al final. Rechaza tipos fuera de {credit, debit} y montos negativos.
func (s *Statement) Append(op Operation) error {
	if !IsValidOperationType(op.Type) {
		return domain.ErrInvalidOperationType
	}
	if op.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	*s = append(*s, op)
	return nil
}

// All devuelve una copia de las operaciones en orden de inserción.
func (s Statement) All() []Operation {
	out := make([]Operation, len(s))
	copy(out, s)
	return out
}

// Len cantidad de operaciones.
func (s Statement) Len() int { return len(s) }

// FilterByDate devuelve las operaciones cuyo CreatedAt cae en el mismo día calendario que day.
// La comparación se hace en la zona horaria de day; la hora del día se ignora.
func (s Statement) FilterByDate(day time.Time) []Operation {
	out := make([]Operation, 0)
	for _, op := range s {
		if SameDay(op.CreatedAt, day) {
			out = append(out, op)
		}
	}
	return out
}

// SameDay compara t y day a resolución de día, usando la zona horaria de day.
func SameDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
