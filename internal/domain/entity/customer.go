package entity

import "time"

// Customer representa un titular de cuenta. El CPF es la llave única e inmutable;
// el nombre es lo único editable después de la apertura.
type Customer struct {
	ID        string
	CPF       string
	Name      string
	Statement Statement
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone devuelve una copia profunda (incluye el extracto) para entregar fuera del registro.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Statement = Statement(c.Statement.All())
	return &cp
}
