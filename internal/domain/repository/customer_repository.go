package repository

import "github.com/jhoicas/finapi/internal/domain/entity"

// CustomerRepository define el puerto del registro de clientes (llave: CPF).
// Create debe ser atómico: dos altas concurrentes con el mismo CPF no pueden tener éxito ambas.
type CustomerRepository interface {
	Exists(cpf string) bool
	Create(customer *entity.Customer) error
	GetByCPF(cpf string) (*entity.Customer, error)
	UpdateName(cpf, name string) error
	Delete(cpf string) error
	Count() int
}
