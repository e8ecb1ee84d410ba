// Package memory implementa el registro de clientes en memoria del proceso.
// Los datos se pierden al terminar el proceso.
//
// Bloqueos:
//   - mu (RWMutex) protege la membresía del mapa cpf → slot.
//   - slot.mu protege el registro del cliente (nombre y extracto).
//
// Orden de adquisición: mu antes que slot.mu, nunca al revés.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/finapi/internal/domain"
	"github.com/jhoicas/finapi/internal/domain/entity"
	"github.com/jhoicas/finapi/internal/domain/repository"
)

// Ensure CustomerRepository implements repository.CustomerRepository.
var _ repository.CustomerRepository = (*CustomerRepository)(nil)

type slot struct {
	mu       sync.Mutex
	customer *entity.Customer
	closed   bool
}

// CustomerRepository registro de clientes indexado por CPF.
type CustomerRepository struct {
	mu    sync.RWMutex
	slots map[string]*slot
}

// NewCustomerRepository construye un registro vacío.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{slots: make(map[string]*slot)}
}

// Exists indica si hay un cliente con ese CPF.
func (r *CustomerRepository) Exists(cpf string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.slots[cpf]
	return ok
}

// Create inserta el cliente. Verificación e inserción ocurren bajo el mismo bloqueo de escritura.
func (r *CustomerRepository) Create(customer *entity.Customer) error {
	if customer == nil || customer.CPF == "" {
		return fmt.Errorf("memory: crear cliente: %w", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[customer.CPF]; ok {
		return domain.ErrDuplicateCustomer
	}
	r.slots[customer.CPF] = &slot{customer: customer.Clone()}
	return nil
}

// GetByCPF devuelve una copia profunda del cliente.
func (r *CustomerRepository) GetByCPF(cpf string) (*entity.Customer, error) {
	s, err := r.lookup(cpf)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrNotFound
	}
	return s.customer.Clone(), nil
}

// UpdateName cambia el nombre en el mismo registro.
func (r *CustomerRepository) UpdateName(cpf, name string) error {
	s, err := r.lookup(cpf)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrNotFound
	}
	s.customer.Name = name
	s.customer.UpdatedAt = time.Now()
	return nil
}

// Delete quita el cliente del mapa y marca el slot como cerrado, de modo que
// quien ya lo había resuelto vea domain.ErrNotFound y no un registro a medio borrar.
func (r *CustomerRepository) Delete(cpf string) error {
	r.mu.Lock()
	s, ok := r.slots[cpf]
	if !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.slots, cpf)
	r.mu.Unlock()

	s.mu.Lock()
	s.closed = true
	s.customer = nil
	s.mu.Unlock()
	return nil
}

// Count cantidad de clientes registrados.
func (r *CustomerRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

func (r *CustomerRepository) lookup(cpf string) (*slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[cpf]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}
