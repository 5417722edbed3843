package repository

import "github.com/apenask/gest-oentregas/internal/domain/entity"

// ClienteRepository define a porta de persistência para Cliente.
type ClienteRepository interface {
	// List devolve todos os clientes ordenados por nome_completo.
	List() ([]*entity.Cliente, error)
	GetByID(id int64) (*entity.Cliente, error)
	// Create insere e devolve o id gerado pelo banco.
	Create(cliente *entity.Cliente) (int64, error)
	Update(cliente *entity.Cliente) error
	Delete(id int64) error
}
