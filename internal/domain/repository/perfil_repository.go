package repository

import "github.com/apenask/gest-oentregas/internal/domain/entity"

// PerfilRepository define a porta de persistência para Perfil.
// GetByID devolve (nil, nil) quando não há linha para o id.
type PerfilRepository interface {
	GetByID(id string) (*entity.Perfil, error)
	Create(perfil *entity.Perfil) error
}
