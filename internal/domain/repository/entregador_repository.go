package repository

import "github.com/apenask/gest-oentregas/internal/domain/entity"

// EntregadorRepository define a porta de persistência para Entregador.
type EntregadorRepository interface {
	// ListAtivos devolve os entregadores com ativo=true ordenados por nome_completo.
	ListAtivos() ([]*entity.Entregador, error)
	GetByID(id int64) (*entity.Entregador, error)
	// GetByUsuarioID localiza o entregador vinculado a uma identidade do provedor de auth.
	GetByUsuarioID(usuarioID string) (*entity.Entregador, error)
	Create(entregador *entity.Entregador) error
	UpdateNome(id int64, nomeCompleto string) error
	// Desativar faz a remoção lógica (ativo=false).
	Desativar(id int64) error
}
