package entity

import "time"

// Entregador representa um entregador da pizzaria (tabela entregadores).
// A remoção é lógica: Ativo passa a false e o registro sai das listagens.
type Entregador struct {
	ID           int64
	UsuarioID    string // uuid da identidade no provedor de auth
	NomeCompleto string
	Ativo        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
