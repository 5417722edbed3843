package entity

import "time"

// Cliente representa um cliente da pizzaria (tabela clientes).
type Cliente struct {
	ID           int64
	NomeCompleto string
	RuaNumero    string
	Bairro       string
	Telefone     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
