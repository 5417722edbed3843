package dto

import "time"

// DadosResponse é o snapshot completo servido à apresentação após um reload.
type DadosResponse struct {
	Entregas     []EntregaResponse    `json:"entregas"`
	Clientes     []ClienteResponse    `json:"clientes"`
	Entregadores []EntregadorResponse `json:"entregadores"`
	AtualizadoEm time.Time            `json:"atualizado_em"`
}
