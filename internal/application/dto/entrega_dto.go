package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NovoClienteRequest dados de um cliente criado inline junto com a entrega.
type NovoClienteRequest struct {
	Nome      string  `json:"nome" validate:"required"`
	RuaNumero string  `json:"rua_numero" validate:"required"`
	Bairro    string  `json:"bairro" validate:"required"`
	Telefone  *string `json:"telefone"`
}

// NovaEntregaRequest entrada da criação de entrega. Se ClienteNovo estiver
// presente, o cliente é inserido primeiro e o id gerado substitui ClienteID.
type NovaEntregaRequest struct {
	NumeroPedido   string              `json:"numero_pedido"`
	ClienteID      int64               `json:"cliente_id"`
	ClienteNovo    *NovoClienteRequest `json:"cliente_novo,omitempty"`
	EntregadorID   int64               `json:"entregador_id" validate:"required"`
	FormaPagamento string              `json:"forma_pagamento" validate:"required"`
	ValorPedido    decimal.Decimal     `json:"valor_pedido"`
	ValorCorrida   decimal.Decimal     `json:"valor_corrida"`
}

// AtualizarStatusRequest entrada da transição de status. DataHora alimenta
// data_hora_saida (Em Rota) ou data_hora_entrega (Entregue).
type AtualizarStatusRequest struct {
	Status   string     `json:"status" validate:"required"`
	DataHora *time.Time `json:"data_hora"`
}

// ClienteEditado é o cliente embutido na edição de entrega; quando presente, a
// linha do cliente é atualizada antes da entrega, mesmo sem mudanças.
type ClienteEditado struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome"`
	RuaNumero string  `json:"rua_numero"`
	Bairro    string  `json:"bairro"`
	Telefone  *string `json:"telefone"`
}

// EditarEntregaRequest entrada da edição completa de uma entrega.
type EditarEntregaRequest struct {
	ID             int64           `json:"id"`
	NumeroPedido   string          `json:"numero_pedido"`
	ClienteID      int64           `json:"cliente_id"`
	Cliente        *ClienteEditado `json:"cliente,omitempty"`
	EntregadorID   int64           `json:"entregador_id"`
	FormaPagamento string          `json:"forma_pagamento"`
	ValorPedido    decimal.Decimal `json:"valor_pedido"`
	ValorCorrida   decimal.Decimal `json:"valor_corrida"`
	Status         string          `json:"status"`
}

// EntregaResponse saída de uma entrega com os resumos do join.
type EntregaResponse struct {
	ID                     int64            `json:"id"`
	NumeroPedido           string           `json:"numero_pedido"`
	ClienteID              int64            `json:"cliente_id"`
	Cliente                *ClienteResponse `json:"cliente,omitempty"`
	EntregadorID           int64            `json:"entregador_id"`
	NomeEntregador         string           `json:"nome_entregador"`
	FormaPagamento         string           `json:"forma_pagamento"`
	ValorPedido            decimal.Decimal  `json:"valor_pedido"`
	ValorCorrida           decimal.Decimal  `json:"valor_corrida"`
	Status                 string           `json:"status"`
	DataHoraPedido         time.Time        `json:"data_hora_pedido"`
	DataHoraSaida          *time.Time       `json:"data_hora_saida,omitempty"`
	DataHoraEntrega        *time.Time       `json:"data_hora_entrega,omitempty"`
	DuracaoEntregaSegundos *int64           `json:"duracao_entrega_segundos,omitempty"`
}
