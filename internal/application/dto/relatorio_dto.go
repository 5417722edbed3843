package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalPorEntregador agregado de um entregador no período.
type TotalPorEntregador struct {
	EntregadorID int64           `json:"entregador_id"`
	Nome         string          `json:"nome"`
	Quantidade   int             `json:"quantidade"`
	TotalCorrida decimal.Decimal `json:"total_corrida"`
}

// TotalPorFormaPagamento agregado de uma forma de pagamento no período.
type TotalPorFormaPagamento struct {
	FormaPagamento string          `json:"forma_pagamento"`
	Quantidade     int             `json:"quantidade"`
	TotalPedidos   decimal.Decimal `json:"total_pedidos"`
}

// RelatorioResponse relatório do período [inicio, fim).
type RelatorioResponse struct {
	Inicio               time.Time                `json:"inicio"`
	Fim                  time.Time                `json:"fim"`
	TotalEntregas        int                      `json:"total_entregas"`
	Entregues            int                      `json:"entregues"`
	Cancelados           int                      `json:"cancelados"`
	DuracaoMediaSegundos *float64                 `json:"duracao_media_segundos,omitempty"`
	PorEntregador        []TotalPorEntregador     `json:"por_entregador"`
	PorFormaPagamento    []TotalPorFormaPagamento `json:"por_forma_pagamento"`
}
