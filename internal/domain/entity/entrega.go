package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status persistidos na coluna entregas.status.
const (
	StatusAguardando = "Aguardando"
	StatusEmRota     = "Em Rota"
	StatusEntregue   = "Entregue"
	StatusCancelado  = "Cancelado"
)

// Formas de pagamento aceitas (valores persistidos como texto).
const (
	PagamentoDinheiro      = "Dinheiro"
	PagamentoPix           = "Pix"
	PagamentoCartaoDebito  = "Cartão de Débito"
	PagamentoCartaoCredito = "Cartão de Crédito"
)

// Entrega é uma unidade pedido-até-entrega (tabela entregas).
// Cliente e NomeEntregador são resumos carregados no join da listagem.
type Entrega struct {
	ID                     int64
	NumeroPedido           string
	ClienteID              int64
	Cliente                *Cliente
	EntregadorID           int64
	NomeEntregador         string
	FormaPagamento         string
	ValorPedido            decimal.Decimal
	ValorCorrida           decimal.Decimal
	Status                 string
	DataHoraPedido         time.Time
	DataHoraSaida          *time.Time
	DataHoraEntrega        *time.Time
	DuracaoEntregaSegundos *int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// AtualizacaoStatus agrupa os campos gravados numa transição de status.
// DataHoraSaida só acompanha Em Rota; DataHoraEntrega e DuracaoSegundos
// só acompanham Entregue. Cancelado grava apenas o status.
type AtualizacaoStatus struct {
	Status          string
	DataHoraSaida   *time.Time
	DataHoraEntrega *time.Time
	DuracaoSegundos *int64
}

// Pendente informa se a entrega ainda ocupa o entregador.
func (e *Entrega) Pendente() bool {
	return e.Status == StatusAguardando || e.Status == StatusEmRota
}

// StatusValido informa se o valor é um status reconhecido.
func StatusValido(status string) bool {
	switch status {
	case StatusAguardando, StatusEmRota, StatusEntregue, StatusCancelado:
		return true
	}
	return false
}

// FormaPagamentoValida informa se o valor é uma forma de pagamento reconhecida.
func FormaPagamentoValida(forma string) bool {
	switch forma {
	case PagamentoDinheiro, PagamentoPix, PagamentoCartaoDebito, PagamentoCartaoCredito:
		return true
	}
	return false
}

// PodeTransicionar descreve a ordem natural Aguardando → Em Rota → {Entregue, Cancelado}.
// A camada de dados NÃO rejeita transições fora dessa ordem (comportamento herdado
// do sistema original); o helper existe para a UI/relatórios sinalizarem anomalias.
func PodeTransicionar(de, para string) bool {
	switch de {
	case StatusAguardando:
		return para == StatusEmRota || para == StatusCancelado
	case StatusEmRota:
		return para == StatusEntregue || para == StatusCancelado
	}
	return false
}
