package repository

import "github.com/apenask/gest-oentregas/internal/domain/entity"

// EntregaRepository define a porta de persistência para Entrega.
type EntregaRepository interface {
	// ListComRelacionados devolve as entregas com o resumo do cliente e o nome do
	// entregador, ordenadas por data_hora_pedido decrescente.
	ListComRelacionados() ([]*entity.Entrega, error)
	Create(entrega *entity.Entrega) error
	// Update grava todos os campos mutáveis da entrega (não toca em timestamps de status).
	Update(entrega *entity.Entrega) error
	// UpdateStatus grava apenas os campos presentes na transição.
	UpdateStatus(id int64, atualizacao entity.AtualizacaoStatus) error
	Delete(id int64) error
	// CountPendentesPorEntregador conta entregas Aguardando/Em Rota do entregador.
	CountPendentesPorEntregador(entregadorID int64) (int, error)
}
