package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apenask/gest-oentregas/internal/domain/entity"
	"github.com/apenask/gest-oentregas/internal/domain/repository"
)

var _ repository.EntregaRepository = (*EntregaRepo)(nil)

// EntregaRepo implementação de EntregaRepository (usável com pool ou tx).
type EntregaRepo struct {
	q Querier
}

// NewEntregaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEntregaRepository(q Querier) *EntregaRepo {
	return &EntregaRepo{q: q}
}

// ListComRelacionados devolve as entregas com resumo do cliente e nome do
// entregador, da mais recente para a mais antiga.
func (r *EntregaRepo) ListComRelacionados() ([]*entity.Entrega, error) {
	query := `
		SELECT e.id, e.numero_pedido, e.cliente_id, e.entregador_id, e.forma_pagamento,
		       e.valor_pedido, e.valor_corrida, e.status, e.data_hora_pedido,
		       e.data_hora_saida, e.data_hora_entrega, e.duracao_entrega_segundos,
		       e.created_at, e.updated_at,
		       c.nome_completo, c.rua_numero, c.bairro, c.telefone,
		       en.nome_completo
		FROM entregas e
		LEFT JOIN clientes c ON c.id = e.cliente_id
		LEFT JOIN entregadores en ON en.id = e.entregador_id
		ORDER BY e.data_hora_pedido DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list entregas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Entrega
	for rows.Next() {
		var e entity.Entrega
		var numeroPedido *string
		var clienteNome, clienteRua, clienteBairro, clienteTelefone *string
		var entregadorNome *string
		if err := rows.Scan(
			&e.ID, &numeroPedido, &e.ClienteID, &e.EntregadorID, &e.FormaPagamento,
			&e.ValorPedido, &e.ValorCorrida, &e.Status, &e.DataHoraPedido,
			&e.DataHoraSaida, &e.DataHoraEntrega, &e.DuracaoEntregaSegundos,
			&e.CreatedAt, &e.UpdatedAt,
			&clienteNome, &clienteRua, &clienteBairro, &clienteTelefone,
			&entregadorNome,
		); err != nil {
			return nil, fmt.Errorf("scan entrega: %w", err)
		}
		if numeroPedido != nil {
			e.NumeroPedido = *numeroPedido
		}
		if clienteNome != nil {
			e.Cliente = &entity.Cliente{
				ID:           e.ClienteID,
				NomeCompleto: *clienteNome,
				RuaNumero:    derefOr(clienteRua, ""),
				Bairro:       derefOr(clienteBairro, ""),
				Telefone:     clienteTelefone,
			}
		}
		if entregadorNome != nil {
			e.NomeEntregador = *entregadorNome
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Create persiste uma nova entrega e carrega o id gerado.
func (r *EntregaRepo) Create(entrega *entity.Entrega) error {
	query := `
		INSERT INTO entregas (numero_pedido, cliente_id, entregador_id, forma_pagamento,
		                      valor_pedido, valor_corrida, status, data_hora_pedido)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		entrega.NumeroPedido, entrega.ClienteID, entrega.EntregadorID, entrega.FormaPagamento,
		entrega.ValorPedido, entrega.ValorCorrida, entrega.Status, entrega.DataHoraPedido,
	).Scan(&entrega.ID)
	if err != nil {
		return fmt.Errorf("insert entrega: %w", err)
	}
	return nil
}

// Update grava todos os campos mutáveis da entrega. Não toca nos timestamps de
// status nem na duração: esses só mudam via UpdateStatus.
func (r *EntregaRepo) Update(entrega *entity.Entrega) error {
	query := `
		UPDATE entregas SET numero_pedido = $2, cliente_id = $3, entregador_id = $4,
		       forma_pagamento = $5, valor_pedido = $6, valor_corrida = $7, status = $8,
		       updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entrega.ID, entrega.NumeroPedido, entrega.ClienteID, entrega.EntregadorID,
		entrega.FormaPagamento, entrega.ValorPedido, entrega.ValorCorrida, entrega.Status,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update entrega: %w", err)
	}
	return nil
}

// UpdateStatus grava apenas os campos presentes na transição de status.
func (r *EntregaRepo) UpdateStatus(id int64, atualizacao entity.AtualizacaoStatus) error {
	set := []string{"status = $2", "updated_at = $3"}
	args := []any{id, atualizacao.Status, time.Now()}

	if atualizacao.DataHoraSaida != nil {
		args = append(args, *atualizacao.DataHoraSaida)
		set = append(set, fmt.Sprintf("data_hora_saida = $%d", len(args)))
	}
	if atualizacao.DataHoraEntrega != nil {
		args = append(args, *atualizacao.DataHoraEntrega)
		set = append(set, fmt.Sprintf("data_hora_entrega = $%d", len(args)))
	}
	if atualizacao.DuracaoSegundos != nil {
		args = append(args, *atualizacao.DuracaoSegundos)
		set = append(set, fmt.Sprintf("duracao_entrega_segundos = $%d", len(args)))
	}

	query := "UPDATE entregas SET " + strings.Join(set, ", ") + " WHERE id = $1"
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("update status entrega: %w", err)
	}
	return nil
}

// Delete remove a entrega pelo id.
func (r *EntregaRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM entregas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entrega: %w", err)
	}
	return nil
}

// CountPendentesPorEntregador conta entregas Aguardando/Em Rota do entregador.
func (r *EntregaRepo) CountPendentesPorEntregador(entregadorID int64) (int, error) {
	query := `
		SELECT count(*) FROM entregas
		WHERE entregador_id = $1 AND status = ANY($2)`
	var n int
	err := r.q.QueryRow(context.Background(), query, entregadorID,
		[]string{entity.StatusAguardando, entity.StatusEmRota},
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entregas pendentes: %w", err)
	}
	return n, nil
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
