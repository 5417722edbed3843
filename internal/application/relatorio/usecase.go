package relatorio

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
)

// FonteDados é a fatia do Store que o relatório consome.
type FonteDados interface {
	Snapshot() expedicao.Snapshot
}

// UseCase gera os relatórios gerenciais a partir do snapshot em memória.
type UseCase struct {
	fonte FonteDados
}

// NewUseCase constrói o caso de uso.
func NewUseCase(fonte FonteDados) *UseCase {
	return &UseCase{fonte: fonte}
}

// Gerar agrega as entregas com data_hora_pedido em [inicio, fim):
// totais por entregador, por forma de pagamento, contagens por desfecho e a
// duração média das entregues que carregam duração persistida.
func (uc *UseCase) Gerar(inicio, fim time.Time) *dto.RelatorioResponse {
	snapshot := uc.fonte.Snapshot()

	porEntregador := make(map[int64]*dto.TotalPorEntregador)
	porForma := make(map[string]*dto.TotalPorFormaPagamento)

	var total, entregues, cancelados int
	var somaDuracao int64
	var comDuracao int

	for _, e := range snapshot.Entregas {
		if e.DataHoraPedido.Before(inicio) || !e.DataHoraPedido.Before(fim) {
			continue
		}
		total++

		agg := porEntregador[e.EntregadorID]
		if agg == nil {
			agg = &dto.TotalPorEntregador{
				EntregadorID: e.EntregadorID,
				Nome:         e.NomeEntregador,
				TotalCorrida: decimal.Zero,
			}
			porEntregador[e.EntregadorID] = agg
		}
		agg.Quantidade++
		agg.TotalCorrida = agg.TotalCorrida.Add(e.ValorCorrida)

		forma := porForma[e.FormaPagamento]
		if forma == nil {
			forma = &dto.TotalPorFormaPagamento{
				FormaPagamento: e.FormaPagamento,
				TotalPedidos:   decimal.Zero,
			}
			porForma[e.FormaPagamento] = forma
		}
		forma.Quantidade++
		forma.TotalPedidos = forma.TotalPedidos.Add(e.ValorPedido)

		switch e.Status {
		case entity.StatusEntregue:
			entregues++
			if e.DuracaoEntregaSegundos != nil {
				somaDuracao += *e.DuracaoEntregaSegundos
				comDuracao++
			}
		case entity.StatusCancelado:
			cancelados++
		}
	}

	out := &dto.RelatorioResponse{
		Inicio:            inicio,
		Fim:               fim,
		TotalEntregas:     total,
		Entregues:         entregues,
		Cancelados:        cancelados,
		PorEntregador:     make([]dto.TotalPorEntregador, 0, len(porEntregador)),
		PorFormaPagamento: make([]dto.TotalPorFormaPagamento, 0, len(porForma)),
	}
	if comDuracao > 0 {
		media := float64(somaDuracao) / float64(comDuracao)
		out.DuracaoMediaSegundos = &media
	}

	for _, agg := range porEntregador {
		out.PorEntregador = append(out.PorEntregador, *agg)
	}
	sort.Slice(out.PorEntregador, func(i, j int) bool {
		return out.PorEntregador[i].Nome < out.PorEntregador[j].Nome
	})

	for _, forma := range porForma {
		out.PorFormaPagamento = append(out.PorFormaPagamento, *forma)
	}
	sort.Slice(out.PorFormaPagamento, func(i, j int) bool {
		return out.PorFormaPagamento[i].FormaPagamento < out.PorFormaPagamento[j].FormaPagamento
	})

	return out
}
