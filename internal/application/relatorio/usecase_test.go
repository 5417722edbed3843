package relatorio_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apenask/gest-oentregas/internal/application/expedicao"
	"github.com/apenask/gest-oentregas/internal/application/relatorio"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
)

type fonteFixa struct {
	snapshot expedicao.Snapshot
}

func (f fonteFixa) Snapshot() expedicao.Snapshot { return f.snapshot }

func valor(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ponteiro(v int64) *int64 { return &v }

func entregaDe(entregadorID int64, nome, status, forma string, pedido time.Time, valorPedido, valorCorrida string, duracao *int64) *entity.Entrega {
	return &entity.Entrega{
		EntregadorID:           entregadorID,
		NomeEntregador:         nome,
		Status:                 status,
		FormaPagamento:         forma,
		DataHoraPedido:         pedido,
		ValorPedido:            valor(valorPedido),
		ValorCorrida:           valor(valorCorrida),
		DuracaoEntregaSegundos: duracao,
	}
}

func TestGerar_AgregaPorEntregadorEFormaPagamento(t *testing.T) {
	inicio := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	dentro := inicio.Add(24 * time.Hour)

	uc := relatorio.NewUseCase(fonteFixa{snapshot: expedicao.Snapshot{
		Entregas: []*entity.Entrega{
			entregaDe(1, "Carlos", entity.StatusEntregue, entity.PagamentoPix, dentro, "50.00", "7.00", ponteiro(120)),
			entregaDe(1, "Carlos", entity.StatusEntregue, entity.PagamentoDinheiro, dentro, "30.00", "6.00", ponteiro(180)),
			entregaDe(2, "Bruna", entity.StatusCancelado, entity.PagamentoPix, dentro, "25.00", "5.00", nil),
			entregaDe(2, "Bruna", entity.StatusAguardando, entity.PagamentoCartaoDebito, dentro, "40.00", "8.00", nil),
		},
	}})

	out := uc.Gerar(inicio, fim)

	assert.Equal(t, 4, out.TotalEntregas)
	assert.Equal(t, 2, out.Entregues)
	assert.Equal(t, 1, out.Cancelados)

	require.Len(t, out.PorEntregador, 2)
	// Ordenado por nome: Bruna, Carlos.
	assert.Equal(t, "Bruna", out.PorEntregador[0].Nome)
	assert.Equal(t, 2, out.PorEntregador[0].Quantidade)
	assert.True(t, out.PorEntregador[0].TotalCorrida.Equal(valor("13.00")))
	assert.Equal(t, "Carlos", out.PorEntregador[1].Nome)
	assert.True(t, out.PorEntregador[1].TotalCorrida.Equal(valor("13.00")))

	require.Len(t, out.PorFormaPagamento, 3)
	for _, forma := range out.PorFormaPagamento {
		if forma.FormaPagamento == entity.PagamentoPix {
			assert.Equal(t, 2, forma.Quantidade)
			assert.True(t, forma.TotalPedidos.Equal(valor("75.00")))
		}
	}

	require.NotNil(t, out.DuracaoMediaSegundos)
	assert.InDelta(t, 150.0, *out.DuracaoMediaSegundos, 0.001)
}

// O intervalo é meio-aberto: inclui o início, exclui o fim.
func TestGerar_IntervaloMeioAberto(t *testing.T) {
	inicio := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	uc := relatorio.NewUseCase(fonteFixa{snapshot: expedicao.Snapshot{
		Entregas: []*entity.Entrega{
			entregaDe(1, "Carlos", entity.StatusEntregue, entity.PagamentoPix, inicio, "10.00", "5.00", nil),
			entregaDe(1, "Carlos", entity.StatusEntregue, entity.PagamentoPix, fim, "10.00", "5.00", nil),
			entregaDe(1, "Carlos", entity.StatusEntregue, entity.PagamentoPix, inicio.Add(-time.Second), "10.00", "5.00", nil),
		},
	}})

	out := uc.Gerar(inicio, fim)

	assert.Equal(t, 1, out.TotalEntregas)
}

// Entregues sem duração persistida não entram na média.
func TestGerar_MediaIgnoraEntreguesSemDuracao(t *testing.T) {
	inicio := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	dentro := inicio.Add(time.Hour)

	uc := relatorio.NewUseCase(fonteFixa{snapshot: expedicao.Snapshot{
		Entregas: []*entity.Entrega{
			entregaDe(1, "Carlos", entity.StatusEntregue, entity.PagamentoPix, dentro, "10.00", "5.00", ponteiro(100)),
			entregaDe(1, "Carlos", entity.StatusEntregue, entity.PagamentoPix, dentro, "10.00", "5.00", nil),
		},
	}})

	out := uc.Gerar(inicio, fim)

	require.NotNil(t, out.DuracaoMediaSegundos)
	assert.InDelta(t, 100.0, *out.DuracaoMediaSegundos, 0.001)
}

func TestGerar_PeriodoVazio(t *testing.T) {
	inicio := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	uc := relatorio.NewUseCase(fonteFixa{snapshot: expedicao.Snapshot{}})

	out := uc.Gerar(inicio, fim)

	assert.Zero(t, out.TotalEntregas)
	assert.Nil(t, out.DuracaoMediaSegundos)
	assert.Empty(t, out.PorEntregador)
	assert.Empty(t, out.PorFormaPagamento)
}
