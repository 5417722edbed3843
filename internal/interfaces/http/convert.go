package http

import (
	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
)

func toClienteResponse(c *entity.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID,
		Nome:      c.NomeCompleto,
		RuaNumero: c.RuaNumero,
		Bairro:    c.Bairro,
		Telefone:  c.Telefone,
	}
}

func toEntregadorResponse(e *entity.Entregador) dto.EntregadorResponse {
	return dto.EntregadorResponse{ID: e.ID, Nome: e.NomeCompleto}
}

func toEntregaResponse(e *entity.Entrega) dto.EntregaResponse {
	out := dto.EntregaResponse{
		ID:                     e.ID,
		NumeroPedido:           e.NumeroPedido,
		ClienteID:              e.ClienteID,
		EntregadorID:           e.EntregadorID,
		NomeEntregador:         e.NomeEntregador,
		FormaPagamento:         e.FormaPagamento,
		ValorPedido:            e.ValorPedido,
		ValorCorrida:           e.ValorCorrida,
		Status:                 e.Status,
		DataHoraPedido:         e.DataHoraPedido,
		DataHoraSaida:          e.DataHoraSaida,
		DataHoraEntrega:        e.DataHoraEntrega,
		DuracaoEntregaSegundos: e.DuracaoEntregaSegundos,
	}
	if e.Cliente != nil {
		cliente := toClienteResponse(e.Cliente)
		out.Cliente = &cliente
	}
	return out
}

// toDadosResponse monta o snapshot de apresentação. Quando entregadorID != 0,
// as entregas são filtradas para o entregador (visão de entregador); clientes e
// entregadores saem completos em ambos os casos.
func toDadosResponse(snapshot expedicao.Snapshot, entregadorID int64) dto.DadosResponse {
	out := dto.DadosResponse{
		Entregas:     make([]dto.EntregaResponse, 0, len(snapshot.Entregas)),
		Clientes:     make([]dto.ClienteResponse, 0, len(snapshot.Clientes)),
		Entregadores: make([]dto.EntregadorResponse, 0, len(snapshot.Entregadores)),
		AtualizadoEm: snapshot.AtualizadoEm,
	}
	for _, e := range snapshot.Entregas {
		if entregadorID != 0 && e.EntregadorID != entregadorID {
			continue
		}
		out.Entregas = append(out.Entregas, toEntregaResponse(e))
	}
	for _, c := range snapshot.Clientes {
		out.Clientes = append(out.Clientes, toClienteResponse(c))
	}
	for _, e := range snapshot.Entregadores {
		out.Entregadores = append(out.Entregadores, toEntregadorResponse(e))
	}
	return out
}
