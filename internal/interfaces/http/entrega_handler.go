package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
	"github.com/apenask/gest-oentregas/internal/domain"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
)

// EntregaHandler trata as rotas de entregas. Gerentes têm acesso completo;
// entregadores só enxergam e movem o status das próprias entregas.
type EntregaHandler struct {
	store *expedicao.Store
}

// NewEntregaHandler constrói o handler.
func NewEntregaHandler(store *expedicao.Store) *EntregaHandler {
	return &EntregaHandler{store: store}
}

// List GET /api/entregas — entregadores recebem só as próprias.
func (h *EntregaHandler) List(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	var escopo int64
	if GetCargo(c) == entity.CargoEntregador {
		escopo = GetEntregadorID(c)
		if escopo == 0 {
			escopo = -1
		}
	}
	out := make([]dto.EntregaResponse, 0, len(snapshot.Entregas))
	for _, e := range snapshot.Entregas {
		if escopo != 0 && e.EntregadorID != escopo {
			continue
		}
		out = append(out, toEntregaResponse(e))
	}
	return c.JSON(out)
}

// Create POST /api/entregas (gerente)
func (h *EntregaHandler) Create(c *fiber.Ctx) error {
	var in dto.NovaEntregaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.store.CreateEntrega(in)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/entregas/:id (gerente)
func (h *EntregaHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.EditarEntregaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	in.ID = id
	out := h.store.UpdateEntrega(in)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/entregas/:id/status — gerente move qualquer entrega;
// entregador só a que está atribuída a ele.
func (h *EntregaHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.AtualizarStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	if GetCargo(c) == entity.CargoEntregador {
		if !h.pertenceAoEntregador(id, GetEntregadorID(c)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "a entrega não está atribuída a este entregador"})
		}
	}

	out := h.store.UpdateEntregaStatus(id, in.Status, in.DataHora)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.JSON(out)
}

// Delete DELETE /api/entregas/:id (gerente)
func (h *EntregaHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out := h.store.DeleteEntrega(id)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.JSON(out)
}

func (h *EntregaHandler) pertenceAoEntregador(entregaID, entregadorID int64) bool {
	if entregadorID == 0 {
		return false
	}
	for _, e := range h.store.Snapshot().Entregas {
		if e.ID == entregaID {
			return e.EntregadorID == entregadorID
		}
	}
	return false
}

// respostaFalha mapeia o erro de um Resultado para o status HTTP.
func respostaFalha(c *fiber.Ctx, out dto.Resultado) error {
	err := out.Erro
	switch {
	case err == nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro desconhecido"})
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrEntregadorComPendencias):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PENDING_DELIVERIES", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
