package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
)

// EntregadorHandler trata a gestão de entregadores (gerente). A criação real de
// um entregador acontece no cadastro de conta; o Create aqui é um no-op que
// mantém o contrato do formulário.
type EntregadorHandler struct {
	store *expedicao.Store
}

// NewEntregadorHandler constrói o handler.
func NewEntregadorHandler(store *expedicao.Store) *EntregadorHandler {
	return &EntregadorHandler{store: store}
}

// List GET /api/entregadores — somente os ativos.
func (h *EntregadorHandler) List(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	out := make([]dto.EntregadorResponse, 0, len(snapshot.Entregadores))
	for _, e := range snapshot.Entregadores {
		out = append(out, toEntregadorResponse(e))
	}
	return c.JSON(out)
}

// Create POST /api/entregadores
func (h *EntregadorHandler) Create(c *fiber.Ctx) error {
	var in dto.EntregadorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.store.CreateEntregador(in.Nome, in.Email)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/entregadores/:id — só o nome é persistido.
func (h *EntregadorHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.EntregadorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.store.UpdateEntregador(id, in.Nome, in.Email)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.JSON(out)
}

// Delete DELETE /api/entregadores/:id — desativação lógica; recusa quando há
// entregas pendentes atribuídas.
func (h *EntregadorHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out := h.store.DeleteEntregador(id)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.JSON(out)
}
