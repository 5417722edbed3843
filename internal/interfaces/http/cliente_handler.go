package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
)

// ClienteHandler trata o CRUD de clientes e a busca sem acentos (gerente).
type ClienteHandler struct {
	store *expedicao.Store
}

// NewClienteHandler constrói o handler.
func NewClienteHandler(store *expedicao.Store) *ClienteHandler {
	return &ClienteHandler{store: store}
}

// List GET /api/clientes
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	out := make([]dto.ClienteResponse, 0, len(snapshot.Clientes))
	for _, cliente := range snapshot.Clientes {
		out = append(out, toClienteResponse(cliente))
	}
	return c.JSON(out)
}

// Buscar GET /api/clientes/busca?q=jose — ignora maiúsculas e acentos.
func (h *ClienteHandler) Buscar(c *fiber.Ctx) error {
	achados := h.store.BuscarClientes(c.Query("q"))
	out := make([]dto.ClienteResponse, 0, len(achados))
	for _, cliente := range achados {
		out = append(out, toClienteResponse(cliente))
	}
	return c.JSON(out)
}

// Create POST /api/clientes
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.store.CreateCliente(in)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/clientes/:id
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.store.UpdateCliente(id, in)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.JSON(out)
}

// Delete DELETE /api/clientes/:id
func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out := h.store.DeleteCliente(id)
	if !out.Sucesso {
		return respostaFalha(c, out)
	}
	return c.JSON(out)
}
