package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
)

// DadosHandler serve o snapshot completo do store (visão do painel).
type DadosHandler struct {
	store *expedicao.Store
}

// NewDadosHandler constrói o handler.
func NewDadosHandler(store *expedicao.Store) *DadosHandler {
	return &DadosHandler{store: store}
}

// Get GET /api/dados — entregadores recebem só as próprias entregas.
func (h *DadosHandler) Get(c *fiber.Ctx) error {
	var entregadorID int64
	if GetCargo(c) == entity.CargoEntregador {
		entregadorID = GetEntregadorID(c)
		if entregadorID == 0 {
			// Perfil de entregador sem linha vinculada: visão vazia de entregas.
			entregadorID = -1
		}
	}
	return c.JSON(toDadosResponse(h.store.Snapshot(), entregadorID))
}

// Recarregar POST /api/dados/recarregar força um reload completo do banco.
func (h *DadosHandler) Recarregar(c *fiber.Ctx) error {
	if err := h.store.FetchAll(); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "RELOAD_FAILED", Message: err.Error()})
	}
	return h.Get(c)
}
