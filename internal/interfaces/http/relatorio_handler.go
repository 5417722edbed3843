package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/application/relatorio"
)

// RelatorioHandler serve os relatórios gerenciais (gerente).
type RelatorioHandler struct {
	uc *relatorio.UseCase
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *relatorio.UseCase) *RelatorioHandler {
	return &RelatorioHandler{uc: uc}
}

// Gerar GET /api/relatorios?inicio=2026-08-01T00:00:00Z&fim=2026-09-01T00:00:00Z
// Sem parâmetros, cobre os últimos 30 dias.
func (h *RelatorioHandler) Gerar(c *fiber.Ctx) error {
	fim := time.Now()
	inicio := fim.AddDate(0, 0, -30)

	if q := c.Query("inicio"); q != "" {
		t, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "inicio deve ser RFC3339"})
		}
		inicio = t
	}
	if q := c.Query("fim"); q != "" {
		t, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "fim deve ser RFC3339"})
		}
		fim = t
	}
	if !inicio.Before(fim) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "inicio deve ser anterior a fim"})
	}

	return c.JSON(h.uc.Gerar(inicio, fim))
}
