package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
	"github.com/apenask/gest-oentregas/internal/domain/repository"
	"github.com/apenask/gest-oentregas/pkg/jwt"
)

// Locals keys preenchidos pelos middlewares.
const (
	LocalUserID       = "user_id"
	LocalEmail        = "email"
	LocalCargo        = "cargo"
	LocalEntregadorID = "entregador_id"
)

// AuthMiddleware valida o Bearer Token (access token do provedor, HS256) e
// extrai identidade e email para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// PerfilMiddleware resolve o perfil da identidade autenticada. Sessão válida
// sem perfil é tratada como não autenticada, igual ao SessionBridge. Para
// entregadores, resolve também o id da linha em entregadores.
func PerfilMiddleware(perfis repository.PerfilRepository, entregadores repository.EntregadorRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		}
		perfil, err := perfis.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if perfil == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "PROFILE_NOT_FOUND", Message: "perfil não encontrado para a identidade"})
		}
		c.Locals(LocalCargo, perfil.Cargo)

		if perfil.Cargo == entity.CargoEntregador {
			entregador, err := entregadores.GetByUsuarioID(userID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			}
			if entregador != nil {
				c.Locals(LocalEntregadorID, entregador.ID)
			}
		}
		return c.Next()
	}
}

// RequireGerente autoriza somente perfis com cargo gerente.
func RequireGerente() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCargo(c) != entity.CargoGerente {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "apenas gerentes podem executar esta operação"})
		}
		return c.Next()
	}
}

// GetUserID devolve o id da identidade do contexto (após AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devolve o email do contexto (após AuthMiddleware).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCargo devolve o cargo do contexto (após PerfilMiddleware).
func GetCargo(c *fiber.Ctx) string {
	v := c.Locals(LocalCargo)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEntregadorID devolve o id do entregador vinculado, ou 0 se não houver.
func GetEntregadorID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalEntregadorID)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}
