package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/auth"
	"github.com/apenask/gest-oentregas/internal/application/dto"
)

// AuthHandler expõe o fluxo de sessão: login, cadastro, recuperação de senha e
// logout. Todos os métodos delegam ao SessionBridge; os resultados carregam
// sucesso/mensagem em vez de estourar erro para a apresentação.
type AuthHandler struct {
	bridge *auth.SessionBridge
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(bridge *auth.SessionBridge) *AuthHandler {
	return &AuthHandler{bridge: bridge}
}

// Login godoc
// @Summary      Entrar
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, senha"
// @Success      200   {object}  dto.ResultadoLogin
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Email == "" || in.Senha == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email e senha são obrigatórios"})
	}
	out := h.bridge.Login(c.Context(), in.Email, in.Senha)
	if !out.Sucesso {
		return c.Status(fiber.StatusUnauthorized).JSON(out)
	}
	return c.JSON(out)
}

// CriarConta godoc
// @Summary      Criar conta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarContaRequest  true  "email, senha, nome_completo, cargo, codigo_acesso"
// @Success      201   {object}  dto.ResultadoMensagem
// @Failure      400   {object}  dto.ResultadoMensagem
// @Router       /api/auth/criar-conta [post]
func (h *AuthHandler) CriarConta(c *fiber.Ctx) error {
	var in dto.CriarContaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.bridge.CriarConta(c.Context(), in)
	if !out.Sucesso {
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecuperarSenha POST /api/auth/recuperar-senha
func (h *AuthHandler) RecuperarSenha(c *fiber.Ctx) error {
	var in dto.RecuperarSenhaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.bridge.RecuperarSenha(c.Context(), in.Email)
	if !out.Sucesso {
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	return c.JSON(out)
}

// RedefinirSenha POST /api/auth/redefinir-senha
func (h *AuthHandler) RedefinirSenha(c *fiber.Ctx) error {
	var in dto.RedefinirSenhaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.bridge.RedefinirSenha(c.Context(), in.Token, in.NovaSenha)
	if !out.Sucesso {
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	return c.JSON(out)
}

// ReenviarConfirmacao POST /api/auth/reenviar-confirmacao
func (h *AuthHandler) ReenviarConfirmacao(c *fiber.Ctx) error {
	var in dto.ReenviarConfirmacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out := h.bridge.ReenviarConfirmacao(c.Context(), in.Email)
	if !out.Sucesso {
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	return c.JSON(out)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.bridge.Logout(c.Context())
	return c.JSON(dto.ResultadoMensagem{Sucesso: true})
}

// Sessao GET /api/auth/sessao devolve a visão de sessão do SessionBridge.
func (h *AuthHandler) Sessao(c *fiber.Ctx) error {
	usuario := h.bridge.Usuario()
	if usuario == nil {
		return c.JSON(dto.UsuarioResponse{Autenticado: false})
	}
	return c.JSON(dto.UsuarioResponse{
		ID:           usuario.ID,
		Email:        usuario.Email,
		NomeCompleto: usuario.NomeCompleto,
		Cargo:        usuario.Cargo,
		EntregadorID: usuario.EntregadorID,
		Autenticado:  h.bridge.IsAuthenticated(),
		IsGerente:    h.bridge.IsGerente(),
		IsEntregador: h.bridge.IsEntregador(),
	})
}
