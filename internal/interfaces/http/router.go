package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apenask/gest-oentregas/internal/application/auth"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
	"github.com/apenask/gest-oentregas/internal/application/relatorio"
	"github.com/apenask/gest-oentregas/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Bridge         *auth.SessionBridge
	Store          *expedicao.Store
	RelatorioUC    *relatorio.UseCase
	PerfilRepo     repository.PerfilRepository
	EntregadorRepo repository.EntregadorRepository
	JWTSecret      string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Bridge)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/criar-conta", authHandler.CriarConta)
	authGroup.Post("/recuperar-senha", authHandler.RecuperarSenha)
	authGroup.Post("/redefinir-senha", authHandler.RedefinirSenha)
	authGroup.Post("/reenviar-confirmacao", authHandler.ReenviarConfirmacao)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/sessao", authHandler.Sessao)

	// Rotas protegidas (Bearer Token + perfil resolvido)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		PerfilMiddleware(deps.PerfilRepo, deps.EntregadorRepo),
	)

	// Snapshot do painel (gerente e entregador; entregador recebe visão filtrada)
	dadosHandler := NewDadosHandler(deps.Store)
	dados := protected.Group("/dados")
	dados.Get("/", dadosHandler.Get)
	dados.Post("/recarregar", dadosHandler.Recarregar)

	// Entregas (listar e mover status: ambos os cargos; o resto: gerente)
	entregas := protected.Group("/entregas")
	entregaHandler := NewEntregaHandler(deps.Store)
	entregas.Get("/", entregaHandler.List)
	entregas.Patch("/:id/status", entregaHandler.UpdateStatus)
	entregas.Post("/", RequireGerente(), entregaHandler.Create)
	entregas.Put("/:id", RequireGerente(), entregaHandler.Update)
	entregas.Delete("/:id", RequireGerente(), entregaHandler.Delete)

	// Clientes (gerente)
	clientes := protected.Group("/clientes", RequireGerente())
	clienteHandler := NewClienteHandler(deps.Store)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/busca", clienteHandler.Buscar)
	clientes.Post("/", clienteHandler.Create)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Delete)

	// Entregadores (gerente)
	entregadores := protected.Group("/entregadores", RequireGerente())
	entregadorHandler := NewEntregadorHandler(deps.Store)
	entregadores.Get("/", entregadorHandler.List)
	entregadores.Post("/", entregadorHandler.Create)
	entregadores.Put("/:id", entregadorHandler.Update)
	entregadores.Delete("/:id", entregadorHandler.Delete)

	// Relatórios (gerente)
	relatorios := protected.Group("/relatorios", RequireGerente())
	relatorioHandler := NewRelatorioHandler(deps.RelatorioUC)
	relatorios.Get("/", relatorioHandler.Gerar)
}
