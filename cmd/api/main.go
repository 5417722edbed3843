package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/apenask/gest-oentregas/internal/application/auth"
	"github.com/apenask/gest-oentregas/internal/application/expedicao"
	"github.com/apenask/gest-oentregas/internal/application/relatorio"
	"github.com/apenask/gest-oentregas/internal/infrastructure/gotrue"
	"github.com/apenask/gest-oentregas/internal/infrastructure/postgres"
	httpRouter "github.com/apenask/gest-oentregas/internal/interfaces/http"
	"github.com/apenask/gest-oentregas/pkg/config"
	"github.com/apenask/gest-oentregas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	perfilRepo := postgres.NewPerfilRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	entregadorRepo := postgres.NewEntregadorRepository(pool)
	entregaRepo := postgres.NewEntregaRepository(pool)

	provedor := gotrue.New(cfg.Auth.BaseURL, cfg.Auth.AnonKey)
	bridge := auth.NewSessionBridge(provedor, perfilRepo, entregadorRepo, auth.Config{
		CodigoGerente:    cfg.Auth.CodigoGerente,
		ResetRedirectURL: cfg.Auth.ResetRedirectURL,
	}, log)
	bridge.Iniciar(ctx)
	defer bridge.Fechar()

	store := expedicao.NewStore(entregaRepo, clienteRepo, entregadorRepo, log)
	if err := store.FetchAll(); err != nil {
		// Sobe mesmo assim: o painel pode recarregar quando o banco voltar.
		log.Error().Err(err).Msg("carga inicial dos dados")
	}

	relatorioUC := relatorio.NewUseCase(store)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestão de Entregas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Bridge:         bridge,
		Store:          store,
		RelatorioUC:    relatorioUC,
		PerfilRepo:     perfilRepo,
		EntregadorRepo: entregadorRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
