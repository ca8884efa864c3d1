package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessgame-backend/internal/config"
	"github.com/benbeisheim/chessgame-backend/internal/controller"
	"github.com/benbeisheim/chessgame-backend/internal/middleware"
	"github.com/benbeisheim/chessgame-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/sync/errgroup"
)

func newApp(cfg config.Config, gameService *service.GameService) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Get("/ws/game/:gameId",
		middleware.EnsurePlayerID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  cfg.WSReadBuffer,
			WriteBufferSize: cfg.WSWriteBuffer,
			Origins:         cfg.AllowOrigins,
		}),
	)

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameController.Register(api.Group("/game"))

	return app
}

func run(ctx context.Context, cfg config.Config) error {
	gameService := service.NewGameService(service.NewGameManager())
	app := newApp(cfg, gameService)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", cfg.Addr)
		return app.Listen(cfg.Addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	})
	return g.Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}
