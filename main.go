package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"tutly_backend/internals/configs"
	database "tutly_backend/internals/databases"
	eventService "tutly_backend/internals/features/grading/events/service"
	helper "tutly_backend/internals/helpers"
	middlewares "tutly_backend/internals/middlewares"
	authMiddleware "tutly_backend/internals/middlewares/auth"
	routes "tutly_backend/internals/route"
	"tutly_backend/internals/seeds"
	"tutly_backend/internals/store"
	"tutly_backend/internals/store/gormstore"
	"tutly_backend/internals/store/memstore"
)

func main() {
	var (
		seedDir    = flag.String("seed", "", "direktori JSON seed (users/courses/classes/enrollments)")
		inMemory   = flag.Bool("memory", false, "pakai store in-memory, tanpa Postgres")
		migrate    = flag.Bool("migrate", false, "jalankan AutoMigrate walau DB_AUTO_MIGRATE=false")
		issueToken = flag.String("issue-token", "", "cetak access token untuk username lalu keluar")
	)
	flag.Parse()

	cfg := configs.LoadEnv()

	// 🔌 store: Postgres (default) atau memory untuk demo lokal
	var (
		st   store.Store
		ping func() error
	)
	if *inMemory {
		log.Println("[INFO] Store in-memory aktif")
		st = memstore.New()
	} else {
		database.ConnectDB(cfg)
		database.TunePool()
		if cfg.DBAutoMigrate || *migrate {
			if err := database.AutoMigrate(database.DB); err != nil {
				log.Fatalf("❌ AutoMigrate gagal: %v", err)
			}
		}
		database.WarmUpQueries()
		st = gormstore.New(database.DB)
		ping = database.Ping
	}

	if *seedDir != "" {
		if err := seeds.RunAllSeeds(context.Background(), st, *seedDir); err != nil {
			log.Fatalf("❌ Seed gagal: %v", err)
		}
	}

	if *issueToken != "" {
		u, err := st.GetUserByUsername(context.Background(), *issueToken)
		if err != nil {
			log.Fatalf("❌ user %s: %v", *issueToken, err)
		}
		tok, err := authMiddleware.IssueToken(cfg.JWTSecret, u, 24*time.Hour)
		if err != nil {
			log.Fatalf("❌ sign token: %v", err)
		}
		fmt.Println(tok)
		database.Close()
		return
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg)
	routes.SetupRoutes(app, st, cfg, ping)

	// ⏱ retention grading_events setelah store siap
	reaper, err := eventService.StartRetentionCron(st, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: cron → HTTP → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-reaper.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
}
