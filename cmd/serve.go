package main

import (
	"context"
	"os/signal"
	"syscall"

	"planify-backend/internal/actions"
	"planify-backend/internal/api"
	"planify-backend/internal/api/routes"
	v1 "planify-backend/internal/api/routes/v1"
	"planify-backend/internal/audit"
	"planify-backend/internal/auth"
	"planify-backend/internal/billing"
	"planify-backend/internal/cache"
	"planify-backend/internal/config"
	"planify-backend/internal/libraries"
	"planify-backend/internal/quota"
	"planify-backend/internal/repo"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd(load func() (*config.Configuration, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)

	if err := config.MigrateAllModels(db, cfg.AutoMigrate); err != nil {
		return err
	}

	rc, err := config.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	hub := libraries.NewHub()
	go hub.Run(ctx)

	svc, boards := newService(db, cfg, rc, hub)

	app := api.NewServer(cfg)
	routes.Register(app, v1.Deps{
		Service:  svc,
		Verifier: verifier,
		Hub:      hub,
		Boards:   boards,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()
	return api.StartServer(app, cfg.Port)
}

func newVerifier(opts config.AuthOptions) (*auth.Verifier, error) {
	if opts.LocalSecret != "" {
		log.Warn("AUTH_LOCAL_SECRET set, accepting HS256 tokens")
		return auth.NewVerifier(nil, []byte(opts.LocalSecret), opts.Audience, opts.Issuer), nil
	}
	return auth.NewJWKSVerifier(opts.JWKSURL, opts.Audience, opts.Issuer)
}

// newService wires repositories, the cached board reads and the invalidation
// chain behind the commands.
func newService(db *gorm.DB, cfg *config.Configuration, rc *redis.Client, hub *libraries.Hub) (*actions.Service, repo.BoardRepoInterface) {
	boardRepo := repo.NewBoardRepository(db)
	logRepo := repo.NewAuditLogRepository(db)

	views := cache.NewBoardViews(boardRepo, rc, cfg.BoardCacheTTL)
	svc := &actions.Service{
		Boards:  views,
		Lists:   repo.NewListRepository(db),
		Cards:   repo.NewCardRepository(db),
		Logs:    logRepo,
		Quota:   quota.NewLedger(repo.NewOrgLimitRepository(db), cfg.MaxFreeBoards),
		Billing: billing.NewService(repo.NewSubscriptionRepository(db), cfg.SubscriptionGrace),
		Audit:   audit.NewRecorder(logRepo),
		Cache:   cache.Chain{views, hub},
	}
	return svc, boardRepo
}
