package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jobdeskhq/jobdesk/modules/admin"
	"github.com/jobdeskhq/jobdesk/modules/applications"
	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/modules/billing"
	"github.com/jobdeskhq/jobdesk/modules/jobs"
	"github.com/jobdeskhq/jobdesk/modules/messaging"
	"github.com/jobdeskhq/jobdesk/modules/profiles"
	"github.com/jobdeskhq/jobdesk/modules/recommend"
	"github.com/jobdeskhq/jobdesk/pkg/config"
	"github.com/jobdeskhq/jobdesk/pkg/httpserver"
	"github.com/jobdeskhq/jobdesk/pkg/jwt"
	"github.com/jobdeskhq/jobdesk/pkg/logger"
	"github.com/jobdeskhq/jobdesk/pkg/mongo"
)

type appConfig struct {
	Logger    logger.Config
	HTTP      httpserver.Config
	Mongo     mongo.Config
	Auth      auth.Config
	Billing   billing.Config
	Recommend recommend.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger, "jobdesk")

	ctx := context.Background()
	db, err := mongo.Database(ctx, cfg.Mongo)
	if err != nil {
		log.Error("mongodb connection failed", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := jwt.New(cfg.Auth.SigningKey)
	if err != nil {
		log.Error("token service init failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Stores.
	accountStore := auth.NewMongoAccountStore(db)
	sessionStore := auth.NewMongoSessionStore(db)
	entitlementStore := billing.NewMongoEntitlementStore(db)
	orderStore := billing.NewMongoOrderStore(db)
	jobStore := jobs.NewMongoStore(db)
	profileStore := profiles.NewMongoStore(db)
	applicationStore := applications.NewMongoStore(db)
	messageStore := messaging.NewMongoStore(db)

	// Billing.
	var provider billing.Provider
	if cfg.Billing.Configured() {
		provider = billing.NewRazorpayProvider(cfg.Billing.RazorpayKeyID, cfg.Billing.RazorpayKeySecret)
	} else {
		log.Warn("payment provider credentials missing, billing runs in demo mode")
	}
	engine := billing.NewEngine(entitlementStore, orderStore, provider,
		cfg.Billing.RazorpayKeyID, cfg.Billing.RazorpayKeySecret,
		billing.WithEngineLogger(log),
		billing.WithActivationWindow(cfg.Billing.ActivationWindow),
		billing.WithProviderTimeout(cfg.Billing.ProviderTimeout),
	)
	gate := billing.NewQuotaGate(entitlementStore)

	// Services.
	profileSvc := profiles.NewService(profileStore)
	resolver := auth.NewResolver(tokens, sessionStore, accountStore)
	authSvc := auth.NewService(accountStore, sessionStore, tokens,
		auth.NewHTTPExchanger(cfg.Auth.ExchangeURL, cfg.Auth.ExchangeTimeout),
		auth.WithLogger(log),
		auth.WithTokenTTL(cfg.Auth.TokenTTL),
		auth.WithSessionTTL(cfg.Auth.SessionTTL),
		auth.WithRegisterHook(func(ctx context.Context, account *auth.Account) error {
			if err := profileSvc.EnsureDefaults(ctx, account.ID, string(account.Role)); err != nil {
				return err
			}
			if account.Role != auth.RoleRecruiter {
				return nil
			}
			return entitlementStore.Create(ctx, &billing.Entitlement{
				AccountID: account.ID,
				Plan:      billing.PlanFree,
				Status:    billing.StatusInactive,
			})
		}),
	)
	jobSvc := jobs.NewService(jobStore, gate, jobs.WithLogger(log))
	applicationSvc := applications.NewService(applicationStore, jobStore, profileStore,
		applications.WithLogger(log))
	messagingSvc := messaging.NewService(messageStore, accountStore)
	adminSvc := admin.NewService(accountStore, jobStore, jobSvc, applicationStore,
		admin.WithLogger(log))

	var ranker recommend.Ranker
	if cfg.Recommend.Configured() {
		ranker = recommend.NewOpenAIRanker(cfg.Recommend.OpenAIAPIKey, cfg.Recommend.Model)
	}
	recommendSvc := recommend.NewService(jobStore, profileStore, ranker,
		recommend.WithLogger(log))

	// HTTP surface.
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", auth.Router(authSvc, resolver))
		r.Mount("/profile", profiles.Router(profileSvc, resolver))
		r.Mount("/jobs", jobs.Router(jobSvc, resolver))
		r.Mount("/applications", applications.Router(applicationSvc, resolver))
		r.Mount("/messages", messaging.Router(messagingSvc, resolver))
		r.Mount("/subscriptions", billing.Router(engine, resolver))
		r.Mount("/ai", recommend.Router(recommendSvc, resolver))
		r.Mount("/admin", admin.Router(adminSvc, resolver))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
