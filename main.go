package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dealcraft/dealcraft-server/handlers"
	"github.com/dealcraft/dealcraft-server/internal/access"
	"github.com/dealcraft/dealcraft-server/internal/bids"
	"github.com/dealcraft/dealcraft-server/internal/config"
	"github.com/dealcraft/dealcraft-server/internal/database"
	"github.com/dealcraft/dealcraft-server/internal/oidc"
	"github.com/dealcraft/dealcraft-server/internal/products"
	"github.com/dealcraft/dealcraft-server/internal/revocation"
	"github.com/dealcraft/dealcraft-server/internal/storage"
	"github.com/dealcraft/dealcraft-server/internal/store"
	"github.com/dealcraft/dealcraft-server/internal/tokens"
	"github.com/dealcraft/dealcraft-server/internal/users"
	"github.com/dealcraft/dealcraft-server/pkg/logger"
	"github.com/dealcraft/dealcraft-server/pkg/metrics"
	"github.com/dealcraft/dealcraft-server/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)
	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Infof("config loaded: backend=%s redis=%v minio=%v policies=%v",
		cfg.MongoDB.Backend, cfg.Redis.Addr() != "", cfg.MinIO.Endpoint != "", cfg.Auth.Policies)

	ctx := context.Background()
	ready := map[string]handlers.ReadyCheck{}

	usersStore, productsStore, bidsStore, closeStore, err := openStores(ctx, cfg, ready)
	if err != nil {
		logger.Fatalf("failed to open storage: %v", err)
	}
	defer closeStore()

	var redisClient *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rc := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rc.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s), token revocation disabled: %v", addr, err)
			_ = rc.Close()
		} else {
			logger.Infof("connected to Redis at %s for token revocation", addr)
			redisClient = rc
			defer rc.Close()
			ready["redis"] = func(ctx context.Context) error { return rc.Ping(ctx).Err() }
		}
	}
	blacklist := revocation.NewBlacklist(redisClient)

	if cfg.JWT.Secret == "" && cfg.Auth.Uses(access.StrategyLocal) {
		logger.Warn("JWT_SECRET is not set; local tokens can be neither issued nor verified")
	}
	tokenManager := tokens.NewManager(cfg.JWT.Secret, cfg.JWT.TTL, blacklist)

	verifiers := map[string]middleware.Verifier{}
	if cfg.JWT.Secret != "" {
		verifiers[access.StrategyLocal] = tokenManager
	}
	if ver := providerVerifier(ctx, cfg.Provider); ver != nil {
		verifiers[access.StrategyProvider] = ver
	} else if cfg.Auth.Uses(access.StrategyProvider) {
		logger.Warn("identity provider is not configured; provider-protected routes will reject every request")
	}

	var images handlers.ImageUploader
	if cfg.MinIO.Endpoint != "" {
		mc, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("MinIO unavailable, image uploads disabled: %v", err)
		} else {
			images = mc
			ready["minio"] = mc.Ping
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	router := handlers.NewRouter(handlers.Deps{
		Users:       users.NewService(usersStore),
		Products:    products.NewService(productsStore),
		Bids:        bids.NewService(bidsStore),
		Tokens:      tokenManager,
		Revoked:     blacklist,
		Images:      images,
		Verifiers:   verifiers,
		Auth:        cfg.Auth,
		CORSOrigins: cfg.Server.CORSOrigins,
		Ready:       ready,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("DealCraft server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exiting")
}

// openStores connects once to MongoDB, or builds in-memory stores when configured so.
func openStores(ctx context.Context, cfg *config.Config, ready map[string]handlers.ReadyCheck) (u, p, b store.Store, closeFn func(), err error) {
	if cfg.MongoDB.Backend == config.BackendMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		return store.NewMemory(), store.NewMemory(), store.NewMemory(), func() {}, nil
	}
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger.Infof("connected to MongoDB database %s", cfg.MongoDB.Database)
	ready["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	cols := database.Open(client, cfg.MongoDB.Database)
	closeFn = func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
	return store.NewMongo(cols.Users), store.NewMongo(cols.Products), store.NewMongo(cols.Bids), closeFn, nil
}

// providerVerifier returns the identity-provider verifier, or nil when none is configured.
// A Firebase project takes precedence over a generic OIDC issuer.
func providerVerifier(ctx context.Context, pc config.ProviderConfig) middleware.Verifier {
	projectID := pc.FirebaseProjectID
	if projectID == "" && pc.FirebaseServiceAccount != "" {
		id, err := oidc.ProjectIDFromServiceAccount(pc.FirebaseServiceAccount)
		if err != nil {
			logger.Warnf("cannot read Firebase project from service account: %v", err)
		}
		projectID = id
	}

	issuer, clientID := pc.Issuer, pc.ClientID
	if projectID != "" {
		issuer, clientID = oidc.FirebaseIssuer(projectID), projectID
	}
	if issuer != "" && clientID != "" {
		ver, err := oidc.NewVerifier(ctx, issuer, clientID)
		if err == nil {
			logger.Infof("identity provider verifier ready for issuer %s", issuer)
			return ver
		}
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	}

	// Optional insecure verifier for integration tests: parse token claims without signature verification
	if pc.AllowInsecure {
		logger.Warn("enabling insecure identity verifier (integration mode)")
		return oidc.NewInsecureVerifier()
	}
	return nil
}
