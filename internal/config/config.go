package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dealcraft/dealcraft-server/internal/access"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Route names used as AUTH_POLICY keys.
const (
	RouteBidsList     = "bids.list"
	RouteProductBids  = "products.bids"
	RouteUploadImages = "uploads.images"
	RouteRevokeToken  = "tokens.revoke"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Provider ProviderConfig
	JWT      JWTConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	LogLevel     string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	Backend  string
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

// ProviderConfig configures the identity-provider token strategy.
// A Firebase project id takes precedence over a generic OIDC issuer.
type ProviderConfig struct {
	FirebaseProjectID      string
	FirebaseServiceAccount string
	Issuer                 string
	ClientID               string
	AllowInsecure          bool
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// AuthConfig maps route names to the strategy protecting them.
type AuthConfig struct {
	Policies map[string]string
}

// Strategy returns the strategy bound to route, access.StrategyNone when unset.
func (a AuthConfig) Strategy(route string) string {
	if s, ok := a.Policies[route]; ok {
		return s
	}
	return access.StrategyNone
}

// Uses reports whether any route is bound to strategy.
func (a AuthConfig) Uses(strategy string) bool {
	for _, s := range a.Policies {
		if s == strategy {
			return true
		}
	}
	return false
}

// DefaultPolicies protects the personal bid listing with local tokens and the
// per-product listing with provider tokens.
func DefaultPolicies() map[string]string {
	return map[string]string{
		RouteBidsList:     access.StrategyLocal,
		RouteProductBids:  access.StrategyProvider,
		RouteUploadImages: access.StrategyProvider,
		RouteRevokeToken:  access.StrategyLocal,
	}
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("STORAGE_BACKEND", BackendMongo)
	v.SetDefault("MONGODB_DATABASE", "deal_craft_db")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("DB_APP_NAME", "Cluster0")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("MINIO_BUCKET", "dealcraft")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			LogLevel:     v.GetString("LOG_LEVEL"),
			CORSOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			Backend:  strings.ToLower(v.GetString("STORAGE_BACKEND")),
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Provider: ProviderConfig{
			FirebaseProjectID:      v.GetString("FIREBASE_PROJECT_ID"),
			FirebaseServiceAccount: v.GetString("FIREBASE_SERVICE_ACCOUNT"),
			Issuer:                 v.GetString("OIDC_ISSUER"),
			ClientID:               v.GetString("OIDC_CLIENT_ID"),
			AllowInsecure:          v.GetBool("ALLOW_INSECURE_TOKEN"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
	}

	policies, err := ParsePolicies(v.GetString("AUTH_POLICY"))
	if err != nil {
		return nil, err
	}
	cfg.Auth.Policies = policies

	switch cfg.MongoDB.Backend {
	case BackendMemory:
	case BackendMongo:
		if cfg.MongoDB.URI == "" {
			cfg.MongoDB.URI = buildMongoURI(v.GetString("DB_USER"), v.GetString("DB_PASS"), v.GetString("DB_CLUSTER"), v.GetString("DB_APP_NAME"))
		}
		if cfg.MongoDB.URI == "" {
			return nil, errors.New("MONGODB_URI or DB_USER/DB_PASS/DB_CLUSTER must be set")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.MongoDB.Backend)
	}

	return cfg, nil
}

// ParsePolicies merges a "route=strategy,route=strategy" list over DefaultPolicies.
func ParsePolicies(raw string) (map[string]string, error) {
	policies := DefaultPolicies()
	for _, item := range splitList(raw) {
		route, strategy, ok := strings.Cut(item, "=")
		route = strings.TrimSpace(route)
		strategy = strings.ToLower(strings.TrimSpace(strategy))
		if !ok || route == "" {
			return nil, fmt.Errorf("invalid AUTH_POLICY entry %q", item)
		}
		switch strategy {
		case access.StrategyNone, access.StrategyLocal, access.StrategyProvider:
		default:
			return nil, fmt.Errorf("invalid strategy %q for route %s", strategy, route)
		}
		policies[route] = strategy
	}
	return policies, nil
}

func buildMongoURI(user, pass, cluster, appName string) string {
	if user == "" || pass == "" || cluster == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     cluster,
		Path:     "/",
		RawQuery: url.Values{"retryWrites": {"true"}, "w": {"majority"}, "appName": {appName}}.Encode(),
	}
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
