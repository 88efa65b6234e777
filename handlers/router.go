package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dealcraft/dealcraft-server/internal/access"
	"github.com/dealcraft/dealcraft-server/internal/bids"
	"github.com/dealcraft/dealcraft-server/internal/config"
	"github.com/dealcraft/dealcraft-server/internal/products"
	"github.com/dealcraft/dealcraft-server/internal/revocation"
	"github.com/dealcraft/dealcraft-server/internal/tokens"
	"github.com/dealcraft/dealcraft-server/internal/users"
	"github.com/dealcraft/dealcraft-server/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LivenessMessage is the body of GET /.
const LivenessMessage = "DealCraft server is running..."

var startTime = time.Now()

// ReadyCheck reports whether a dependency is usable.
type ReadyCheck func(ctx context.Context) error

// Deps are the services and settings the router wires into handlers.
type Deps struct {
	Users    *users.Service
	Products *products.Service
	Bids     *bids.Service
	Tokens   *tokens.Manager
	Revoked  *revocation.Blacklist
	Images   ImageUploader

	// Verifiers by strategy name; a strategy bound to a route but missing here fails closed.
	Verifiers   map[string]middleware.Verifier
	Auth        config.AuthConfig
	CORSOrigins []string
	Ready       map[string]ReadyCheck
}

// NewRouter builds the gin engine with every route and its configured auth policy.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.CORS(d.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, LivenessMessage)
	})

	th := NewTokenHandler(d.Tokens, d.Revoked)
	r.POST("/getToken", th.Issue)
	r.POST("/revokeToken", d.protect(config.RouteRevokeToken, th.Revoke)...)

	uh := NewUserHandler(d.Users)
	r.POST("/users", uh.Create)
	r.DELETE("/users/:id", uh.Delete)

	ph := NewProductHandler(d.Products)
	bh := NewBidHandler(d.Bids)
	r.GET("/products", ph.List)
	r.GET("/products/recent", ph.Recent)
	r.GET("/products/bids/:id", d.protect(config.RouteProductBids, bh.ForProduct)...)
	r.GET("/products/:id", ph.Get)
	r.POST("/products", ph.Create)
	r.PATCH("/products/:id", ph.Update)
	r.DELETE("/products/:id", ph.Delete)

	r.GET("/bids", d.protect(config.RouteBidsList, bh.List)...)
	r.GET("/bids/:id", bh.Get)
	r.POST("/bids", bh.Create)
	r.DELETE("/bids/:id", bh.Delete)

	r.POST("/uploads/images", d.protect(config.RouteUploadImages, NewUploadHandler(d.Images).Image)...)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", d.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterSwagger(r)

	return r
}

// protect prepends the verifier bound to route by the auth policy.
func (d Deps) protect(route string, h gin.HandlerFunc) []gin.HandlerFunc {
	strategy := d.Auth.Strategy(route)
	if strategy == access.StrategyNone {
		return []gin.HandlerFunc{h}
	}
	ver, ok := d.Verifiers[strategy]
	if !ok || ver == nil {
		ver = middleware.Unavailable(strategy + " token verification is not configured")
	}
	return []gin.HandlerFunc{middleware.AuthMiddleware(strategy, ver), h}
}

// ready returns 200 only when every registered dependency check passes.
func (d Deps) ready(c *gin.Context) {
	ready := true
	deps := map[string]bool{}
	for name, check := range d.Ready {
		ok := check(c.Request.Context()) == nil
		deps[name] = ok
		ready = ready && ok
	}
	uptime := time.Since(startTime).String()
	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
}
