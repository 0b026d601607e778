package router

import (
	"net/http"

	"github.com/canteen/client/internal/infrastructure/logger"
	"github.com/canteen/client/internal/interfaces/http/handler"
	"github.com/canteen/client/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts domain groups under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware applied to every API route
func (r *Router) Use(mw ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, mw...)
	return r
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup is a prefix with its own middleware and routes
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the kiosk API handlers mounted by NewEngine
type Handlers struct {
	Menu      *handler.MenuHandler
	Cart      *handler.CartHandler
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Admin     *handler.AdminHandler
	Recommend *handler.RecommendHandler
	System    *handler.SystemHandler
}

// Guards gate the customer and admin route groups
type Guards struct {
	Customer func() error
	Admin    func() error
}

// Config configures the kiosk engine
type Config struct {
	Logger         *zap.Logger
	TrustedProxies []string
	Tracing        middleware.TracingConfig
	// Registry enables request metrics and /metrics when set
	Registry *prometheus.Registry
}

// NewEngine builds the kiosk HTTP engine with its middleware stack and
// every route.
func NewEngine(cfg Config, h Handlers, guards Guards) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	// Order matters: the request ID must exist before the logger and
	// tracer read it.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Tracing)...)
	engine.Use(logger.GinMiddleware(log))

	if cfg.Registry != nil {
		metrics, err := middleware.NewHTTPMetrics(cfg.Registry)
		if err != nil {
			return nil, err
		}
		engine.Use(metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, g := range domainGroups(h, guards) {
		r.Register(g)
	}
	r.Setup()
	return engine, nil
}

func guard(check func() error) []gin.HandlerFunc {
	if check == nil {
		return nil
	}
	return []gin.HandlerFunc{middleware.Guard(check)}
}

func domainGroups(h Handlers, guards Guards) []*DomainGroup {
	var groups []*DomainGroup

	if h.Menu != nil {
		menuRoutes := NewDomainGroup("menu", "/menu")
		menuRoutes.GET("", h.Menu.List)
		menuRoutes.GET("/special", h.Menu.Special)
		menuRoutes.POST("/refresh", h.Menu.Refresh)
		menuRoutes.GET("/home", h.Menu.Home)
		groups = append(groups, menuRoutes)
	}

	if h.Cart != nil {
		cartRoutes := NewDomainGroup("cart", "/cart")
		cartRoutes.GET("", h.Cart.Get)
		cartRoutes.DELETE("", h.Cart.Clear)
		cartRoutes.POST("/items", h.Cart.Add)
		cartRoutes.POST("/items/:id/decrement", h.Cart.Decrement)
		cartRoutes.PUT("/items/:id/notes", h.Cart.UpdateNotes)
		cartRoutes.DELETE("/items/:id", h.Cart.Delete)
		groups = append(groups, cartRoutes)
	}

	if h.Auth != nil {
		authRoutes := NewDomainGroup("auth", "/auth")
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.POST("/logout", h.Auth.Logout)
		authRoutes.GET("/session", h.Auth.Session)
		groups = append(groups, authRoutes)
	}

	if h.Order != nil {
		orderRoutes := NewDomainGroup("orders", "/orders").Use(guard(guards.Customer)...)
		orderRoutes.POST("", h.Order.Place)
		orderRoutes.GET("", h.Order.List)
		orderRoutes.GET("/eligibility", h.Order.Eligibility)
		orderRoutes.GET("/:id", h.Order.Get)
		groups = append(groups, orderRoutes)
	}

	if h.Admin != nil {
		adminRoutes := NewDomainGroup("admin", "/admin").Use(guard(guards.Admin)...)
		adminRoutes.GET("/board", h.Admin.Board)
		adminRoutes.POST("/orders/:id/advance", h.Admin.Advance)
		adminRoutes.GET("/kitchen", h.Admin.Kitchen)
		adminRoutes.PUT("/kitchen/:id/status", h.Admin.SetKitchenStatus)
		adminRoutes.GET("/analytics", h.Admin.Analytics)
		groups = append(groups, adminRoutes)
	}

	if h.Recommend != nil {
		recommendRoutes := NewDomainGroup("recommendations", "/recommendations")
		recommendRoutes.GET("/popular", h.Recommend.Popular)
		recommendRoutes.GET("/similar", h.Recommend.Similar)
		groups = append(groups, recommendRoutes)

		chatRoutes := NewDomainGroup("chat", "/chat")
		chatRoutes.GET("", h.Recommend.Transcript)
		chatRoutes.POST("", h.Recommend.Chat)
		chatRoutes.DELETE("", h.Recommend.ResetChat)
		chatRoutes.GET("/status", h.Recommend.ChatStatus)
		groups = append(groups, chatRoutes)
	}

	if h.System != nil {
		systemRoutes := NewDomainGroup("system", "/system")
		systemRoutes.GET("/info", h.System.Info)
		systemRoutes.GET("/ping", h.System.Ping)
		groups = append(groups, systemRoutes)
	}

	return groups
}
