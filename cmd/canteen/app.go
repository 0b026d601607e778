package main

import (
	"context"
	"fmt"
	"io"

	cartapp "github.com/canteen/client/internal/application/cart"
	"github.com/canteen/client/internal/application/home"
	identityapp "github.com/canteen/client/internal/application/identity"
	menuapp "github.com/canteen/client/internal/application/menu"
	orderapp "github.com/canteen/client/internal/application/order"
	recommendapp "github.com/canteen/client/internal/application/recommend"
	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/infrastructure/auth"
	"github.com/canteen/client/internal/infrastructure/cache"
	"github.com/canteen/client/internal/infrastructure/client"
	"github.com/canteen/client/internal/infrastructure/config"
	"github.com/canteen/client/internal/infrastructure/logger"
	"github.com/canteen/client/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

type appOptions struct {
	configPath string
	out        io.Writer
	noColor    bool
	verbose    bool
	serving    bool
}

// app holds every service a command may use
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *persistence.Database
	cache  menu.Cache
	out    *printer

	auth      *identityapp.AuthService
	menu      *menuapp.Service
	home      *home.Service
	cart      *cartapp.Service
	placement *orderapp.PlacementService
	history   *orderapp.HistoryService
	board     *orderapp.BoardService
	recommend *recommendapp.Service
	chat      *recommendapp.ChatService
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	if opts.serving {
		logCfg = logger.ServerConfig()
		logCfg.Output = cfg.Log.Output
	}
	if opts.verbose {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := persistence.Open(cfg.Store.Path, persistence.Options{
		Logger: logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level)),
	})
	if err != nil {
		return nil, err
	}

	catalogCache, err := cache.NewFactory(cfg.Cache, cache.WithLogger(log)).Create()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	clientOpts := client.Options{
		Timeout: cfg.Backend.Timeout,
		Retry: client.RetryConfig{
			MaxRetries:   cfg.Retry.MaxRetries,
			InitialDelay: cfg.Retry.InitialInterval,
			MaxDelay:     cfg.Retry.MaxInterval,
			Multiplier:   cfg.Retry.Multiplier,
		},
		RateLimit: cfg.Backend.RateLimit,
		RateBurst: cfg.Backend.RateBurst,
	}
	backend, err := client.New(cfg.Backend.BaseURL, clientOpts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	recommendClient, err := client.New(cfg.Backend.RecommendURL, clientOpts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	chatClient, err := client.New(cfg.Backend.ChatURL, clientOpts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: log,
		db:     db,
		cache:  catalogCache,
		out:    newPrinter(opts.out, flagOutput, opts.noColor),
	}

	var notifier cartapp.Notifier = a.out
	if opts.serving {
		notifier = nil
	}
	cartStore := persistence.NewGormCartStore(db.DB)
	cartOpts := []cartapp.Option{
		cartapp.WithGuestStore(cartStore),
		cartapp.WithNotesStore(cartStore),
		cartapp.WithLogger(log.Named("cart")),
	}
	if notifier != nil {
		cartOpts = append(cartOpts, cartapp.WithNotifier(notifier))
	}
	sessions := cartapp.SessionFunc(func() *identity.Session { return a.auth.Session() })

	a.menu = menuapp.NewService(client.NewMenuSource(backend), catalogCache, log.Named("menu"))
	a.cart = cartapp.NewService(client.NewCartGateway(backend), sessions, cartOpts...)
	a.auth = identityapp.NewAuthService(
		client.NewAuthGateway(backend),
		persistence.NewGormSessionStore(db.DB),
		a.cart,
		identityapp.WithSessionFactory(auth.NewSession),
		identityapp.WithLogger(log.Named("auth")),
	)

	orders := client.NewOrderGateway(backend)
	a.placement = orderapp.NewPlacementService(orders, a.auth, a.menu, a.cart, log.Named("order"))
	a.history = orderapp.NewHistoryService(orders, a.auth, cfg.Poll.Tracking, log.Named("order"))
	a.board = orderapp.NewBoardService(orders, a.auth, cfg.Poll.Board, log.Named("board"))
	a.recommend = recommendapp.NewService(client.NewRecommendGateway(recommendClient), a.menu, log.Named("recommend"))
	a.chat = recommendapp.NewChatService(client.NewChatGateway(chatClient), log.Named("chat"))
	a.home = home.NewService(a.menu, a.recommend, log.Named("home"))

	// A stored session wins over the guest cart; without one the guest cart
	// from the last run is loaded.
	sess, err := a.auth.Restore(ctx)
	if err != nil {
		log.Warn("could not restore session", zap.Error(err))
	}
	if !sess.IsAuthenticated() {
		if err := a.cart.LoadGuest(ctx); err != nil {
			log.Warn("could not load guest cart", zap.Error(err))
		}
	}
	return a, nil
}

// Close releases the store and cache connections
func (a *app) Close() error {
	if c, ok := a.cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close catalog cache", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
	return a.db.Close()
}
