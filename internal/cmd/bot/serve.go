package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/louisbranch/bazaar.chat/internal/bot/app"
	cartdomain "github.com/louisbranch/bazaar.chat/internal/cart/domain"
	cartmemory "github.com/louisbranch/bazaar.chat/internal/cart/storage/memory"
	cartredis "github.com/louisbranch/bazaar.chat/internal/cart/storage/redis"
	catalogdomain "github.com/louisbranch/bazaar.chat/internal/catalog/domain"
	"github.com/louisbranch/bazaar.chat/internal/catalog/seed"
	catalogmemory "github.com/louisbranch/bazaar.chat/internal/catalog/storage/memory"
	catalogsqlite "github.com/louisbranch/bazaar.chat/internal/catalog/storage/sqlite"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	conversationmemory "github.com/louisbranch/bazaar.chat/internal/conversation/storage/memory"
	conversationredis "github.com/louisbranch/bazaar.chat/internal/conversation/storage/redis"
	"github.com/louisbranch/bazaar.chat/internal/ops"
	ordersdomain "github.com/louisbranch/bazaar.chat/internal/orders/domain"
	ordersmemory "github.com/louisbranch/bazaar.chat/internal/orders/storage/memory"
	orderssqlite "github.com/louisbranch/bazaar.chat/internal/orders/storage/sqlite"
	"github.com/louisbranch/bazaar.chat/internal/platform/timeouts"
	"github.com/louisbranch/bazaar.chat/internal/transport/ws"
)

const healthServiceName = "bazaar.chat.bot"

type stores struct {
	catalog  catalogdomain.Store
	carts    cartdomain.Store
	sessions conversationdomain.Store
	orders   ordersdomain.Store
	close    func() error
}

func openStores(cfg Config) (*stores, error) {
	switch cfg.StoreBackend {
	case "memory":
		return &stores{
			catalog:  catalogmemory.New(),
			carts:    cartmemory.New(),
			sessions: conversationmemory.New(),
			orders:   ordersmemory.New(),
			close:    func() error { return nil },
		}, nil

	case "sqlite":
		catalogStore, err := catalogsqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open catalog store: %w", err)
		}
		orderStore, err := orderssqlite.Open(cfg.SQLitePath)
		if err != nil {
			_ = catalogStore.Close()
			return nil, fmt.Errorf("open order store: %w", err)
		}
		return &stores{
			catalog:  catalogStore,
			carts:    cartmemory.New(),
			sessions: conversationmemory.New(),
			orders:   orderStore,
			close: func() error {
				return errors.Join(catalogStore.Close(), orderStore.Close())
			},
		}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return &stores{
			catalog:  catalogmemory.New(),
			carts:    cartredis.New(client),
			sessions: conversationredis.New(client),
			orders:   ordersmemory.New(),
			close:    client.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func serve(ctx context.Context, cfg Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("BAZAAR_CHAT_JWT_SECRET is required")
	}

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Printf("close stores: %v", err)
		}
	}()

	catalog := catalogdomain.NewService(st.catalog)
	carts := cartdomain.NewService(st.carts, catalogGetter{catalog})
	orders := ordersdomain.NewService(st.orders, nil, nil)

	if cfg.SeedCatalog {
		if err := seed.Ensure(ctx, catalog); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	verifier, err := ws.NewTokenVerifier([]byte(cfg.JWTSecret), nil)
	if err != nil {
		return err
	}
	gateway := ws.NewGateway(verifier)

	engine, err := app.New(app.Config{
		Catalog:     catalog,
		Carts:       carts,
		Orders:      orders,
		Sessions:    st.sessions,
		Renderer:    gateway,
		AdminIDs:    cfg.AdminIDs,
		Locale:      cfg.Locale,
		IdleTimeout: cfg.IdleTimeout,
	})
	if err != nil {
		return err
	}
	gateway.Bind(engine)

	wsServer := &http.Server{
		Addr:              cfg.WSAddr,
		Handler:           gateway.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	opsServer := &http.Server{
		Addr:              cfg.OpsAddr,
		Handler:           ops.Handler(func() bool { return true }),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen gRPC: %w", err)
	}

	errCh := make(chan error, 3)
	go func() {
		log.Printf("websocket gateway listening on %s", cfg.WSAddr)
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ws server: %w", err)
		}
	}()
	go func() {
		log.Printf("ops server listening on %s", cfg.OpsAddr)
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ops server: %w", err)
		}
	}()
	go func() {
		log.Printf("gRPC health listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(grpcListener); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Print("shutting down")
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("ws shutdown: %v", err)
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("ops shutdown: %v", err)
	}
	grpcServer.GracefulStop()
	return nil
}

// catalogGetter narrows the catalog service to the lookup the cart needs.
type catalogGetter struct {
	svc *catalogdomain.Service
}

func (c catalogGetter) Get(ctx context.Context, id int64) (catalogdomain.Product, error) {
	return c.svc.Get(ctx, id)
}
