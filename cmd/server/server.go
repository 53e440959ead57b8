package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/auth"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/eventengine"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/account"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/admin"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/catalog"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/order"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/profile"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/middlewares"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr              string
	DB                *sql.DB
	Redis             *redis.Client // nil disables the listing cache
	TokenManager      *auth.TokenService
	AdminKey          string
	DeleteOnZeroStock bool
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines to finish before shutting down the server.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /products/1/ -> /products/1
	router.Use(chimiddleware.StripSlashes)

	s.prep()

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to graceful shutdown server.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen for shutdown signals
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if err := s.DB.Close(); err != nil {
		log.Println("server failed to close db for shutdown")
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Println("server failed to close redis for shutdown")
		}
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for server to function
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// middleware
	middleware := middlewares.NewMiddleware(
		s.TokenManager,
		s.AdminKey,
	)

	// account feature
	accountStore := account.NewStore(s.DB)
	accountService := account.NewService(
		accountStore,
		s.TokenManager,
	)
	accountHandler := account.NewHandler(accountService, middleware)
	accountHandler.RegisterRoutes(r)

	// farmer profile feature
	profileStore := profile.NewStore(s.DB)
	profileService := profile.NewService(profileStore)
	profileHandler := profile.NewHandler(profileService, middleware)
	profileHandler.RegisterRoutes(r)

	// catalog feature
	catalogStore := catalog.NewStore(s.DB)
	catalogService := catalog.NewService(
		catalogStore,
		accountService,
		catalog.NewListingCache(s.Redis),
	)
	catalogHandler := catalog.NewHandler(catalogService, middleware)
	catalogHandler.RegisterRoutes(r)

	// order feature; registers the events the catalog handler subscribes to
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(
		orderStore,
		accountService,
		s.eventEngine,
	)
	orderHandler := order.NewHandler(orderService, middleware)
	orderHandler.RegisterRoutes(r)

	catalog.NewHandlerEvents(
		&catalog.HandlerEventsConfig{
			DoneCh:            s.doneCh,
			InternalSrvWG:     s.internalSrvWG,
			EventEngine:       s.eventEngine,
			Service:           catalogService,
			DeleteOnZeroStock: s.DeleteOnZeroStock,
		},
	)

	// admin feature
	adminStore := admin.NewStore(s.DB)
	adminService := admin.NewService(adminStore)
	adminHandler := admin.NewHandler(adminService, middleware)
	adminHandler.RegisterRoutes(r)

	return r
}
