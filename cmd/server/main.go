package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/jthorne/go-travel-site/auth"
	"github.com/jthorne/go-travel-site/catalog"
	"github.com/jthorne/go-travel-site/internal/config"
	"github.com/jthorne/go-travel-site/ratelimit"
	"github.com/jthorne/go-travel-site/server"
	"github.com/jthorne/go-travel-site/token"
	"github.com/jthorne/go-travel-site/users"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, closeFn, err := buildServer(ctx, c)
	if err != nil {
		return err
	}
	defer closeFn()

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildServer wires repositories, the auth service and the HTTP server.
// The returned close function releases the catalog database handle.
func buildServer(ctx context.Context, c config.Config) (http.Handler, func(), error) {
	if err := os.MkdirAll(c.GetDataFolder(), 0o755); err != nil {
		return nil, nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	db, err := catalog.Open(ctx, filepath.Join(c.GetDataFolder(), "catalog.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("catalog.Open: %w", err)
	}

	userRepo := users.NewEnvStore(c)

	tokens, err := token.NewManager(c)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("token.NewManager: %w", err)
	}

	attempts := loginAttemptStore(ctx, c)

	authService, err := auth.NewService(userRepo, attempts, tokens)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("auth.NewService: %w", err)
	}

	throttle := ratelimit.NewThrottle(c.GetThrottleRPS(), c.GetThrottleBurst())
	throttle.StartJanitor(ctx)

	srv, err := server.New(c, server.Repos{
		Users:        userRepo,
		Packages:     catalog.NewPackageSQLiteRepo(db),
		Testimonials: catalog.NewTestimonialSQLiteRepo(db),
	}, authService, throttle)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("server.New: %w", err)
	}

	return srv, func() { db.Close() }, nil
}

// loginAttemptStore prefers Redis when an address is configured so
// lockouts survive restarts and are shared across replicas.
func loginAttemptStore(ctx context.Context, c config.Config) ratelimit.Store {
	if addr := c.GetRedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		return ratelimit.NewRedisStore(rdb, c.GetMaxLoginAttempts(), c.GetLoginWindow())
	}
	store := ratelimit.NewMemoryStore(c.GetMaxLoginAttempts(), c.GetLoginWindow())
	store.StartJanitor(ctx)
	return store
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
