package main

import (
	"context"
	"expvar"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/announce"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/config"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/departments"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/httpapi"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/hub"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/queue"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/snapshot/sqlite"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/telemetry"

	"github.com/google/uuid"
	"github.com/igm/sockjs-go/sockjs"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	shutdownTelemetry := telemetry.Setup("kiosk-service")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	depts := departments.Default()
	if cfg.DepartmentsFile != "" {
		loaded, err := departments.LoadFile(cfg.DepartmentsFile)
		if err != nil {
			log.Fatalf("departments file: %v", err)
		}
		depts = loaded
	}
	registry, err := departments.NewRegistry(depts)
	if err != nil {
		log.Fatalf("department registry: %v", err)
	}

	snapshots, err := sqlite.New(cfg.SnapshotPath)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}
	defer snapshots.Close()

	displayHub := hub.New()
	announcer := announce.New(announce.Config{
		APIKey:  cfg.TTSAPIKey,
		Model:   cfg.TTSModel,
		Timeout: cfg.TTSTimeout,
	}, displayHub)

	store := queue.New(registry, snapshots, queue.Options{
		Announcer:   announcer,
		Broadcaster: displayHub,
	})
	if err := store.LoadSnapshot(context.Background()); err != nil {
		log.Fatalf("load snapshot: %v", err)
	}

	handler := httpapi.NewHandler(store, registry, httpapi.Options{
		RecentLimit: cfg.DisplayRecentLimit,
	})
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		PerMinute: cfg.RateLimitPerMinute,
		Burst:     cfg.RateLimitBurst,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", expvar.Handler())
	mux.Handle("/realtime/", sockjs.NewHandler("/realtime", sockjs.DefaultOptions, func(session sockjs.Session) {
		client := &hub.Client{ID: uuid.NewString(), Send: make(chan []byte, 16)}
		displayHub.Register(client)
		defer displayHub.Unregister(client)

		go func() {
			for msg := range client.Send {
				_ = session.Send(string(msg))
			}
		}()

		for {
			msg, err := session.Recv()
			if err != nil {
				return
			}
			parsed, ok := hub.ParseSubscribe([]byte(msg))
			if !ok {
				continue
			}
			if parsed.Action == "unsubscribe" {
				displayHub.UpdateSubscription(client, hub.Subscription{})
				continue
			}
			displayHub.UpdateSubscription(client, hub.Subscription{DepartmentID: parsed.DepartmentID})
		}
	}))
	mux.Handle("/", httpapi.LoggingMiddleware(limiter.Middleware(handler.Routes())))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(mux, "kiosk-service"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("kiosk-service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
