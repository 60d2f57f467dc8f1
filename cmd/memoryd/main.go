// memoryd is the cognitive degradation engine: it projects NPC
// personality into memory stability, persists cognitive records and
// tasks, runs a per-agent degradation monitor, and phrases decaying
// memories through the Linguistic Dispatcher.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/madeengine/memoryd/internal/api"
	"github.com/madeengine/memoryd/internal/config"
	"github.com/madeengine/memoryd/internal/linguistic"
	"github.com/madeengine/memoryd/internal/monitor"
	"github.com/madeengine/memoryd/internal/store"
	"github.com/madeengine/memoryd/internal/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("warning: could not load %s: %v", envPath, err)
		log.Printf("continuing with existing environment variables")
	} else {
		log.Printf("loaded environment from %s", envPath)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	log.Printf("starting %s", version.Full())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.NewClient(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to connect to store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("error closing store: %v", err)
		}
	}()
	log.Println("connected to cognitive record store")

	dispatcher := linguistic.New(cfg.LinguisticAPIKey, cfg.LinguisticEndpoints, rand.New(rand.NewPCG(1, 2)), logger)

	monitorCfg := monitor.DefaultConfig
	monitorCfg.GameTimeScaleSecondsPerDay = cfg.GameTimeScaleSecondsPerDay
	podID := getEnv("POD_ID", "memoryd-0")
	pool := monitor.NewPool(podID, monitorCfg, st, dispatcher, monitor.NewSlogRenderer(logger))
	defer pool.Stop()

	if err := resumeSessions(ctx, st, pool); err != nil {
		log.Printf("warning: failed to resume existing sessions: %v", err)
	}

	srv := api.NewServer(st, pool, dispatcher)
	log.Printf("engine façade listening on %s", cfg.BindAddress)
	if err := srv.Run(ctx, cfg.BindAddress); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("shutdown complete")
}

// resumeSessions restarts a Degradation Monitor session for every
// cognitive record already on disk, so a restart doesn't silently
// freeze agents' clocks until their next write.
func resumeSessions(ctx context.Context, st *store.Client, pool *monitor.Pool) error {
	recs, err := st.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		pool.StartSession(ctx, rec, rec.LastUtterance)
	}
	log.Printf("resumed %d cognitive sessions", len(recs))
	return nil
}
