package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"roomreserve/internal/audit"
	"roomreserve/internal/config"
	"roomreserve/internal/events"
	"roomreserve/internal/metrics"
	"roomreserve/internal/reminders"
	"roomreserve/internal/seed"
	"roomreserve/internal/store"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ROOMRESERVE_CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	catalog := seed.Default()
	if cfg.Seed.CatalogPath != "" {
		catalog, err = seed.Load(cfg.Seed.CatalogPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.Seed.CatalogPath).Msg("failed to load catalog")
		}
	}

	randomSeed := cfg.Seed.RandomSeed
	if randomSeed == 0 {
		randomSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(randomSeed))

	rooms := catalog.Materialize(cfg.SlotPolicy(), rng, cfg.Seed.BookedProbability)

	bus := events.NewBus()
	st := store.New(rooms, catalog.SessionUser(), bus, &logger)
	applied := st.Seed(catalog.Reservations)

	logger.Info().
		Int("rooms", len(rooms)).
		Int("seed_reservations", applied).
		Str("selected_date", st.SelectedDate()).
		Msg("store initialized")

	var scheduler *reminders.Scheduler
	if cfg.Reminders.Enabled {
		scheduler = reminders.NewScheduler(reminders.Config{
			Lead:          cfg.ReminderLead(),
			RatePerSecond: cfg.Reminders.RatePerSecond,
			Burst:         cfg.Reminders.Burst,
			Location:      cfg.Location(),
		}, &logNotifier{logger: logger}, &logger)
		scheduler.Subscribe(bus)
		defer scheduler.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, st, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	for _, room := range st.ListRooms() {
		free := st.GetAvailableTimeSlots(room.ID, st.SelectedDate())
		logger.Info().
			Str("room_id", room.ID).
			Str("name", room.Name).
			Int("capacity", room.Capacity).
			Int("free_slots", len(free)).
			Msg("room available")
	}

	logger.Info().Msg("roomreserve started")
	<-ctx.Done()

	if cfg.Audit.ExportPath != "" {
		exportReport(cfg.Audit.ExportPath, st, &logger)
	}
	logger.Info().Msg("roomreserve stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Logging.Pretty {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(output)
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// logNotifier delivers reminders to the log; a deployment with a real
// messaging channel plugs its own reminders.Notifier in here.
type logNotifier struct {
	logger zerolog.Logger
}

func (n *logNotifier) SendReminder(_ context.Context, res events.ReservationEvent, startsAt time.Time) error {
	n.logger.Info().
		Str("reservation_id", res.ReservationID).
		Str("room", res.RoomName).
		Str("slot", res.SlotStart+" - "+res.SlotEnd).
		Time("starts_at", startsAt).
		Msg("upcoming reservation reminder")
	return nil
}

func exportReport(path string, st *store.Store, logger *zerolog.Logger) {
	report, err := audit.BuildReservationReport(st.ReservationDetails())
	if err != nil {
		logger.Error().Err(err).Msg("build reservation report failed")
		return
	}
	defer report.Close()

	if err := report.SaveToFile(path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("save reservation report failed")
		return
	}
	logger.Info().Str("path", path).Msg("reservation report exported")
}

func startHealthServer(ctx context.Context, port int, st *store.Store, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if len(st.ListRooms()) == 0 {
			http.Error(w, "catalog empty", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
