package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/repository"
	"hotel-booking/routes"
	"hotel-booking/services"
	"hotel-booking/utils"
)

func main() {
	configPath := flag.String("config", utils.EnvOrDefault("CONFIG_PATH", "configs/config.yaml"), "path to the YAML config file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := utils.NewLogger(settings.Logging.Level, settings.Logging.Format)
	log.WithField("driver", settings.Database.Driver).Info("configuration loaded")

	store, err := openStore(settings, log)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	if settings.Database.Seed {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := config.SeedDatabase(seedCtx, store, log)
		cancel()
		if err != nil {
			log.Fatalf("seed database: %v", err)
		}
	}

	seasons, err := settings.SeasonTable()
	if err != nil {
		log.Fatalf("season markups: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(registry)

	notifier, redisClient := buildNotifier(settings, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	pricing := services.NewPricingCalculator(seasons)
	bookingService := services.NewBookingService(store, pricing, notifier, log,
		services.WithRetryPolicy(settings.RetryPolicy()),
		services.WithMetrics(metrics),
	)
	queryService := services.NewQueryService(store, pricing, log, settings.Booking.CleaningInterval)
	catalogService := services.NewCatalogService(store, log)
	exportService := services.NewExportService(queryService, log)
	userService := services.NewUserService(store, log)

	router := routes.SetupRouter(routes.Controllers{
		Bookings:  controllers.NewBookingController(bookingService, queryService, exportService, log),
		Rooms:     controllers.NewRoomController(catalogService, queryService, log),
		RoomTypes: controllers.NewRoomTypeController(catalogService, log),
		Hotels:    controllers.NewHotelController(catalogService, log),
		Users:     controllers.NewUserController(userService, log),
	}, routes.Options{
		CORSOrigins:    settings.Server.CORSOrigins,
		RequestTimeout: settings.Server.RequestTimeout,
		Gatherer:       registry,
		Logger:         log,
	})

	addr := ":" + settings.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	bookingService.Wait()
	log.Info("server stopped gracefully")
}

func openStore(settings *config.Settings, log *logrus.Logger) (repository.Store, error) {
	if settings.Database.Driver == config.DriverMemory {
		log.Warn("using in-memory storage; data is lost on restart")
		return repository.NewMemoryStore(), nil
	}
	db, err := config.ConnectDatabase(settings.Database, log)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}

// buildNotifier always logs confirmations, and adds the Redis queue and
// email when they are configured.
func buildNotifier(settings *config.Settings, log *logrus.Logger) (services.Notifier, *redis.Client) {
	notifiers := services.MultiNotifier{services.LogNotifier{Logger: log}}

	var client *redis.Client
	if settings.Redis.Address != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     settings.Redis.Address,
			Password: settings.Redis.Password,
			DB:       settings.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.WithError(err).Warn("redis unreachable, confirmations will not be queued")
			_ = client.Close()
			client = nil
		} else {
			notifiers = append(notifiers, services.NewRedisNotifier(client, settings.Redis.ListKey))
			log.WithField("addr", settings.Redis.Address).Info("redis confirmation queue enabled")
		}
	}

	if settings.Booking.EmailEnabled {
		notifiers = append(notifiers, services.NewEmailNotifier())
	}
	return notifiers, client
}
