package main

import (
	bookinghandler "photobox/internal/bookings/handler"
	bookingservice "photobox/internal/bookings/service"
	"photobox/internal/bookings/validator"
	exporthandler "photobox/internal/export/handler"
	exportservice "photobox/internal/export/service"
	settingshandler "photobox/internal/settings/handler"
	settingsservice "photobox/internal/settings/service"
	statshandler "photobox/internal/stats/handler"
	statsservice "photobox/internal/stats/service"
	whatsapphandler "photobox/internal/whatsapp/handler"
	whatsappservice "photobox/internal/whatsapp/service"
	"photobox/pkg/app"
	"photobox/pkg/config"
	"photobox/pkg/events"
	"photobox/pkg/store"
)

const ServiceName = "photobox"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Photobox booking service")

	st, err := store.New(cfg.DataDir, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to open data directory", "dir", cfg.DataDir, "error", err)
	}

	publisher := initPublisher(cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingSvc := bookingservice.NewBookingService(st, bookingValidator, publisher, cfg)
	settingsSvc := settingsservice.NewSettingsService(st, cfg)
	statsSvc := statsservice.NewStatsService(st, cfg)
	exportSvc := exportservice.NewExportService(st, cfg)
	whatsappSvc := whatsappservice.NewWhatsAppService(st, cfg)

	watcher := store.NewWatcher(st, cfg.PollInterval, cfg.Log, func(revision string) {
		cfg.Log.Info("Collection changed on disk", "revision", revision)
	})

	serverApp := app.NewApplication(cfg)
	serverApp.SetWatcher(watcher)
	serverApp.AddCloser(publisher.Close)
	serverApp.SetApp(st,
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		settingshandler.NewSettingsHandler(settingsSvc, cfg.Log),
		statshandler.NewStatsHandler(statsSvc, cfg.Log),
		exporthandler.NewExportHandler(exportSvc, cfg.Log),
		whatsapphandler.NewWhatsAppHandler(whatsappSvc, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.EventBrokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.EventBrokers, cfg.EventTopic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to configure Kafka publisher", "error", err)
		}
		cfg.Log.Info("Publishing booking events to Kafka",
			"brokers", cfg.EventBrokers,
			"topic", cfg.EventTopic,
		)
		return publisher
	}
	return events.NewLogPublisher(cfg.Log)
}
