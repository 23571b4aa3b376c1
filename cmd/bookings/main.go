package main

import (
	attendancehandler "smartgym/internal/attendance/handler"
	attendancerepo "smartgym/internal/attendance/repository"
	attendanceservice "smartgym/internal/attendance/service"
	bookinghandler "smartgym/internal/bookings/handler"
	bookingrepo "smartgym/internal/bookings/repository"
	bookingservice "smartgym/internal/bookings/service"
	bookingvalidator "smartgym/internal/bookings/validator"
	directoryhandler "smartgym/internal/directory/handler"
	directoryrepo "smartgym/internal/directory/repository"
	directoryservice "smartgym/internal/directory/service"
	directoryvalidator "smartgym/internal/directory/validator"
	"smartgym/internal/history"
	historyhandler "smartgym/internal/history/handler"
	progresshandler "smartgym/internal/progress/handler"
	progressrepo "smartgym/internal/progress/repository"
	progressservice "smartgym/internal/progress/service"
	progressvalidator "smartgym/internal/progress/validator"
	routinehandler "smartgym/internal/routines/handler"
	routinerepo "smartgym/internal/routines/repository"
	routineservice "smartgym/internal/routines/service"
	"smartgym/pkg/app"
	"smartgym/pkg/config"
	"smartgym/pkg/kafka"
	kafka_config "smartgym/pkg/kafka/config"
	kafka_middleware "smartgym/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.UsesMongo() {
		cfg.SetMongo()
	}
	if cfg.UsesRedis() {
		cfg.SetRedis()
	}

	cfg.Log.Info("Starting Bookings service", "storage_backend", cfg.StorageBackend)
	serverApp := app.NewApplication(cfg)

	directory, identities := initDirectory(cfg)
	sink, reader := initHistory(cfg, serverApp)
	bookings := initBookings(cfg, directory, sink)

	serverApp.SetApp(
		bookinghandler.NewBookingHandler(bookings, cfg.Log),
		directoryhandler.NewDirectoryHandler(directory, cfg.Log),
		directoryhandler.NewIdentityHandler(identities, cfg.Log),
		historyhandler.NewHistoryHandler(reader, cfg.Log),
		attendancehandler.NewAttendanceHandler(initAttendance(cfg, identities, directory), cfg.Log),
		routinehandler.NewRoutineHandler(initRoutines(cfg, identities), cfg.Log),
		progresshandler.NewProgressHandler(initProgress(cfg, identities), cfg.Log),
	)
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.Run()
}

func initDirectory(cfg *config.Config) (directoryservice.DirectoryService, directoryservice.IdentityService) {
	var (
		parties    directoryrepo.PartyRepository
		identities directoryrepo.IdentityRepository
	)
	if cfg.UsesMongo() {
		parties = directoryrepo.NewMongoPartyRepository(cfg)
		identities = directoryrepo.NewMongoIdentityRepository(cfg)
	} else {
		parties = directoryrepo.NewMemoryPartyRepository()
		identities = directoryrepo.NewMemoryIdentityRepository()
	}

	v := directoryvalidator.NewPartyValidator()
	return directoryservice.NewDirectoryService(parties, v, cfg),
		directoryservice.NewIdentityService(identities, parties, v, cfg)
}

func initAttendance(
	cfg *config.Config,
	identities attendanceservice.Identities,
	directory attendanceservice.Directory,
) attendanceservice.AttendanceService {
	var repo attendancerepo.AttendanceRepository
	if cfg.UsesMongo() {
		repo = attendancerepo.NewMongoAttendanceRepository(cfg)
	} else {
		repo = attendancerepo.NewMemoryAttendanceRepository()
	}
	return attendanceservice.NewAttendanceService(repo, identities, directory, cfg)
}

func initRoutines(cfg *config.Config, customers routineservice.Customers) routineservice.RoutineService {
	var repo routinerepo.RoutineRepository
	if cfg.UsesMongo() {
		repo = routinerepo.NewMongoRoutineRepository(cfg)
	} else {
		repo = routinerepo.NewMemoryRoutineRepository()
	}
	return routineservice.NewRoutineService(repo, customers, cfg)
}

func initProgress(cfg *config.Config, customers progressservice.Customers) progressservice.ProgressService {
	var repo progressrepo.ProgressRepository
	if cfg.UsesMongo() {
		repo = progressrepo.NewMongoProgressRepository(cfg)
	} else {
		repo = progressrepo.NewMemoryProgressRepository()
	}
	return progressservice.NewProgressService(repo, customers, progressvalidator.NewProgressValidator(), cfg)
}

func initBookings(cfg *config.Config, directory bookingservice.Directory, sink history.Sink) bookingservice.BookingService {
	var repo bookingrepo.BookingRepository
	if cfg.UsesMongo() {
		repo = bookingrepo.NewMongoBookingRepository(cfg)
	} else {
		repo = bookingrepo.NewMemoryBookingRepository()
	}

	svc := bookingservice.NewBookingService(
		repo,
		directory,
		sink,
		bookingvalidator.NewBookingValidator(cfg.Log, cfg.NoteMaxLength),
		cfg,
	)
	cfg.Log.Info("Booking service initialized", "storage_backend", cfg.StorageBackend)
	return svc
}

// initHistory picks where booking notes go and where they are read from.
// With MongoDB and Kafka both on, the service only publishes; cmd/history
// projects the events into the History collection this service reads.
func initHistory(cfg *config.Config, serverApp *app.Application) (history.Sink, history.Reader) {
	var store interface {
		history.Sink
		history.Reader
	}
	if cfg.UsesMongo() {
		store = history.NewMongoStore(cfg)
	} else {
		store = history.NewStore()
	}

	if !cfg.KafkaEnabled {
		return store, store
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.HistoryTopic, cfg.HistoryDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create history producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close history producer", "error", err)
		}
	})

	kafkaSink := history.NewKafkaSink(producer)
	if cfg.UsesMongo() {
		return kafkaSink, store
	}
	return history.FanOut{store, kafkaSink}, store
}
