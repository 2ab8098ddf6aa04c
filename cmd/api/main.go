package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/fleetwerk/timelog-backend-go/internal/config"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/timeentry"
	appHTTP "github.com/fleetwerk/timelog-backend-go/internal/handler/http"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/database"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/jwt"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/storage"
	"github.com/fleetwerk/timelog-backend-go/internal/repository/postgresql"
	authService "github.com/fleetwerk/timelog-backend-go/internal/service/auth"
	calendarService "github.com/fleetwerk/timelog-backend-go/internal/service/calendar"
	"github.com/fleetwerk/timelog-backend-go/internal/service/file"
	"github.com/fleetwerk/timelog-backend-go/internal/service/fleet"
	receiptService "github.com/fleetwerk/timelog-backend-go/internal/service/receipt"
	entryService "github.com/fleetwerk/timelog-backend-go/internal/service/timeentry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolSettings{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	entryRepo := postgresql.NewTimeEntryRepository(db)
	vehicleRepo := postgresql.NewVehicleRepository(db)
	readingRepo := postgresql.NewReadingRepository(db)
	receiptRepo := postgresql.NewReceiptRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	nonWorkingRepo := postgresql.NewNonWorkingDayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)

	rules := timeentry.Rules{
		MaxShiftMinutes:    cfg.Rules.MaxShiftMinutes,
		MaxDailyDistanceKm: cfg.Rules.MaxDailyDistanceKm,
	}
	continuity := fleet.NewContinuityChecker(readingRepo)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	vehicleSvc := fleet.NewVehicleService(vehicleRepo, readingRepo, continuity)
	entrySvc := entryService.NewTimeEntryService(entryRepo, vehicleRepo, continuity, rules)
	receiptSvc := receiptService.NewReceiptService(receiptRepo, vehicleRepo, fileService, continuity)
	calendarSvc := calendarService.NewCalendarService(holidayRepo, nonWorkingRepo, entryRepo, vehicleRepo, rules)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	entryHandler := appHTTP.NewTimeEntryHandler(entrySvc)
	vehicleHandler := appHTTP.NewVehicleHandler(vehicleSvc, readingRepo)
	receiptHandler := appHTTP.NewReceiptHandler(receiptSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		entryHandler,
		vehicleHandler,
		receiptHandler,
		calendarHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
