package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/config"
	appHTTP "github.com/hrsuite/presence-monitor-go/internal/handler/http"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/cron"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/database"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/jwt"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/sse"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/storage"
	"github.com/hrsuite/presence-monitor-go/internal/repository/postgresql"
	attendanceService "github.com/hrsuite/presence-monitor-go/internal/service/attendance"
	monitoringService "github.com/hrsuite/presence-monitor-go/internal/service/monitoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	captureRepo := postgresql.NewCaptureRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	eventHub := sse.NewHub()

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo)
	monitoringSvc := monitoringService.NewMonitoringService(scheduleRepo, captureRepo, fileStorage, eventHub)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	monitoringHandler := appHTTP.NewMonitoringHandler(monitoringSvc, eventHub)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		monitoringHandler,
		cfg.App.AllowedOrigins,
	)
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath))))

	scheduler := cron.NewScheduler()
	cron.NewMonitoringJobs(monitoringSvc).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
