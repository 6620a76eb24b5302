package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opshift/attendance-backend-go/internal/config"
	appHTTP "github.com/opshift/attendance-backend-go/internal/handler/http"
	"github.com/opshift/attendance-backend-go/internal/pkg/clock"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
	"github.com/opshift/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/opshift/attendance-backend-go/internal/service/attendance"
	bootstrapService "github.com/opshift/attendance-backend-go/internal/service/bootstrap"
	leaveService "github.com/opshift/attendance-backend-go/internal/service/leave"
	reportService "github.com/opshift/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	recordRepo := postgresql.NewRecordRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	attendanceTypeRepo := postgresql.NewAttendanceTypeRepository(db)
	actionRepo := postgresql.NewActionRepository(db)
	sourceRepo := postgresql.NewSourceRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	subShiftRepo := postgresql.NewSubShiftRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveAllocationRepo := postgresql.NewLeaveAllocationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	clk := clock.Real{}

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		clk,
		cfg.Policy,
		recordRepo,
		breakRepo,
		attendanceTypeRepo,
		subShiftRepo,
		assignmentRepo,
		shiftRepo,
	)
	leaveSvc := leaveService.NewLeaveService(
		db,
		clk,
		cfg.Policy,
		leaveTypeRepo,
		leaveRequestRepo,
		leaveBalanceRepo,
		leaveAllocationRepo,
	)
	reportSvc := reportService.NewReportService(cfg.Policy, reportRepo)

	if cfg.App.Seed && cfg.Policy.DefaultCompanyID != "" {
		seeder := bootstrapService.NewService(
			db,
			attendanceTypeRepo,
			actionRepo,
			sourceRepo,
			leaveTypeRepo,
			shiftRepo,
			subShiftRepo,
		)
		if err := seeder.SeedCompanyDefaults(context.Background(), cfg.Policy.DefaultCompanyID); err != nil {
			fmt.Println("Error seeding company defaults:", err)
			return
		}
	}

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, leaveTypeRepo, cfg.Policy.DefaultCompanyID)
	catalogHandler := appHTTP.NewCatalogHandler(
		attendanceTypeRepo,
		actionRepo,
		sourceRepo,
		shiftRepo,
		subShiftRepo,
		assignmentRepo,
		cfg.Policy.DefaultCompanyID,
	)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg, attendanceHandler, leaveHandler, catalogHandler, reportHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", slog.Any("error", err))
	}
}
