package main

import (
	"fmt"
	"net/http"

	"github.com/spti-payroll/attendance-backend-go/internal/config"
	appHTTP "github.com/spti-payroll/attendance-backend-go/internal/handler/http"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/cron"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/database"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/jwt"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/metrics"
	"github.com/spti-payroll/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/spti-payroll/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/spti-payroll/attendance-backend-go/internal/service/auth"
	employeeService "github.com/spti-payroll/attendance-backend-go/internal/service/employee"
	ingestService "github.com/spti-payroll/attendance-backend-go/internal/service/ingest"
	reportService "github.com/spti-payroll/attendance-backend-go/internal/service/report"
	shiftService "github.com/spti-payroll/attendance-backend-go/internal/service/shift"
	summaryService "github.com/spti-payroll/attendance-backend-go/internal/service/summary"
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

	metrics.Register()

	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	settingsRepo := postgresql.NewWorkSettingsRepository(db)
	logRepo := postgresql.NewAttendanceLogRepository(db, cfg.App.Timezone)
	summaryRepo := postgresql.NewDailySummaryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	summarySvc := summaryService.NewSummaryService(employeeRepo, shiftRepo, settingsRepo, logRepo, summaryRepo, loc)
	ingestSvc := ingestService.NewIngestService(employeeRepo, logRepo, summaryRepo, summarySvc, loc)
	attendanceSvc := attendanceService.NewAttendanceService(logRepo, summaryRepo, employeeRepo, summarySvc, loc)
	shiftSvc := shiftService.NewShiftService(shiftRepo, settingsRepo, loc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, shiftRepo)
	reportSvc := reportService.NewReportService(summaryRepo, employeeRepo, loc)

	router := appHTTP.NewRouter(JWTService, cfg.App.Env, appHTTP.RouterHandlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Device:     appHTTP.NewDeviceHandler(ingestSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler()
	summaryJobs := cron.NewSummaryJobs(summarySvc, loc, cfg.Cron.ReconcileWindowDays)
	summaryJobs.RegisterJobs(scheduler, cfg.Cron.ReconcileInterval)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
