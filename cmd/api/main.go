package main

import (
	"fmt"
	"net/http"

	"github.com/presensi-hq/presensi-backend-go/internal/config"
	appHTTP "github.com/presensi-hq/presensi-backend-go/internal/handler/http"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/database"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/jwt"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/notify"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/sse"
	"github.com/presensi-hq/presensi-backend-go/internal/repository/postgresql"
	approvalService "github.com/presensi-hq/presensi-backend-go/internal/service/approval"
	attendanceService "github.com/presensi-hq/presensi-backend-go/internal/service/attendance"
	capabilityService "github.com/presensi-hq/presensi-backend-go/internal/service/capability"
	scheduleService "github.com/presensi-hq/presensi-backend-go/internal/service/schedule"
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

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	assignmentRepo := postgresql.NewPositionAssignmentRepository(db)
	approvalRequestRepo := postgresql.NewApprovalRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	systemClock := clock.NewSystemClock()
	hub := sse.NewHub()
	notifier := notify.NewHubNotifier(hub)

	windowPolicy := scheduleService.NewTimeWindowPolicy(workScheduleRepo, holidayRepo, systemClock)
	scheduleSvc := scheduleService.NewScheduleService(workScheduleRepo, holidayRepo)
	capabilityResolver := capabilityService.NewResolver(assignmentRepo, systemClock)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		workScheduleRepo,
		employeeRepo,
		windowPolicy,
		systemClock,
		notifier,
	)
	workflowEngine := approvalService.NewWorkflowEngine(
		approvalRequestRepo,
		employeeRepo,
		workScheduleRepo,
		capabilityResolver,
		windowPolicy,
		systemClock,
		notifier,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	approvalHandler := appHTTP.NewApprovalHandler(workflowEngine)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		approvalHandler,
		scheduleHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
