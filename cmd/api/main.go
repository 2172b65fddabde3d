package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/paywise-hr/payroll-backend-go/internal/config"
	appHTTP "github.com/paywise-hr/payroll-backend-go/internal/handler/http"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/storage"
	"github.com/paywise-hr/payroll-backend-go/internal/repository/postgresql"
	auditService "github.com/paywise-hr/payroll-backend-go/internal/service/audit"
	authService "github.com/paywise-hr/payroll-backend-go/internal/service/auth"
	documentService "github.com/paywise-hr/payroll-backend-go/internal/service/document"
	employeeService "github.com/paywise-hr/payroll-backend-go/internal/service/employee"
	ledgerService "github.com/paywise-hr/payroll-backend-go/internal/service/ledger"
	payrollService "github.com/paywise-hr/payroll-backend-go/internal/service/payroll"
	periodService "github.com/paywise-hr/payroll-backend-go/internal/service/period"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	adminRepo := postgresql.NewAdminRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	reimbursementRepo := postgresql.NewReimbursementRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize document storage:", err)
	}

	auditRecorder := auditService.NewAsyncRecorder(auditRepo, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	documentSvc := documentService.NewDocumentService(fileStorage)

	authSvc := authService.NewAuthService(adminRepo, employeeRepo, jwtService, auditRecorder)
	periodSvc := periodService.NewPeriodService(periodRepo, auditRecorder)
	ledgerSvc := ledgerService.NewLedgerService(db, periodRepo, attendanceRepo, overtimeRepo, reimbursementRepo, auditRecorder)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		periodRepo,
		employeeRepo,
		attendanceRepo,
		overtimeRepo,
		reimbursementRepo,
		payslipRepo,
		payrollService.CalcConfig{
			OvertimeMultiplier: cfg.Payroll.OvertimeMultiplier,
			WorkdayHours:       cfg.Payroll.WorkdayHours,
		},
		documentSvc,
		auditRecorder,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	periodHandler := appHTTP.NewPeriodHandler(periodSvc, payrollSvc)
	ledgerHandler := appHTTP.NewLedgerHandler(ledgerSvc)
	payslipHandler := appHTTP.NewPayslipHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		periodHandler,
		ledgerHandler,
		payslipHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
