package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/config"
	"github.com/paywise-hr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	periodHandler PeriodHandler,
	ledgerHandler LedgerHandler,
	payslipHandler PayslipHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paywise-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.ClientIP)

	// Rendered payslip artifacts.
	r.Handle("/documents/*", http.StripPrefix("/documents/",
		http.FileServer(http.Dir(cfg.Storage.BasePath))))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/periods", func(r chi.Router) {
					r.Post("/", periodHandler.Create)
					r.Get("/", periodHandler.List)
					r.Post("/{id}/run", periodHandler.Run)
					r.Get("/{id}/summary", periodHandler.Summary)
				})

				r.Get("/employees", employeeHandler.List)
			})

			// Employee only
			r.Group(func(r chi.Router) {
				r.Use(middleware.EmployeeOnly)

				r.Post("/attendance", ledgerHandler.SubmitAttendance)
				r.Post("/overtime", ledgerHandler.SubmitOvertime)
				r.Post("/reimbursements", ledgerHandler.SubmitReimbursement)
				r.Get("/ledger/{periodID}", ledgerHandler.ListMine)

				r.Route("/payslips", func(r chi.Router) {
					r.Post("/{periodID}", payslipHandler.Generate)
					r.Get("/{periodID}", payslipHandler.Get)
				})
			})
		})
	})

	return r
}
