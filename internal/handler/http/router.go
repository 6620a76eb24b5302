package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/opshift/attendance-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	catalogHandler CatalogHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/punch", attendanceHandler.Punch)
			r.Get("/status/{employeeID}", attendanceHandler.Status)
			r.Get("/", attendanceHandler.List)
			r.Get("/summary", reportHandler.EmployeeSummary)
			r.Get("/summary/export", reportHandler.ExportEmployeeSummary)
			r.Get("/daily", reportHandler.CompanyDaily)
			r.Post("/mark-absentees", attendanceHandler.MarkAbsentees)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", attendanceHandler.Get)
				r.Put("/", attendanceHandler.Update)
				r.Delete("/", attendanceHandler.Delete)
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Route("/requests", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/", leaveHandler.List)
				r.Post("/{id}/approve", leaveHandler.Approve)
				r.Post("/{id}/reject", leaveHandler.Reject)
				r.Post("/{id}/cancel", leaveHandler.Cancel)
			})

			r.Route("/balances", func(r chi.Router) {
				r.Get("/{employeeID}", leaveHandler.GetBalances)
				r.Post("/adjust", leaveHandler.AdjustBalance)
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/actions", catalogHandler.ListActions)
			r.Get("/sources", catalogHandler.ListSources)
			r.Get("/attendance-types", catalogHandler.ListAttendanceTypes)
			r.Get("/leave-types", leaveHandler.ListTypes)

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", catalogHandler.ListShifts)
				r.Post("/", catalogHandler.CreateShift)
				r.Post("/assign", catalogHandler.AssignShift)
			})
		})
	})
	return r
}
