package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"hrbot/internal/storage"
)

// Dependencies — зависимости HTTP-слоя.
type Dependencies struct {
	SecretKey string // Токен бота: им подписывается initData мини-приложения
	Employees *storage.EmployeeRepository
	Handlers  *Handlers
}

// NewRouter собирает роутер API. Чтение списков доступно любому сотруднику,
// мутации и контрольный отчет — только администраторам.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Telegram-Auth"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	h := deps.Handlers
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.SecretKey, deps.Employees))

		r.Get("/api/payouts", h.ListPayouts)
		r.Get("/api/payouts/active", h.ListActivePayouts)
		r.Get("/api/birthdays", h.AllBirthdays)
		r.Get("/api/birthdays/today", h.TodayBirthdays)
		r.Get("/api/birthdays/upcoming", h.UpcomingBirthdays)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly)

			r.Post("/api/payouts", h.CreatePayout)
			r.Put("/api/payouts/{id}", h.UpdatePayout)
			r.Put("/api/payouts/{id}/status", h.SetPayoutStatus)
			r.Delete("/api/payouts/{id}", h.DeletePayout)
			r.Delete("/api/payouts", h.DeletePayouts)
			r.Get("/api/payouts/control", h.ListControl)
			r.Get("/api/payouts/export", h.ExportPayouts)
		})
	})

	return r
}
