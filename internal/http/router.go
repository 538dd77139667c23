package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gudang-mitra/gudang-api/internal/http/handlers"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

// NewRouter wires the full API surface. Reads on the catalog are public;
// everything that mutates state sits behind the JWT middleware, with the
// admin/manager routes additionally role-gated.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", handlers.LoginHandler)
		r.Post("/auth/register", handlers.RegisterHandler)
		r.Post("/auth/refresh", handlers.RefreshHandler)
		r.Post("/auth/logout", handlers.LogoutHandler)

		r.Get("/items", handlers.GetItemsHandler)
		r.Get("/items/{id}", handlers.GetItemByIDHandler)
		r.Get("/categories", handlers.GetCategoriesHandler)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Get("/items/{id}/movements", handlers.GetMovementsHandler)
			r.Get("/items/{id}/movements/export", handlers.ExportMovementsHandler)

			r.Post("/requests", handlers.CreateRequestHandler)
			r.Get("/requests", handlers.GetRequestsHandler)
			r.Get("/requests/{id}", handlers.GetRequestByIDHandler)

			r.Post("/loans/borrow", handlers.BorrowHandler)
			r.Post("/loans/return", handlers.ReturnLoanHandler)
			r.Get("/loans", handlers.GetLoansHandler)

			r.Get("/notifications", handlers.GetNotificationsHandler)
			r.Get("/notifications/unread-count", handlers.GetUnreadCountHandler)
			r.Patch("/notifications/{id}/read", handlers.MarkNotificationReadHandler)
			r.Patch("/notifications/read-all", handlers.MarkAllNotificationsReadHandler)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(models.RoleAdmin, models.RoleManager))

				r.Post("/items", handlers.CreateItemHandler)
				r.Put("/items/{id}", handlers.UpdateItemHandler)
				r.Post("/items/{id}/adjust", handlers.AdjustQuantityHandler)
				r.Patch("/requests/{id}/status", handlers.UpdateRequestStatusHandler)
				r.Get("/dashboard/stats", handlers.GetDashboardStatsHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(models.RoleAdmin))

				r.Delete("/items/{id}", handlers.DeleteItemHandler)
				r.Post("/items/import", handlers.ImportItemsHandler)
				r.Post("/categories", handlers.CreateCategoryHandler)
				r.Put("/categories/{id}", handlers.UpdateCategoryHandler)
				r.Delete("/categories/{id}", handlers.DeleteCategoryHandler)
				r.Post("/admin/users", handlers.CreateUserAsAdminHandler)
			})
		})
	})

	return r
}
