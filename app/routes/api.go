package routes

import (
	"net/http"

	"github.com/shashiranjanraj/mithai/app/controllers"
	"github.com/shashiranjanraj/mithai/pkg/response"
	"github.com/shashiranjanraj/mithai/pkg/router"
	"gorm.io/gorm"
)

// RegisterAPI mounts the whole HTTP surface. Catalogue reads are public;
// every mutation sits behind RequireAuth.
func RegisterAPI(r *router.Router, auth *controllers.AuthController, sweets *controllers.SweetController) {
	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", auth.Register)
	api.Post("/auth/login", "auth.login", auth.Login)

	api.Get("/sweets", "sweets.list", sweets.List)
	api.Get("/sweets/search", "sweets.search", sweets.Search)

	protected := api.Group("", auth.RequireAuth)
	protected.Post("/sweets", "sweets.create", sweets.Create)
	protected.Put("/sweets/{id}", "sweets.update", sweets.Update)
	protected.Delete("/sweets/{id}", "sweets.delete", sweets.Delete)
	protected.Post("/sweets/{id}/purchase", "sweets.purchase", sweets.Purchase)
}

// RegisterHealth mounts /healthz, which pings the database.
func RegisterHealth(r *router.Router, db *gorm.DB) {
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	})
}
