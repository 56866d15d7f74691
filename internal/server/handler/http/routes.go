package http

import (
	"net/http"

	"github.com/merchco/counterpos/internal/middleware"
	"github.com/merchco/counterpos/web"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the counter
// application: the HTML pages, the static assets, and the JSON API
// under /api.
//
// Page routes other than / and /login require a session cookie and
// redirect to /login without one. Mutating API routes and /api/products
// require a session and answer 403 otherwise; /api/login, /api/logout,
// /api/check-login, and the read-only /api/relog-latest are open.
func NewRouter(
	authHandler *AuthHandler,
	counterHandler *CounterHandler,
	pagesHandler *PagesHandler,
	sessionAuth *middleware.SessionAuth,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Pages and static assets
	r.Get("/", pagesHandler.Root)
	r.Get("/login", pagesHandler.LoginPage)
	r.Handle("/static/*", http.FileServer(http.FS(web.Static)))
	r.Group(func(r chi.Router) {
		r.Use(sessionAuth.RequirePage)
		r.Get("/home", pagesHandler.Home)
		r.Get("/sale", pagesHandler.Sale)
		r.Get("/manage", pagesHandler.Manage)
		r.Get("/log", pagesHandler.Log)
	})

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.With(chiMiddleware.AllowContentType("application/json")).
			Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/check-login", authHandler.CheckLogin)
		r.Get("/relog-latest", counterHandler.RelogLatest)

		// Protected group: requires a valid session cookie
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.RequireAPI)
			r.Get("/products", counterHandler.Products)

			r.Group(func(r chi.Router) {
				// Only allow requests with Content-Type: application/json
				r.Use(chiMiddleware.AllowContentType("application/json"))
				r.Post("/sale", counterHandler.Sale)
				r.Post("/gift", counterHandler.Gift)
				r.Post("/return", counterHandler.Return)
				r.Post("/exchange", counterHandler.Exchange)
			})
		})
	})

	return r
}
