package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fleetdesk-io/fleetdesk/internal/auth"
	"github.com/fleetdesk-io/fleetdesk/internal/config"
	"github.com/fleetdesk-io/fleetdesk/internal/store"
)

type Api struct {
	Config *config.Config
	store  *store.Store
	tokens *auth.TokenManager
	Router *chi.Mux
}

func NewApi(cfg *config.Config, st *store.Store) (*Api, error) {
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	api := &Api{
		Config: cfg,
		store:  st,
		tokens: auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenDuration),
		Router: chi.NewRouter(),
	}

	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestID)

	r.Get("/health", api.HealthHandler)

	// Public routes
	r.Post("/auth/register", api.RegisterHandler)
	r.Post("/auth/login", api.LoginHandler)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(api.tokens, api.store))

		r.Post("/companies", api.CreateCompanyHandler)
		r.Get("/companies", api.ListCompaniesHandler)
		r.Get("/companies/{id}", api.GetCompanyHandler)
		r.Put("/companies/{id}", api.UpdateCompanyHandler)
		r.Delete("/companies/{id}", api.DeleteCompanyHandler)

		r.Post("/drivers", api.CreateDriverHandler)
		r.Get("/drivers", api.ListDriversHandler)
		r.Get("/drivers/{id}", api.GetDriverHandler)
		r.Put("/drivers/{id}", api.UpdateDriverHandler)
		r.Delete("/drivers/{id}", api.DeleteDriverHandler)

		r.Get("/admin/dashboard", api.DashboardHandler)
	})
}

func (api *Api) Serve() error {
	r := chi.NewRouter()

	// CORS must run before anything that can short-circuit the request
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{api.Config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/", api.Router)

	addr := fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort)
	log.Printf("Starting API server on %s", addr)
	return http.ListenAndServe(addr, r)
}

func (api *Api) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
