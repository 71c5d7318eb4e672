// Package server wires the application together: database, services,
// handlers, middleware, and routes. It is the composition root; main.go only
// reads config and calls New/Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/studio-site/internal/auth"
	"github.com/sakif/studio-site/internal/handler"
	"github.com/sakif/studio-site/internal/middleware"
	sqliteRepo "github.com/sakif/studio-site/internal/repository/sqlite"
	"github.com/sakif/studio-site/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port               int
	DBPath             string
	StaticDir          string
	JWTSecret          string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
	AdminLogins        []string // GitHub logins granted the admin role
}

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// repositories (the sqlite.DB implements them all) → services → handlers →
// routes. Each layer only sees the one below it.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("configuring token service: %w", err)
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes(tokens)
	return s, nil
}

func (s *Server) setupRoutes(tokens *auth.TokenService) {
	// Global middleware, in order: request id, real client IP, request log,
	// panic recovery.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// Services. The sqlite.DB satisfies every repository interface.
	contentService := service.NewContentService(s.db, s.db, s.db, s.logger)
	portfolioService := service.NewPortfolioService(s.db, s.logger)
	blogService := service.NewBlogService(s.db, s.logger)
	contactService := service.NewContactService(s.db, s.logger)
	portalService := service.NewPortalService(s.db, s.db, s.db, s.db, s.logger)
	accountService := service.NewAccountService(s.db, tokens, auth.NewPasswordService(), s.config.AdminLogins, s.logger)

	github := auth.NewGitHubProvider(s.config.GitHubClientID, s.config.GitHubClientSecret, s.config.GitHubCallbackURL)

	// Handlers.
	contentHandler := handler.NewContentHandler(contentService, s.logger)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService, s.logger)
	blogHandler := handler.NewBlogHandler(blogService, s.logger)
	contactHandler := handler.NewContactHandler(contactService, s.logger)
	portalHandler := handler.NewPortalHandler(portalService, s.logger)
	authHandler := handler.NewAuthHandler(github, accountService, s.logger)

	// Static mount for the built frontend.
	if s.config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	// OAuth entry points live outside /api: GitHub redirects the browser here.
	s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
	s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)

	s.router.Route("/api", func(r chi.Router) {
		// Public site surface.
		r.Get("/content/{sectionType}", contentHandler.HandleGetSection)
		r.Get("/services", contentHandler.HandleListActiveServices)
		r.Get("/portfolio", portfolioHandler.HandleListActive)
		r.Get("/portfolio/featured", portfolioHandler.HandleListFeatured)
		r.Get("/testimonials", contentHandler.HandleListActiveTestimonials)
		r.Get("/blog", blogHandler.HandleListPublished)
		r.Get("/blog/{slug}", blogHandler.HandleGetBySlug)
		r.Post("/contact", contactHandler.HandleSubmit)

		// Session management.
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/auth/user", authHandler.HandleGetUser)
		})

		// Client portal: any authenticated role; reads are scoped to the
		// caller inside the service.
		r.Route("/client", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/projects", portalHandler.HandleClientProjects)
			r.Get("/assets", portalHandler.HandleClientAssets)
			r.Get("/feedback", portalHandler.HandleClientFeedback)
			r.Post("/feedback", portalHandler.HandleSubmitFeedback)
			r.Get("/milestones", portalHandler.HandleClientMilestones)
		})

		// Admin dashboard.
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Use(auth.RequireAdmin)

			r.Get("/content", contentHandler.HandleListSections)
			r.Post("/content", contentHandler.HandleCreateSection)
			r.Put("/content/{id}", contentHandler.HandleUpdateSection)
			r.Delete("/content/{id}", contentHandler.HandleDeleteSection)

			r.Get("/services", contentHandler.HandleListServices)
			r.Post("/services", contentHandler.HandleCreateService)
			r.Put("/services/reorder", contentHandler.HandleReorderServices)
			r.Put("/services/{id}", contentHandler.HandleUpdateService)
			r.Delete("/services/{id}", contentHandler.HandleDeleteService)

			r.Get("/portfolio", portfolioHandler.HandleList)
			r.Post("/portfolio", portfolioHandler.HandleCreate)
			r.Put("/portfolio/reorder", portfolioHandler.HandleReorder)
			r.Put("/portfolio/{id}", portfolioHandler.HandleUpdate)
			r.Delete("/portfolio/{id}", portfolioHandler.HandleDelete)

			r.Get("/blog", blogHandler.HandleList)
			r.Post("/blog", blogHandler.HandleCreate)
			r.Put("/blog/{id}", blogHandler.HandleUpdate)
			r.Delete("/blog/{id}", blogHandler.HandleDelete)

			r.Get("/testimonials", contentHandler.HandleListTestimonials)
			r.Post("/testimonials", contentHandler.HandleCreateTestimonial)
			r.Put("/testimonials/reorder", contentHandler.HandleReorderTestimonials)
			r.Put("/testimonials/{id}", contentHandler.HandleUpdateTestimonial)
			r.Delete("/testimonials/{id}", contentHandler.HandleDeleteTestimonial)

			r.Get("/contact", contactHandler.HandleList)
			r.Get("/contact/unread", contactHandler.HandleListUnread)
			r.Put("/contact/{id}/read", contactHandler.HandleMarkRead)
			r.Delete("/contact/{id}", contactHandler.HandleDelete)

			r.Get("/projects", portalHandler.HandleListProjects)
			r.Post("/projects", portalHandler.HandleCreateProject)
			r.Get("/projects/{id}", portalHandler.HandleGetProject)
			r.Put("/projects/{id}", portalHandler.HandleUpdateProject)
			r.Delete("/projects/{id}", portalHandler.HandleDeleteProject)

			r.Get("/projects/{id}/assets", portalHandler.HandleListProjectAssets)
			r.Post("/projects/{id}/assets", portalHandler.HandleCreateAsset)
			r.Put("/assets/{id}", portalHandler.HandleUpdateAsset)
			r.Delete("/assets/{id}", portalHandler.HandleDeleteAsset)

			r.Get("/projects/{id}/feedback", portalHandler.HandleListProjectFeedback)
			r.Post("/projects/{id}/feedback", portalHandler.HandleCreateFeedback)
			r.Put("/feedback/{id}", portalHandler.HandleUpdateFeedback)
			r.Delete("/feedback/{id}", portalHandler.HandleDeleteFeedback)

			r.Get("/projects/{id}/milestones", portalHandler.HandleListProjectMilestones)
			r.Post("/projects/{id}/milestones", portalHandler.HandleCreateMilestone)
			r.Put("/projects/{id}/milestones/reorder", portalHandler.HandleReorderMilestones)
			r.Put("/milestones/{id}", portalHandler.HandleUpdateMilestone)
			r.Delete("/milestones/{id}", portalHandler.HandleDeleteMilestone)

			r.Post("/clients", authHandler.HandleProvisionClient)
		})
	})
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight requests
// for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
