// Package httpapi exposes the application over a JSON REST surface built
// on gin. Identity is derived per request from the Authorization header;
// the server keeps no session state.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokomonggo/server/internal/common"
	"github.com/tokomonggo/server/internal/logging"
	"github.com/tokomonggo/server/internal/server/config"
	"github.com/tokomonggo/server/internal/server/services"
)

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	profiles  *services.ProfileService
	listings  *services.ListingService
	storage   *services.StorageService
	jwtSecret []byte
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService,
	ps *services.ProfileService, ls *services.ListingService, ss *services.StorageService) *Server {
	return &Server{
		address:   cfg.EndpointAddr,
		logger:    l.With("module", "http_server"),
		users:     us,
		profiles:  ps,
		listings:  ls,
		storage:   ss,
		jwtSecret: []byte(cfg.SecretKey),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.GET("/products", s.searchListings)
	api.GET("/products/:id", s.getListing)
	api.POST("/products", s.authRequired(), s.createListing)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh", s.refresh)
	authGroup.POST("/logout", s.logout)

	api.GET("/profile", s.authRequired(), s.getProfile)
	api.PUT("/profile", s.authRequired(), s.updateProfile)

	api.POST("/uploads", s.authRequired(), s.createUpload)

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// errorStatus maps service-layer sentinel errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error, publicMsg string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), publicMsg, "error", err)
		c.JSON(status, gin.H{"error": publicMsg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
