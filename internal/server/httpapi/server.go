// Package httpapi exposes the storefront snapshot over HTTP:
//
//	GET  /api/store-data   full snapshot as JSON
//	POST /api/store-data   replace the snapshot (whole-document writes)
//	GET  /healthz          liveness probe
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vietcraft/storefront/internal/logging"
	"github.com/vietcraft/storefront/internal/server/storage"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	store      storage.SnapshotStore
	log        logging.Logger
}

// New builds a Server serving the snapshot API from st.
func New(addr string, st storage.SnapshotStore, log logging.Logger) *Server {
	s := &Server{store: st, log: log}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// buildRouter wires routes for the API. The storefront runs in a browser on
// a different origin than the API in development, hence the permissive CORS
// policy.
func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/api/store-data", s.getStoreData)
	router.POST("/api/store-data", s.postStoreData)

	return router
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
