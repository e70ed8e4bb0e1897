package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/specialistvlad/seedrun/internal/report"
)

// progressSource is what the status server reports on.
type progressSource interface {
	Latest() report.Snapshot
}

// statusServer serves read-only run progress over HTTP.
type statusServer struct {
	logger *slog.Logger
	srv    *http.Server
	addr   string
}

func newStatusRouter(logger *slog.Logger, source progressSource) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		logger.Debug("Health check endpoint hit.", "remote_addr", c.ClientIP())
		c.String(http.StatusOK, "OK\n")
	})
	r.GET("/progress", func(c *gin.Context) {
		c.JSON(http.StatusOK, source.Latest())
	})
	return r
}

// startStatusServer binds addr and serves in the background. The bind happens
// synchronously so a bad address fails the run up front.
func (a *App) startStatusServer(ctx context.Context, addr string, source progressSource) (*statusServer, error) {
	a.logger.Debug("Configuring status server.")

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &statusServer{
		logger: a.logger,
		srv:    &http.Server{Handler: newStatusRouter(a.logger, source), ReadHeaderTimeout: 5 * time.Second},
		addr:   ln.Addr().String(),
	}

	go func() {
		a.logger.Info("🩺 Status server starting", "address", "http://"+s.addr)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()
	return s, nil
}

// Close shuts the server down, waiting briefly for open requests.
func (s *statusServer) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	s.logger.Debug("Shutting down status server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Status server shutdown failed", "error", err)
		return err
	}
	return nil
}
