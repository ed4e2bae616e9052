package observability

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tphakala/replay-go/internal/conf"
	"github.com/tphakala/replay-go/internal/errors"
	"github.com/tphakala/replay-go/internal/logging"
)

// Endpoint serves the Prometheus metrics over HTTP.
type Endpoint struct {
	server        *echo.Echo
	listenAddress string
	metrics       *CaptureMetrics
}

// NewEndpoint creates a metrics endpoint for the given settings and metrics.
// Returns an error if metrics are not enabled in the settings.
func NewEndpoint(settings *conf.Settings, metrics *CaptureMetrics) (*Endpoint, error) {
	if !settings.Metrics.Enabled {
		return nil, errors.Newf("metrics not enabled in settings").
			Component("observability").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return &Endpoint{
		listenAddress: settings.Metrics.Addr,
		metrics:       metrics,
	}, nil
}

// Start runs the metrics HTTP server until quitChan is closed.
func (e *Endpoint) Start(wg *sync.WaitGroup, quitChan <-chan struct{}) {
	log := logging.ForService("observability")
	if log == nil {
		log = slog.Default()
	}

	e.server = echo.New()
	e.server.HideBanner = true
	e.server.HidePort = true
	e.server.Use(middleware.Recover())

	handler := promhttp.HandlerFor(e.metrics.Registry(), promhttp.HandlerOpts{})
	e.server.GET("/metrics", echo.WrapHandler(handler))

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := e.server.Start(e.listenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics endpoint failed", "error", err, "addr", e.listenAddress)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-quitChan
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.server.Shutdown(ctx); err != nil {
			log.Warn("metrics endpoint shutdown failed", "error", err)
		}
	}()

	log.Info("metrics endpoint started", "addr", e.listenAddress)
}
