package metrics

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/ethfacade/logutils"
)

const namespace = "ethfacade"

var (
	// DispatchCounter counts routing decisions of the account router.
	// target is one of "front", "fallback" or "rejected".
	DispatchCounter = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_total",
		Help:      "Account operations by routing target",
	}, []string{"operation", "target"})

	// TransportCalls counts JSON-RPC calls by method and outcome ("ok", "error", "local").
	TransportCalls = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "transport_calls_total",
		Help:      "JSON-RPC calls made by the transport",
	}, []string{"method", "outcome"})

	// TransportLatency observes JSON-RPC round trips per method.
	TransportLatency = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "transport_call_seconds",
		Help:      "JSON-RPC call latency",
		Buckets:   prom.DefBuckets,
	}, []string{"method"})
)

func init() {
	prom.MustRegister(DispatchCounter, TransportCalls, TransportLatency)
}

// Server runs and controls a HTTP metrics interface.
type Server struct {
	server *http.Server
}

func NewMetricsServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler())
	mux.Handle("/metrics", Handler())
	return &Server{
		server: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			Handler:           mux,
		},
	}
}

func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("OK"))
		if err != nil {
			logutils.ZapLogger().Error("health handler error", zap.Error(err))
		}
	})
}

// Handler serves the default prometheus gatherer.
func Handler() http.Handler {
	return promhttp.HandlerFor(prom.DefaultGatherer, promhttp.HandlerOpts{})
}

// Listen starts the HTTP server. It blocks until the server stops.
func (p *Server) Listen() {
	err := p.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logutils.ZapLogger().Error("metrics server stopped", zap.Error(err))
		return
	}
	logutils.ZapLogger().Info("metrics server stopped")
}

// Stop shuts the server down.
func (p *Server) Stop(ctx context.Context) error {
	return p.server.Shutdown(ctx)
}
