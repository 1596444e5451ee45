package httpserver

import (
	"net/http"

	"github.com/MONGU38/kkokko-project/internal/core/service"
	"github.com/MONGU38/kkokko-project/internal/relay"
	"github.com/MONGU38/kkokko-project/internal/server/config"
	"github.com/MONGU38/kkokko-project/internal/server/httpserver/handler"
	"github.com/MONGU38/kkokko-project/internal/telemetry/logger"
	"github.com/MONGU38/kkokko-project/internal/telemetry/metric"
)

// RouterConfig holds the dependencies for building the HTTP router.
type RouterConfig struct {
	ParticipantService *service.ParticipantService
	AnswerService      *service.AnswerService
	MatchService       *service.MatchService

	Hub     *relay.Hub
	Metrics *metric.Metrics
	Logger  logger.Logger

	RateLimit config.RateLimitConfig

	// Ready reports whether the server may accept traffic.
	// Nil means always ready.
	Ready func() bool
}

// NewRouter builds the full HTTP handler with all routes and middlewares.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(handler.Config{
		ParticipantService: cfg.ParticipantService,
		AnswerService:      cfg.AnswerService,
		MatchService:       cfg.MatchService,
		Metrics:            cfg.Metrics,
		Logger:             log,
		Ready:              cfg.Ready,
	})

	mux := http.NewServeMux()
	h.Register(mux)

	if cfg.Hub != nil {
		mux.HandleFunc("GET /ws", cfg.Hub.ServeWS)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	middlewares := []Middleware{
		RequestID(),
		Recover(log),
		CORS(nil),
		Observe(cfg.Metrics),
		Audit(log),
	}
	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	return Chain(mux, middlewares...)
}
