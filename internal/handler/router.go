package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/eaglechat/eaglechat/internal/handler/chat"
	"github.com/eaglechat/eaglechat/internal/handler/persona"
	"github.com/eaglechat/eaglechat/internal/handler/ws"
	middlewarePkg "github.com/eaglechat/eaglechat/internal/middleware"
	personaModel "github.com/eaglechat/eaglechat/internal/model/persona"
	"github.com/eaglechat/eaglechat/pkg/utils"
)

// Option configures NewRouter.
type Option func(*options)

type options struct {
	onShutdown func(func())
}

// WithShutdownHook hands connection cleanup to register, typically
// http.Server.RegisterOnShutdown.
func WithShutdownHook(register func(func())) Option {
	return func(o *options) {
		o.onShutdown = register
	}
}

// NewRouter wires HTTP routes to the completion gateway.
func NewRouter(personas personaModel.Store, replier chat.Replier, logger *zap.Logger, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	personaHandler := persona.New(personas)
	chatHandler := chat.New(replier)
	wsHandler := ws.New(replier, logger)
	if o.onShutdown != nil {
		o.onShutdown(wsHandler.Shutdown)
	}

	r.Route("/api", func(api chi.Router) {
		personaHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
	})

	return r
}
