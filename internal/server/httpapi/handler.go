// Package httpapi exposes the user service over HTTP with JSON bodies and
// assembles the request pipeline in front of it.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/userkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/userkeeper/internal/server/users"
)

// UserService is what the handlers need from users.Service.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*users.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	List(ctx context.Context) ([]users.User, error)
	Update(ctx context.Context, id int, in users.UpdateInput) (*users.User, error)
	Delete(ctx context.Context, id int) error
}

// Options wires the handler. Limiter and Metrics are optional.
type Options struct {
	Users        UserService
	Gateway      *auth.Gateway
	Limiter      *ratelimit.Limiter
	Metrics      *metrics.Metrics
	Logger       logging.Logger
	MaxBodyBytes int64
}

type Handler struct {
	users        UserService
	gateway      *auth.Gateway
	limiter      *ratelimit.Limiter
	metrics      *metrics.Metrics
	logger       logging.Logger
	maxBodyBytes int64
}

func NewHandler(o Options) *Handler {
	logger := o.Logger
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Handler{
		users:        o.Users,
		gateway:      o.Gateway,
		limiter:      o.Limiter,
		metrics:      o.Metrics,
		logger:       logger.With("module", "http"),
		maxBodyBytes: o.MaxBodyBytes,
	}
}

// Routes returns the full pipeline: recovery, request id, access log, rate
// limit, security headers, body limit, then route dispatch. Protected routes
// add the auth gateway.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	h.handle(mux, "POST /register", http.HandlerFunc(h.register))
	h.handle(mux, "POST /login", http.HandlerFunc(h.login))
	h.handle(mux, "GET /users", h.requireAuth(http.HandlerFunc(h.listUsers)))
	h.handle(mux, "PUT /users/{id}", h.requireAuth(http.HandlerFunc(h.updateUser)))
	h.handle(mux, "DELETE /users/{id}", h.requireAuth(http.HandlerFunc(h.deleteUser)))

	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}

	return chain(mux,
		h.recoverer,
		h.requestID,
		h.accessLog,
		h.rateLimit,
		securityHeaders,
		h.bodyLimit,
	)
}

func (h *Handler) handle(mux *http.ServeMux, pattern string, handler http.Handler) {
	if h.metrics != nil {
		handler = h.metrics.Instrument(pattern, handler)
	}
	mux.Handle(pattern, handler)
}
