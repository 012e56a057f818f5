package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/metrics"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFromContext returns the claims of the verified caller.
func IdentityFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(identityKey).(*auth.Claims)
	return c, ok
}

// requireAuth rejects requests without a valid bearer token: 401 when the
// header is absent, 403 when the token does not verify.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.gateway.Authenticate(r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			log := logging.FromContext(r.Context(), h.logger)
			if errors.Is(err, common.ErrNoToken) {
				h.authFailure(metrics.ReasonNoToken)
				writeMessage(w, http.StatusUnauthorized, msgNoToken)
				return
			}
			log.Debug(r.Context(), "token rejected", "error", err.Error())
			h.authFailure(metrics.ReasonInvalidToken)
			writeMessage(w, http.StatusForbidden, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, claims)))
	})
}

func (h *Handler) authFailure(reason string) {
	if h.metrics != nil {
		h.metrics.AuthFailure(reason)
	}
}
