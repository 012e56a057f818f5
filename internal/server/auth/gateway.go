package auth

import (
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// TokenVerifier is the part of TokenService the gateway depends on.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Gateway turns an Authorization header into a caller identity and applies
// the authorization rules that depend on it.
type Gateway struct {
	tokens TokenVerifier
}

func NewGateway(tokens TokenVerifier) *Gateway {
	return &Gateway{tokens: tokens}
}

// Authenticate returns common.ErrNoToken for an empty header and
// common.ErrInvalidToken (possibly wrapped) when verification fails. A
// leading "Bearer " is stripped; a header without it is tried as is.
func (g *Gateway) Authenticate(header string) (*Claims, error) {
	if header == "" {
		return nil, common.ErrNoToken
	}

	token := strings.TrimPrefix(header, common.BearerPrefix)

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// AuthorizeSelfOnly allows the operation only when the caller is the target.
func (g *Gateway) AuthorizeSelfOnly(identity *Claims, targetUserID int) error {
	if identity == nil || identity.UserID != targetUserID {
		return common.ErrForbidden
	}
	return nil
}
