package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TokenHeader carries the encrypted token on inbound requests.
const TokenHeader = "x-auth-token"

const principalKey = "auth_principal"

// OutcomeRecorder counts token validation results.
type OutcomeRecorder interface {
	RecordTokenOutcome(valid bool)
}

// Interceptor binds a principal to every request that carries a valid token.
// It never rejects a request; guards further down the chain do that.
type Interceptor struct {
	authenticator *Authenticator
	logger        *zap.Logger
	recorder      OutcomeRecorder
}

// NewInterceptor constructs the middleware. recorder may be nil.
func NewInterceptor(authenticator *Authenticator, logger *zap.Logger, recorder OutcomeRecorder) *Interceptor {
	return &Interceptor{authenticator: authenticator, logger: logger, recorder: recorder}
}

// Handle is registered ahead of routing for every request.
func (i *Interceptor) Handle(c *fiber.Ctx) error {
	token := c.Get(TokenHeader)
	if token == "" {
		return c.Next()
	}

	outcome := i.authenticator.Authenticate(token)
	if i.recorder != nil {
		i.recorder.RecordTokenOutcome(outcome.Valid())
	}
	if !outcome.Valid() {
		// token contents stay out of the logs
		i.logger.Debug("token rejected",
			zap.String("path", c.Path()),
			zap.NamedError("reason", outcome.Reason),
		)
		return c.Next()
	}

	c.Locals(principalKey, outcome.Principal)
	c.SetUserContext(WithPrincipal(c.UserContext(), outcome.Principal))
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal of the request.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}
