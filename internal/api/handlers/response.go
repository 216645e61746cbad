package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/ai"
	"github.com/quangdm/finvi/internal/api/middleware"
	"github.com/quangdm/finvi/internal/auth"
	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/market"
)

// Envelope is the uniform response shape of every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// fail maps domain errors onto HTTP statuses: validation to 400, missing
// entities to 404, credential problems to 401, duplicate accounts to 409
// and upstream (AI, market data) trouble to 502.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case finance.IsValidation(err), errors.Is(err, market.ErrUnsupportedClass):
		status = http.StatusBadRequest
	case errors.Is(err, finance.ErrNotFound), errors.Is(err, market.ErrUnknownSymbol):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrUserExists):
		status = http.StatusConflict
	case errors.Is(err, ai.ErrUnavailable), errors.Is(err, ai.ErrUnparseable), errors.Is(err, market.ErrUnavailable):
		status = http.StatusBadGateway
	}
	c.JSON(status, Envelope{Success: false, Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
}

// storeFor resolves the authenticated user's financial store.
func storeFor(c *gin.Context, stores *finance.Manager) (*finance.Store, bool) {
	store, err := stores.StoreFor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return store, true
}
