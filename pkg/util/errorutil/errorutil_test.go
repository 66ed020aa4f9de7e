package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("listing: %w", NewUnauthorized("no"))
	assert.Equal(t, "UNAUTHORIZED", ToDomainError(wrapped).Code)

	fe := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /x"))
	assert.Equal(t, "NOT_FOUND", fe.Code)
	assert.Equal(t, http.StatusNotFound, fe.HTTPStatus)
	assert.Equal(t, "Cannot GET /x", fe.Message)

	internal := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
}

func TestNewUpstreamRejected(t *testing.T) {
	cause := errors.New("remote api: 401")
	err := ToDomainError(NewUpstreamRejected(http.StatusUnauthorized, "Invalid credentials", cause))
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
	assert.Equal(t, "Invalid credentials", err.Message)
	assert.ErrorIs(t, err, cause)

	err = ToDomainError(NewUpstreamRejected(http.StatusInternalServerError, "", nil))
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Equal(t, "Bad Gateway", err.Message)
}

func TestUpstreamFailuresUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewUpstreamUnavailable(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, ToDomainError(err).HTTPStatus)
	assert.Equal(t, "MALFORMED_RESPONSE", ToDomainError(NewMalformedResponse(cause)).Code)
}
