package service

import (
	"errors"

	"github.com/spec-kit/admin-console/internal/remote"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// upstreamError translates remote client failures into domain errors.
func upstreamError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewUpstreamRejected(apiErr.Status, apiErr.Message, err)
	}
	var malformedErr *remote.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return apperrors.NewMalformedResponse(err)
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.NewUpstreamUnavailable(err)
}
