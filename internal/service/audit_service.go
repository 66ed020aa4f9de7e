package service

import (
	"context"
	"errors"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditService reads the session audit trail.
type AuditService struct {
	repo repository.AuditRepository
}

// NewAuditService builds the service.
func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Recent returns the newest audit entries, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	entries, err := s.repo.ListRecent(ctx, limit)
	if errors.Is(err, repository.ErrAuditDisabled) {
		return nil, apperrors.NewServiceUnavailable("session audit is not configured", err)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}
