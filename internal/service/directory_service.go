package service

import (
	"context"
	"strings"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/remote"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// RoleAll disables the role filter of the user list.
const RoleAll = "All"

// DirectoryAPI is the part of the remote API the admin directory screens use.
type DirectoryAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, in remote.UserInput) (string, error)
	UpdateUser(ctx context.Context, id string, in remote.UserInput) error
	DeleteUser(ctx context.Context, id string) error

	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	CreateVendor(ctx context.Context, in remote.VendorInput) error
	UpdateVendorShop(ctx context.Context, id string, addr domain.ShopAddress) error
	SetVendorServices(ctx context.Context, id string, serviceIDs []string) error
	VendorsByService(ctx context.Context, serviceID string) ([]domain.Vendor, error)

	ListServices(ctx context.Context) ([]domain.Service, error)
	CreateService(ctx context.Context, in remote.ServiceInput) error
	UpdateService(ctx context.Context, id string, in remote.ServiceInput) error
	DeleteService(ctx context.Context, id string) error
}

// UserFilter narrows the user list.
type UserFilter struct {
	Role   string
	Search string
}

// CreatedUser reports a new account. NeedsVendorDetails asks the caller to
// follow up with CreateVendor for the returned id.
type CreatedUser struct {
	ID                 string
	NeedsVendorDetails bool
}

// DirectoryService backs the admin users, vendors and services screens.
type DirectoryService struct{}

// NewDirectoryService builds the service.
func NewDirectoryService() *DirectoryService {
	return &DirectoryService{}
}

// ListUsers returns the accounts matching filter.
func (s *DirectoryService) ListUsers(ctx context.Context, api DirectoryAPI, filter UserFilter) ([]domain.User, error) {
	if filter.Role != "" && filter.Role != RoleAll && !domain.Role(filter.Role).Valid() {
		return nil, apperrors.NewValidationError("unknown role filter", map[string]any{"role": filter.Role})
	}
	users, err := api.ListUsers(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	return FilterUsers(users, filter), nil
}

// FilterUsers keeps users whose role matches and whose name or email
// contains the search text, ignoring case.
func FilterUsers(users []domain.User, filter UserFilter) []domain.User {
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && filter.Role != RoleAll && string(u.Role) != filter.Role {
			continue
		}
		if needle != "" && !containsFold(u.Name, needle) && !containsFold(u.Email, needle) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// CreateUser registers an account.
func (s *DirectoryService) CreateUser(ctx context.Context, api DirectoryAPI, in remote.UserInput) (*CreatedUser, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}
	if !in.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be Admin, Agent or Vendor", map[string]any{"role": in.Role})
	}

	id, err := api.CreateUser(ctx, in)
	if err != nil {
		return nil, upstreamError(err)
	}
	return &CreatedUser{ID: id, NeedsVendorDetails: in.Role == domain.RoleVendor && id != ""}, nil
}

// UpdateUser edits an account. The role is never changed here.
func (s *DirectoryService) UpdateUser(ctx context.Context, api DirectoryAPI, id string, in remote.UserInput) error {
	if id == "" {
		return apperrors.NewValidationError("user id required", nil)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return apperrors.NewValidationError("name and email required", nil)
	}
	in.Role = ""
	return upstreamError(api.UpdateUser(ctx, id, in))
}

// DeleteUser removes an account.
func (s *DirectoryService) DeleteUser(ctx context.Context, api DirectoryAPI, id string) error {
	if id == "" {
		return apperrors.NewValidationError("user id required", nil)
	}
	return upstreamError(api.DeleteUser(ctx, id))
}

// ListVendors returns vendors whose account name or email contains search.
func (s *DirectoryService) ListVendors(ctx context.Context, api DirectoryAPI, search string) ([]domain.Vendor, error) {
	vendors, err := api.ListVendors(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return vendors, nil
	}
	out := make([]domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if v.User != nil && (containsFold(v.User.Name, needle) || containsFold(v.User.Email, needle)) {
			out = append(out, v)
		}
	}
	return out, nil
}

// CreateVendor attaches vendor details to a Vendor-role account.
func (s *DirectoryService) CreateVendor(ctx context.Context, api DirectoryAPI, in remote.VendorInput) error {
	if in.User == "" {
		return apperrors.NewValidationError("vendor user id required", nil)
	}
	if !in.ShopAddress.Complete() {
		return incompleteAddress()
	}
	return upstreamError(api.CreateVendor(ctx, in))
}

// UpdateVendorShop replaces a vendor's shop address.
func (s *DirectoryService) UpdateVendorShop(ctx context.Context, api DirectoryAPI, id string, addr domain.ShopAddress) error {
	if id == "" {
		return apperrors.NewValidationError("vendor id required", nil)
	}
	if !addr.Complete() {
		return incompleteAddress()
	}
	return upstreamError(api.UpdateVendorShop(ctx, id, addr))
}

// SetVendorServices replaces the services a vendor provides.
func (s *DirectoryService) SetVendorServices(ctx context.Context, api DirectoryAPI, id string, serviceIDs []string) error {
	if id == "" {
		return apperrors.NewValidationError("vendor id required", nil)
	}
	return upstreamError(api.SetVendorServices(ctx, id, dedupe(serviceIDs)))
}

// VendorsByService returns the vendors offering a service.
func (s *DirectoryService) VendorsByService(ctx context.Context, api DirectoryAPI, serviceID string) ([]domain.Vendor, error) {
	if serviceID == "" {
		return nil, apperrors.NewValidationError("service id required", nil)
	}
	vendors, err := api.VendorsByService(ctx, serviceID)
	return vendors, upstreamError(err)
}

// ListServices returns catalog entries whose name or description contains
// search.
func (s *DirectoryService) ListServices(ctx context.Context, api DirectoryAPI, search string) ([]domain.Service, error) {
	services, err := api.ListServices(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return services, nil
	}
	out := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		if containsFold(svc.Name, needle) || containsFold(svc.Description, needle) {
			out = append(out, svc)
		}
	}
	return out, nil
}

// CreateService adds a catalog entry.
func (s *DirectoryService) CreateService(ctx context.Context, api DirectoryAPI, in remote.ServiceInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperrors.NewValidationError("service name required", nil)
	}
	return upstreamError(api.CreateService(ctx, in))
}

// UpdateService edits a catalog entry.
func (s *DirectoryService) UpdateService(ctx context.Context, api DirectoryAPI, id string, in remote.ServiceInput) error {
	if id == "" {
		return apperrors.NewValidationError("service id required", nil)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperrors.NewValidationError("service name required", nil)
	}
	return upstreamError(api.UpdateService(ctx, id, in))
}

// DeleteService removes a catalog entry.
func (s *DirectoryService) DeleteService(ctx context.Context, api DirectoryAPI, id string) error {
	if id == "" {
		return apperrors.NewValidationError("service id required", nil)
	}
	return upstreamError(api.DeleteService(ctx, id))
}

func incompleteAddress() error {
	return apperrors.NewValidationError("address line 1, city, state and zip code are required", nil)
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
