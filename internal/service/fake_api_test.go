package service

import (
	"context"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/remote"
)

type fakeAPI struct {
	users    []domain.User
	vendors  []domain.Vendor
	services []domain.Service
	orders   []domain.Order
	summary  *domain.OrderSummary
	me       *domain.User
	err      error

	createdUser    remote.UserInput
	createdID      string
	updatedUser    remote.UserInput
	createdVendor  remote.VendorInput
	shop           domain.ShopAddress
	serviceIDs     []string
	createdService remote.ServiceInput
	deleted        []string
}

func (f *fakeAPI) ListUsers(context.Context) ([]domain.User, error) { return f.users, f.err }

func (f *fakeAPI) CreateUser(_ context.Context, in remote.UserInput) (string, error) {
	f.createdUser = in
	return f.createdID, f.err
}

func (f *fakeAPI) UpdateUser(_ context.Context, _ string, in remote.UserInput) error {
	f.updatedUser = in
	return f.err
}

func (f *fakeAPI) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeAPI) ListVendors(context.Context) ([]domain.Vendor, error) { return f.vendors, f.err }

func (f *fakeAPI) CreateVendor(_ context.Context, in remote.VendorInput) error {
	f.createdVendor = in
	return f.err
}

func (f *fakeAPI) UpdateVendorShop(_ context.Context, _ string, addr domain.ShopAddress) error {
	f.shop = addr
	return f.err
}

func (f *fakeAPI) SetVendorServices(_ context.Context, _ string, ids []string) error {
	f.serviceIDs = ids
	return f.err
}

func (f *fakeAPI) VendorsByService(context.Context, string) ([]domain.Vendor, error) {
	return f.vendors, f.err
}

func (f *fakeAPI) ListServices(context.Context) ([]domain.Service, error) { return f.services, f.err }

func (f *fakeAPI) CreateService(_ context.Context, in remote.ServiceInput) error {
	f.createdService = in
	return f.err
}

func (f *fakeAPI) UpdateService(_ context.Context, _ string, in remote.ServiceInput) error {
	f.createdService = in
	return f.err
}

func (f *fakeAPI) DeleteService(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeAPI) MyOrders(context.Context) ([]domain.Order, error) { return f.orders, f.err }

func (f *fakeAPI) OrderSummary(context.Context) (*domain.OrderSummary, error) {
	return f.summary, f.err
}

func (f *fakeAPI) LoggedUser(context.Context) (*domain.User, error) { return f.me, f.err }
