// Package mocks provides a testify-based mock of store.ListingStore for
// engine and handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tabadul/exchange-engine/internal/store"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// MockListingStore is a mock implementation of store.ListingStore.
type MockListingStore struct {
	mock.Mock
}

// NewMockListingStore creates a mock wired into the test's cleanup and
// assertion lifecycle.
func NewMockListingStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockListingStore {
	m := &MockListingStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockListingStore) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingStore) QueryByCategory(
	ctx context.Context,
	q store.CategoryQuery,
) ([]domain.Listing, error) {
	args := m.Called(ctx, q)
	if l := args.Get(0); l != nil {
		return l.([]domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingStore) QueryByTradeMode(
	ctx context.Context,
	q store.TradeModeQuery,
) ([]domain.Listing, error) {
	args := m.Called(ctx, q)
	if l := args.Get(0); l != nil {
		return l.([]domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingStore) QueryByTextMatch(
	ctx context.Context,
	q store.TextMatchQuery,
) ([]domain.Listing, error) {
	args := m.Called(ctx, q)
	if l := args.Get(0); l != nil {
		return l.([]domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockListingStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
