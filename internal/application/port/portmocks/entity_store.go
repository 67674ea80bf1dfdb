// Package portmocks provides testify-based test doubles for the application
// ports.
package portmocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/hoard/internal/domain/entity"
)

// EntityStore is a mock port.EntityStore for exercising store failure paths.
type EntityStore struct {
	mock.Mock
}

func NewEntityStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *EntityStore {
	m := &EntityStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EntityStore) Get(ctx context.Context, id string) (*entity.Entity, error) {
	args := m.Called(ctx, id)
	var e *entity.Entity
	if v := args.Get(0); v != nil {
		e = v.(*entity.Entity)
	}
	return e, args.Error(1)
}

func (m *EntityStore) Put(ctx context.Context, e *entity.Entity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EntityStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EntityStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
