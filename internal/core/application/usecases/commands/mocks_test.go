package commands_test

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/session"
	"postal/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// MockUoW scripts the transaction calls. Repository getters return whatever the
// test registers, usually repositories of a memory store.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

func (m *MockUoW) OperatorRepository() ports.OperatorRepository {
	args := m.Called()
	return args.Get(0).(ports.OperatorRepository)
}

func (m *MockUoW) DeliveryPointRepository() ports.DeliveryPointRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryPointRepository)
}

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthenticator) Register(ctx context.Context, admin session.Session, username, password, role string) error {
	args := m.Called(ctx, admin, username, password, role)
	return args.Error(0)
}

func (m *MockAuthenticator) ListUsers(ctx context.Context, admin session.Session) ([]ports.User, error) {
	args := m.Called(ctx, admin)
	users, _ := args.Get(0).([]ports.User)
	return users, args.Error(1)
}

func (m *MockAuthenticator) ChangeRole(ctx context.Context, admin session.Session, username, role string) error {
	args := m.Called(ctx, admin, username, role)
	return args.Error(0)
}

func (m *MockAuthenticator) ChangePassword(ctx context.Context, user session.Session, oldPassword, newPassword string) error {
	args := m.Called(ctx, user, oldPassword, newPassword)
	return args.Error(0)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Save(ctx context.Context, s session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id kernel.UUID) (session.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(session.Session)
	return s, args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
