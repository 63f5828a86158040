package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

// MockMenuItemRepository is a mock of MenuItemRepository interface
type MockMenuItemRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMenuItemRepositoryMockRecorder
}

// MockMenuItemRepositoryMockRecorder is the mock recorder for MockMenuItemRepository
type MockMenuItemRepositoryMockRecorder struct {
	mock *MockMenuItemRepository
}

// NewMockMenuItemRepository creates a new mock instance
func NewMockMenuItemRepository(ctrl *gomock.Controller) *MockMenuItemRepository {
	mock := &MockMenuItemRepository{ctrl: ctrl}
	mock.recorder = &MockMenuItemRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMenuItemRepository) EXPECT() *MockMenuItemRepositoryMockRecorder {
	return m.recorder
}

// List mocks base method
func (m *MockMenuItemRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx)
	ret0, _ := ret[0].([]*domain.MenuItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockMenuItemRepositoryMockRecorder) List(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockMenuItemRepository)(nil).List), ctx)
}

// Get mocks base method
func (m *MockMenuItemRepository) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*domain.MenuItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockMenuItemRepositoryMockRecorder) Get(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockMenuItemRepository)(nil).Get), ctx, id)
}

// Create mocks base method
func (m *MockMenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, item)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockMenuItemRepositoryMockRecorder) Create(ctx, item interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockMenuItemRepository)(nil).Create), ctx, item)
}

// Update mocks base method
func (m *MockMenuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, item)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockMenuItemRepositoryMockRecorder) Update(ctx, item interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockMenuItemRepository)(nil).Update), ctx, item)
}

// Delete mocks base method
func (m *MockMenuItemRepository) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockMenuItemRepositoryMockRecorder) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockMenuItemRepository)(nil).Delete), ctx, id)
}
