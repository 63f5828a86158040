package mocks

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

// MockContentRepository is a mock of ContentRepository interface
type MockContentRepository struct {
	ctrl     *gomock.Controller
	recorder *MockContentRepositoryMockRecorder
}

// MockContentRepositoryMockRecorder is the mock recorder for MockContentRepository
type MockContentRepositoryMockRecorder struct {
	mock *MockContentRepository
}

// NewMockContentRepository creates a new mock instance
func NewMockContentRepository(ctrl *gomock.Controller) *MockContentRepository {
	mock := &MockContentRepository{ctrl: ctrl}
	mock.recorder = &MockContentRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockContentRepository) EXPECT() *MockContentRepositoryMockRecorder {
	return m.recorder
}

// Get mocks base method
func (m *MockContentRepository) Get(ctx context.Context, key string) (*domain.ContentDocument, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].(*domain.ContentDocument)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockContentRepositoryMockRecorder) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockContentRepository)(nil).Get), ctx, key)
}

// Save mocks base method
func (m *MockContentRepository) Save(ctx context.Context, doc *domain.ContentDocument, collections map[string][]json.RawMessage) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, doc, collections)
	ret0, _ := ret[0].(error)
	return ret0
}

// Save indicates an expected call of Save
func (mr *MockContentRepositoryMockRecorder) Save(ctx, doc, collections interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockContentRepository)(nil).Save), ctx, doc, collections)
}

// SaveIfAbsent mocks base method
func (m *MockContentRepository) SaveIfAbsent(ctx context.Context, doc *domain.ContentDocument, collections map[string][]json.RawMessage) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveIfAbsent", ctx, doc, collections)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SaveIfAbsent indicates an expected call of SaveIfAbsent
func (mr *MockContentRepositoryMockRecorder) SaveIfAbsent(ctx, doc, collections interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveIfAbsent", reflect.TypeOf((*MockContentRepository)(nil).SaveIfAbsent), ctx, doc, collections)
}

// ListItems mocks base method
func (m *MockContentRepository) ListItems(ctx context.Context, key string, collection string) ([]json.RawMessage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListItems", ctx, key, collection)
	ret0, _ := ret[0].([]json.RawMessage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListItems indicates an expected call of ListItems
func (mr *MockContentRepositoryMockRecorder) ListItems(ctx, key, collection interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListItems", reflect.TypeOf((*MockContentRepository)(nil).ListItems), ctx, key, collection)
}

// Snapshot mocks base method
func (m *MockContentRepository) Snapshot(ctx context.Context, key string, collections []string) (*domain.ContentDocument, map[string][]json.RawMessage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Snapshot", ctx, key, collections)
	ret0, _ := ret[0].(*domain.ContentDocument)
	ret1, _ := ret[1].(map[string][]json.RawMessage)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Snapshot indicates an expected call of Snapshot
func (mr *MockContentRepositoryMockRecorder) Snapshot(ctx, key, collections interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Snapshot", reflect.TypeOf((*MockContentRepository)(nil).Snapshot), ctx, key, collections)
}

// Delete mocks base method
func (m *MockContentRepository) Delete(ctx context.Context, key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, key)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockContentRepositoryMockRecorder) Delete(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockContentRepository)(nil).Delete), ctx, key)
}

// List mocks base method
func (m *MockContentRepository) List(ctx context.Context) ([]*domain.ContentDocument, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx)
	ret0, _ := ret[0].([]*domain.ContentDocument)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockContentRepositoryMockRecorder) List(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockContentRepository)(nil).List), ctx)
}
