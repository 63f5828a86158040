package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

// MockImageRepository is a mock of ImageRepository interface
type MockImageRepository struct {
	ctrl     *gomock.Controller
	recorder *MockImageRepositoryMockRecorder
}

// MockImageRepositoryMockRecorder is the mock recorder for MockImageRepository
type MockImageRepositoryMockRecorder struct {
	mock *MockImageRepository
}

// NewMockImageRepository creates a new mock instance
func NewMockImageRepository(ctrl *gomock.Controller) *MockImageRepository {
	mock := &MockImageRepository{ctrl: ctrl}
	mock.recorder = &MockImageRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockImageRepository) EXPECT() *MockImageRepositoryMockRecorder {
	return m.recorder
}

// Get mocks base method
func (m *MockImageRepository) Get(ctx context.Context, id string) (*domain.UploadedImage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*domain.UploadedImage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockImageRepositoryMockRecorder) Get(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockImageRepository)(nil).Get), ctx, id)
}

// Create mocks base method
func (m *MockImageRepository) Create(ctx context.Context, img *domain.UploadedImage) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, img)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockImageRepositoryMockRecorder) Create(ctx, img interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockImageRepository)(nil).Create), ctx, img)
}

// Delete mocks base method
func (m *MockImageRepository) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockImageRepositoryMockRecorder) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockImageRepository)(nil).Delete), ctx, id)
}

// MockImageBlobStore is a mock of ImageBlobStore interface
type MockImageBlobStore struct {
	ctrl     *gomock.Controller
	recorder *MockImageBlobStoreMockRecorder
}

// MockImageBlobStoreMockRecorder is the mock recorder for MockImageBlobStore
type MockImageBlobStoreMockRecorder struct {
	mock *MockImageBlobStore
}

// NewMockImageBlobStore creates a new mock instance
func NewMockImageBlobStore(ctrl *gomock.Controller) *MockImageBlobStore {
	mock := &MockImageBlobStore{ctrl: ctrl}
	mock.recorder = &MockImageBlobStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockImageBlobStore) EXPECT() *MockImageBlobStoreMockRecorder {
	return m.recorder
}

// Store mocks base method
func (m *MockImageBlobStore) Store(ctx context.Context, img *domain.UploadedImage, payload []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Store", ctx, img, payload)
	ret0, _ := ret[0].(error)
	return ret0
}

// Store indicates an expected call of Store
func (mr *MockImageBlobStoreMockRecorder) Store(ctx, img, payload interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Store", reflect.TypeOf((*MockImageBlobStore)(nil).Store), ctx, img, payload)
}

// Remove mocks base method
func (m *MockImageBlobStore) Remove(ctx context.Context, img *domain.UploadedImage) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Remove", ctx, img)
	ret0, _ := ret[0].(error)
	return ret0
}

// Remove indicates an expected call of Remove
func (mr *MockImageBlobStoreMockRecorder) Remove(ctx, img interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Remove", reflect.TypeOf((*MockImageBlobStore)(nil).Remove), ctx, img)
}
