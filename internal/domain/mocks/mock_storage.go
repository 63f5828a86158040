package mocks

import (
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

// MockStorage is a mock of Storage interface
type MockStorage struct {
	ctrl     *gomock.Controller
	recorder *MockStorageMockRecorder
}

// MockStorageMockRecorder is the mock recorder for MockStorage
type MockStorageMockRecorder struct {
	mock *MockStorage
}

// NewMockStorage creates a new mock instance
func NewMockStorage(ctrl *gomock.Controller) *MockStorage {
	mock := &MockStorage{ctrl: ctrl}
	mock.recorder = &MockStorageMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockStorage) EXPECT() *MockStorageMockRecorder {
	return m.recorder
}

// Content mocks base method
func (m *MockStorage) Content() domain.ContentRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Content")
	ret0, _ := ret[0].(domain.ContentRepository)
	return ret0
}

// Content indicates an expected call of Content
func (mr *MockStorageMockRecorder) Content() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Content", reflect.TypeOf((*MockStorage)(nil).Content))
}

// Menu mocks base method
func (m *MockStorage) Menu() domain.MenuItemRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Menu")
	ret0, _ := ret[0].(domain.MenuItemRepository)
	return ret0
}

// Menu indicates an expected call of Menu
func (mr *MockStorageMockRecorder) Menu() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Menu", reflect.TypeOf((*MockStorage)(nil).Menu))
}

// Categories mocks base method
func (m *MockStorage) Categories() domain.CategoryRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Categories")
	ret0, _ := ret[0].(domain.CategoryRepository)
	return ret0
}

// Categories indicates an expected call of Categories
func (mr *MockStorageMockRecorder) Categories() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Categories", reflect.TypeOf((*MockStorage)(nil).Categories))
}

// Reservations mocks base method
func (m *MockStorage) Reservations() domain.ReservationRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reservations")
	ret0, _ := ret[0].(domain.ReservationRepository)
	return ret0
}

// Reservations indicates an expected call of Reservations
func (mr *MockStorageMockRecorder) Reservations() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reservations", reflect.TypeOf((*MockStorage)(nil).Reservations))
}

// Messages mocks base method
func (m *MockStorage) Messages() domain.MessageRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Messages")
	ret0, _ := ret[0].(domain.MessageRepository)
	return ret0
}

// Messages indicates an expected call of Messages
func (mr *MockStorageMockRecorder) Messages() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Messages", reflect.TypeOf((*MockStorage)(nil).Messages))
}

// Users mocks base method
func (m *MockStorage) Users() domain.UserRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Users")
	ret0, _ := ret[0].(domain.UserRepository)
	return ret0
}

// Users indicates an expected call of Users
func (mr *MockStorageMockRecorder) Users() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Users", reflect.TypeOf((*MockStorage)(nil).Users))
}

// Images mocks base method
func (m *MockStorage) Images() domain.ImageRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Images")
	ret0, _ := ret[0].(domain.ImageRepository)
	return ret0
}

// Images indicates an expected call of Images
func (mr *MockStorageMockRecorder) Images() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Images", reflect.TypeOf((*MockStorage)(nil).Images))
}

// Visitors mocks base method
func (m *MockStorage) Visitors() domain.VisitorRepository {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Visitors")
	ret0, _ := ret[0].(domain.VisitorRepository)
	return ret0
}

// Visitors indicates an expected call of Visitors
func (mr *MockStorageMockRecorder) Visitors() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Visitors", reflect.TypeOf((*MockStorage)(nil).Visitors))
}

// Close mocks base method
func (m *MockStorage) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close
func (mr *MockStorageMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockStorage)(nil).Close))
}
