package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/oseiserwaa/kitchen/internal/domain"
)

// MockVisitorRepository is a mock of VisitorRepository interface
type MockVisitorRepository struct {
	ctrl     *gomock.Controller
	recorder *MockVisitorRepositoryMockRecorder
}

// MockVisitorRepositoryMockRecorder is the mock recorder for MockVisitorRepository
type MockVisitorRepositoryMockRecorder struct {
	mock *MockVisitorRepository
}

// NewMockVisitorRepository creates a new mock instance
func NewMockVisitorRepository(ctrl *gomock.Controller) *MockVisitorRepository {
	mock := &MockVisitorRepository{ctrl: ctrl}
	mock.recorder = &MockVisitorRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockVisitorRepository) EXPECT() *MockVisitorRepositoryMockRecorder {
	return m.recorder
}

// RecordVisit mocks base method
func (m *MockVisitorRepository) RecordVisit(ctx context.Context, log *domain.VisitorLog, day string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordVisit", ctx, log, day)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RecordVisit indicates an expected call of RecordVisit
func (mr *MockVisitorRepositoryMockRecorder) RecordVisit(ctx, log, day interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordVisit", reflect.TypeOf((*MockVisitorRepository)(nil).RecordVisit), ctx, log, day)
}

// GetTotal mocks base method
func (m *MockVisitorRepository) GetTotal(ctx context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTotal", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTotal indicates an expected call of GetTotal
func (mr *MockVisitorRepositoryMockRecorder) GetTotal(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTotal", reflect.TypeOf((*MockVisitorRepository)(nil).GetTotal), ctx)
}

// SumDaily mocks base method
func (m *MockVisitorRepository) SumDaily(ctx context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SumDaily", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SumDaily indicates an expected call of SumDaily
func (mr *MockVisitorRepositoryMockRecorder) SumDaily(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SumDaily", reflect.TypeOf((*MockVisitorRepository)(nil).SumDaily), ctx)
}

// ResetTotal mocks base method
func (m *MockVisitorRepository) ResetTotal(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResetTotal", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// ResetTotal indicates an expected call of ResetTotal
func (mr *MockVisitorRepositoryMockRecorder) ResetTotal(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetTotal", reflect.TypeOf((*MockVisitorRepository)(nil).ResetTotal), ctx)
}

// DailyCounts mocks base method
func (m *MockVisitorRepository) DailyCounts(ctx context.Context, since string) ([]domain.DailyVisitorCount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DailyCounts", ctx, since)
	ret0, _ := ret[0].([]domain.DailyVisitorCount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DailyCounts indicates an expected call of DailyCounts
func (mr *MockVisitorRepositoryMockRecorder) DailyCounts(ctx, since interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DailyCounts", reflect.TypeOf((*MockVisitorRepository)(nil).DailyCounts), ctx, since)
}

// RecentLogs mocks base method
func (m *MockVisitorRepository) RecentLogs(ctx context.Context, limit int) ([]domain.VisitorLog, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecentLogs", ctx, limit)
	ret0, _ := ret[0].([]domain.VisitorLog)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RecentLogs indicates an expected call of RecentLogs
func (mr *MockVisitorRepositoryMockRecorder) RecentLogs(ctx, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecentLogs", reflect.TypeOf((*MockVisitorRepository)(nil).RecentLogs), ctx, limit)
}
