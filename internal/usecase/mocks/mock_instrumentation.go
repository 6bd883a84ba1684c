//	mockgen -source=internal/usecase/interfaces.go -destination=internal/usecase/mocks/mock_instrumentation.go -package=mocks Instrumentation
//

// Package mocks is a generated GoMock package.
package mocks

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockInstrumentation is a mock of Instrumentation interface.
type MockInstrumentation struct {
	ctrl     *gomock.Controller
	recorder *MockInstrumentationMockRecorder
	isgomock struct{}
}

// MockInstrumentationMockRecorder is the mock recorder for MockInstrumentation.
type MockInstrumentationMockRecorder struct {
	mock *MockInstrumentation
}

// NewMockInstrumentation creates a new mock instance.
func NewMockInstrumentation(ctrl *gomock.Controller) *MockInstrumentation {
	mock := &MockInstrumentation{ctrl: ctrl}
	mock.recorder = &MockInstrumentationMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockInstrumentation) EXPECT() *MockInstrumentationMockRecorder {
	return m.recorder
}

// PostingRecorded mocks base method.
func (m *MockInstrumentation) PostingRecorded(event string, entryCount int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "PostingRecorded", event, entryCount)
}

// PostingRecorded indicates an expected call of PostingRecorded.
func (mr *MockInstrumentationMockRecorder) PostingRecorded(event, entryCount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PostingRecorded", reflect.TypeOf((*MockInstrumentation)(nil).PostingRecorded), event, entryCount)
}

// ReversalRecorded mocks base method.
func (m *MockInstrumentation) ReversalRecorded(event string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ReversalRecorded", event)
}

// ReversalRecorded indicates an expected call of ReversalRecorded.
func (mr *MockInstrumentationMockRecorder) ReversalRecorded(event any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReversalRecorded", reflect.TypeOf((*MockInstrumentation)(nil).ReversalRecorded), event)
}
