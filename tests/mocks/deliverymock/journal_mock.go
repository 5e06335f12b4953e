/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package deliverymock provides a testify mock of the delivery journal.
package deliverymock

import (
	delivery "github.com/asgardeo/conduit/internal/delivery"
	mock "github.com/stretchr/testify/mock"
)

// JournalInterfaceMock is an autogenerated mock type for the JournalInterface type
type JournalInterfaceMock struct {
	mock.Mock
}

type JournalInterfaceMock_Expecter struct {
	mock *mock.Mock
}

func (_m *JournalInterfaceMock) EXPECT() *JournalInterfaceMock_Expecter {
	return &JournalInterfaceMock_Expecter{mock: &_m.Mock}
}

// ListByDestination provides a mock function with given fields: destinationID, limit
func (_m *JournalInterfaceMock) ListByDestination(destinationID string, limit int) ([]delivery.Record, error) {
	ret := _m.Called(destinationID, limit)

	if len(ret) == 0 {
		panic("no return value specified for ListByDestination")
	}

	var r0 []delivery.Record
	var r1 error
	if rf, ok := ret.Get(0).(func(string, int) ([]delivery.Record, error)); ok {
		return rf(destinationID, limit)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]delivery.Record)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// JournalInterfaceMock_ListByDestination_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListByDestination'
type JournalInterfaceMock_ListByDestination_Call struct {
	*mock.Call
}

// ListByDestination is a helper method to define mock.On call
//   - destinationID string
//   - limit int
func (_e *JournalInterfaceMock_Expecter) ListByDestination(destinationID interface{}, limit interface{}) *JournalInterfaceMock_ListByDestination_Call {
	return &JournalInterfaceMock_ListByDestination_Call{Call: _e.mock.On("ListByDestination", destinationID, limit)}
}

func (_c *JournalInterfaceMock_ListByDestination_Call) Return(_a0 []delivery.Record, _a1 error) *JournalInterfaceMock_ListByDestination_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// Record provides a mock function with given fields: record
func (_m *JournalInterfaceMock) Record(record delivery.Record) (string, error) {
	ret := _m.Called(record)

	if len(ret) == 0 {
		panic("no return value specified for Record")
	}

	if rf, ok := ret.Get(0).(func(delivery.Record) (string, error)); ok {
		return rf(record)
	}
	return ret.String(0), ret.Error(1)
}

// JournalInterfaceMock_Record_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Record'
type JournalInterfaceMock_Record_Call struct {
	*mock.Call
}

// Record is a helper method to define mock.On call
//   - record delivery.Record
func (_e *JournalInterfaceMock_Expecter) Record(record interface{}) *JournalInterfaceMock_Record_Call {
	return &JournalInterfaceMock_Record_Call{Call: _e.mock.On("Record", record)}
}

func (_c *JournalInterfaceMock_Record_Call) Run(run func(record delivery.Record)) *JournalInterfaceMock_Record_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(delivery.Record))
	})
	return _c
}

func (_c *JournalInterfaceMock_Record_Call) Return(_a0 string, _a1 error) *JournalInterfaceMock_Record_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// NewJournalInterfaceMock creates a new instance of JournalInterfaceMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewJournalInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *JournalInterfaceMock {
	mock := &JournalInterfaceMock{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
