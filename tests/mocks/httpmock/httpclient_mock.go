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

// Package httpmock provides a testify mock of the outbound HTTP client.
package httpmock

import (
	http "net/http"

	mock "github.com/stretchr/testify/mock"
)

// HTTPClientInterfaceMock is an autogenerated mock type for the HTTPClientInterface type
type HTTPClientInterfaceMock struct {
	mock.Mock
}

type HTTPClientInterfaceMock_Expecter struct {
	mock *mock.Mock
}

func (_m *HTTPClientInterfaceMock) EXPECT() *HTTPClientInterfaceMock_Expecter {
	return &HTTPClientInterfaceMock_Expecter{mock: &_m.Mock}
}

// Do provides a mock function with given fields: req
func (_m *HTTPClientInterfaceMock) Do(req *http.Request) (*http.Response, error) {
	ret := _m.Called(req)

	if len(ret) == 0 {
		panic("no return value specified for Do")
	}

	var r0 *http.Response
	var r1 error
	if rf, ok := ret.Get(0).(func(*http.Request) (*http.Response, error)); ok {
		return rf(req)
	}
	if rf, ok := ret.Get(0).(func(*http.Request) *http.Response); ok {
		r0 = rf(req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*http.Response)
		}
	}

	if rf, ok := ret.Get(1).(func(*http.Request) error); ok {
		r1 = rf(req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// HTTPClientInterfaceMock_Do_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Do'
type HTTPClientInterfaceMock_Do_Call struct {
	*mock.Call
}

// Do is a helper method to define mock.On call
//   - req *http.Request
func (_e *HTTPClientInterfaceMock_Expecter) Do(req interface{}) *HTTPClientInterfaceMock_Do_Call {
	return &HTTPClientInterfaceMock_Do_Call{Call: _e.mock.On("Do", req)}
}

func (_c *HTTPClientInterfaceMock_Do_Call) Run(run func(req *http.Request)) *HTTPClientInterfaceMock_Do_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(*http.Request))
	})
	return _c
}

func (_c *HTTPClientInterfaceMock_Do_Call) Return(_a0 *http.Response, _a1 error) *HTTPClientInterfaceMock_Do_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *HTTPClientInterfaceMock_Do_Call) RunAndReturn(run func(*http.Request) (*http.Response, error)) *HTTPClientInterfaceMock_Do_Call {
	_c.Call.Return(run)
	return _c
}

// NewHTTPClientInterfaceMock creates a new instance of HTTPClientInterfaceMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewHTTPClientInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *HTTPClientInterfaceMock {
	mock := &HTTPClientInterfaceMock{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
