package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidArgument, "invalid spec")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidArgument, err.Code)
	suite.Equal("invalid spec", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidArgument, "invalid spec: %s", "@-1")
	suite.Equal("invalid spec: @-1", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("connection reset")
	err := Wrapf(ErrCodeAccountUnavailable, cause, "failed to read balance for %s", "BTCUSDT")
	suite.Equal(ErrCodeAccountUnavailable, err.Code)
	suite.Equal("failed to read balance for BTCUSDT", err.Message)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestErrorString() {
	suite.Equal("[100] invalid spec", New(ErrCodeInvalidArgument, "invalid spec").Error())

	err := Wrap(ErrCodeAccountUnavailable, "balance", errors.New("boom"))
	suite.Equal("[200] balance: boom", err.Error())
}

func (suite *ErrorTestSuite) TestGetCode() {
	cause := New(ErrCodeAccountUnavailable, "balance")
	err := Wrap(ErrCodeOrderFailed, "create order", cause)
	// outermost code wins
	suite.Equal(ErrCodeOrderFailed, GetCode(err))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.True(HasCode(err, ErrCodeOrderFailed))
	suite.False(HasCode(err, ErrCodeAccountUnavailable))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := InvalidArgumentf("bad %s", "spec")
	var typed *Error
	suite.True(As(err, &typed))
	suite.Equal(ErrCodeInvalidArgument, typed.Code)
	suite.Equal("bad spec", typed.Message)
}

func (suite *ErrorTestSuite) TestWaitErrors() {
	timeout := NewWaitTimeout("orders still open")
	suite.True(Is(timeout, context.DeadlineExceeded))
	suite.True(HasCode(timeout, ErrCodeWaitTimeout))
	suite.True(IsWaitInterrupted(timeout))

	cancelled := NewWaitCancelled("backtesting")
	suite.True(Is(cancelled, context.Canceled))
	suite.True(IsWaitInterrupted(cancelled))

	suite.False(IsWaitInterrupted(New(ErrCodeInvalidArgument, "x")))
	suite.False(IsWaitInterrupted(nil))
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidArgument)
	suite.Equal(ErrorCode(200), ErrCodeAccountUnavailable)
	suite.Equal(ErrorCode(500), ErrCodeOrderFailed)
	suite.Equal(ErrorCode(501), ErrCodeZeroOrderSize)
	suite.Equal(ErrorCode(600), ErrCodeWaitTimeout)
	suite.Equal(ErrorCode(601), ErrCodeWaitCancelled)
}
