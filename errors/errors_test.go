package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeExecutableNotFound, "cannot find the executable g.region")

	require.NotNil(t, err)
	require.Equal(t, CodeExecutableNotFound, err.Code())
	require.Equal(t, CategoryLaunch, err.Category())
	require.Equal(t, "cannot find the executable g.region", err.Message())
	require.Equal(t, "[EXECUTABLE_NOT_FOUND] cannot find the executable g.region", err.Error())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidMode, "unknown mode %q", "bogus")

	require.Equal(t, CodeInvalidMode, err.Code())
	require.Equal(t, `unknown mode "bogus"`, err.Message())
}

func TestDefaultCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want Category
	}{
		{CodeExecutableNotFound, CategoryLaunch},
		{CodeLaunchFailed, CategoryLaunch},
		{CodeInvocationFailed, CategoryInvocation},
		{CodeFatal, CategoryInvocation},
		{CodeTerminated, CategoryInvocation},
		{CodeInvalidMode, CategoryUsage},
		{CodeStreamProtocol, CategoryUsage},
		{CodeUnknownEncoding, CategoryUsage},
		{CodeInvalidConfig, CategoryConfig},
		{CodeConfigLoadFailed, CategoryConfig},
		{CodeDecodeFailed, CategoryInternal},
		{CodeUnknown, CategoryInternal},
		{ErrorCode("SOMETHING_ELSE"), CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, New(tt.code, "x").Category())
		})
	}
}

func TestCategory_CallerConfigurable(t *testing.T) {
	require.True(t, CategoryInvocation.CallerConfigurable())
	require.False(t, CategoryLaunch.CallerConfigurable())
	require.False(t, CategoryUsage.CallerConfigurable())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("exec format error")
	err := Wrap(cause, CodeLaunchFailed, "failed to start process")

	require.Equal(t, CodeLaunchFailed, err.Code())
	require.Equal(t, CategoryLaunch, err.Category())
	require.Equal(t, cause, err.Unwrap())
	require.True(t, Is(err, cause))
	require.Equal(t, "[LAUNCH_FAILED] failed to start process: exec format error", err.Error())
}

func TestWrap_Nil(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeLaunchFailed, "x"))
	require.Nil(t, Wrapf(nil, CodeLaunchFailed, "x %d", 1))
	require.Nil(t, WrapWithContext(nil, CodeLaunchFailed, "x", nil))
}

func TestWrapWithContext_CopiesMap(t *testing.T) {
	ctx := map[string]interface{}{"executable": "g.region"}
	err := WrapWithContext(stderrors.New("boom"), CodeLaunchFailed, "failed", ctx)

	ctx["executable"] = "mutated"
	require.Equal(t, "g.region", err.Context()["executable"])

	got := err.Context()
	got["executable"] = "mutated again"
	require.Equal(t, "g.region", err.Context()["executable"])
}

func TestWithContext(t *testing.T) {
	err := New(CodeLaunchFailed, "failed")
	err = WithContext(err, "executable", "g.region")
	err = WithContext(err, "pid", 0)

	ctx := err.Context()
	require.Len(t, ctx, 2)
	require.Equal(t, "g.region", ctx["executable"])
	require.Equal(t, CodeLaunchFailed, err.Code())
}

func TestWithContext_StandardError(t *testing.T) {
	std := stderrors.New("standard error")
	err := WithContext(std, "key", "value")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, CategoryInternal, err.Category())
	require.Equal(t, std, err.Unwrap())
	require.Nil(t, WithContext(nil, "key", "value"))
}

func TestWithCategory(t *testing.T) {
	err := WithCategory(New(CodeInternal, "x"), CategoryUsage)
	require.Equal(t, CategoryUsage, err.Category())
	require.Equal(t, CodeInternal, err.Code())
}

func TestHelpers(t *testing.T) {
	launch := New(CodeExecutableNotFound, "missing")
	wrapped := fmt.Errorf("outer: %w", launch)

	require.Equal(t, CodeExecutableNotFound, GetCode(wrapped))
	require.Equal(t, CategoryLaunch, GetCategory(wrapped))
	require.True(t, IsLaunch(wrapped))
	require.False(t, IsUsage(wrapped))
	require.False(t, IsInvocation(wrapped))

	require.Equal(t, CodeUnknown, GetCode(nil))
	require.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	require.False(t, IsLaunch(nil))

	require.True(t, IsUsage(New(CodeStreamProtocol, "x")))
	require.True(t, IsInvocation(New(CodeInvocationFailed, "x")))

	var platformErr PlatformError
	require.True(t, As(wrapped, &platformErr))
	require.Equal(t, "missing", platformErr.Message())
}

func TestToJSON(t *testing.T) {
	err := WithContext(New(CodeInvocationFailed, "g.region failed"), "exit_code", 2)
	resp := ToJSON(err)

	require.Equal(t, "INVOCATION_FAILED", resp.Code)
	require.Equal(t, "g.region failed", resp.Message)
	require.Equal(t, "INVOCATION", resp.Category)
	require.Equal(t, 2, resp.Context["exit_code"])

	require.Nil(t, ToJSON(nil))

	plain := ToJSON(stderrors.New("plain"))
	require.Equal(t, "UNKNOWN", plain.Code)
	require.Equal(t, "plain", plain.Message)
	require.Equal(t, "INTERNAL", plain.Category)
}

func TestMarshalJSON(t *testing.T) {
	err := New(CodeInvalidMode, "unknown mode")
	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	require.JSONEq(t, `{"code":"INVALID_MODE","message":"unknown mode","category":"USAGE"}`, string(data))
}
