package policy

import (
	"bytes"
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Setters(t *testing.T) {
	s := NewState()

	assert.False(t, s.RaiseOnFatal())
	assert.False(t, s.SetRaiseOnFatal(true))
	assert.True(t, s.RaiseOnFatal())
	assert.True(t, s.SetRaiseOnFatal(false))

	assert.False(t, s.CaptureStderr())
	assert.False(t, s.SetCaptureStderr(true))
	assert.True(t, s.CaptureStderr())
	assert.True(t, s.SetCaptureStderr(true))
}

func TestState_Independent(t *testing.T) {
	a, b := NewState(), NewState()
	a.SetRaiseOnFatal(true)
	assert.False(t, b.RaiseOnFatal())
	assert.NotSame(t, a, Default())
}

func TestState_SetExit(t *testing.T) {
	s := NewState()
	var got int
	prev := s.SetExit(func(c int) { got = c })
	require.NotNil(t, prev)

	s.Exit(3)
	assert.Equal(t, 3, got)
}

func TestState_DebugLevelMemoized(t *testing.T) {
	s := NewState()
	calls := 0
	src := LevelSourceFunc(func(context.Context) (int, error) {
		calls++
		return 3, nil
	})

	assert.Equal(t, 3, s.DebugLevel(context.Background(), src, false))
	assert.Equal(t, 3, s.DebugLevel(context.Background(), src, false))
	assert.Equal(t, 1, calls)

	assert.Equal(t, 3, s.DebugLevel(context.Background(), src, true))
	assert.Equal(t, 2, calls)

	s.ResetDebugLevel()
	assert.Equal(t, 3, s.DebugLevel(context.Background(), src, false))
	assert.Equal(t, 3, calls)
}

func TestState_DebugLevelReentrant(t *testing.T) {
	s := NewState()
	var inner int
	src := LevelSourceFunc(func(ctx context.Context) (int, error) {
		inner = s.DebugLevel(ctx, nil, false)
		return 2, nil
	})

	assert.Equal(t, 2, s.DebugLevel(context.Background(), src, false))
	assert.Equal(t, 0, inner)
}

func TestState_DebugLevelUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		level int
		err   error
	}{
		{"too high", 6, nil},
		{"negative", -1, nil},
		{"source error", 0, stderrors.New(`invalid value "x"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			s := NewState(WithStderr(&stderr))
			src := LevelSourceFunc(func(context.Context) (int, error) { return tt.level, tt.err })

			assert.Equal(t, 0, s.DebugLevel(context.Background(), src, false))
			assert.Contains(t, stderr.String(), "WARNING: Ignoring unsupported debug level (must be >=0 and <=5).")
		})
	}
}

func TestState_DebugLevelNilSource(t *testing.T) {
	assert.Equal(t, 0, NewState().DebugLevel(context.Background(), nil, false))
}

func TestState_ConcurrentAccess(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetCaptureStderr(i%2 == 0)
			_ = s.CaptureStderr()
			_ = s.DebugLevel(context.Background(), nil, false)
		}(i)
	}
	wg.Wait()
}
