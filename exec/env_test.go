package exec

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnviron(t *testing.T) {
	env := FromEnviron([]string{"A=1", "B=x=y", "broken", "=hidden", "A=2"})
	require.Equal(t, Env{"A": "2", "B": "x=y"}, env)
}

func TestEnv_Environ(t *testing.T) {
	var inherit Env
	assert.Nil(t, inherit.Environ())

	assert.Equal(t, []string{}, Env{}.Environ())
	assert.Equal(t, []string{"A=1", "GISBASE=/opt/grass", "Z="},
		Env{"Z": "", "GISBASE": "/opt/grass", "A": "1"}.Environ())
}

func TestEnv_Lookup(t *testing.T) {
	t.Setenv("GSCRIPT_TEST_VAR", "ambient")

	var inherit Env
	v, ok := inherit.Lookup("GSCRIPT_TEST_VAR")
	require.True(t, ok)
	assert.Equal(t, "ambient", v)

	env := Env{"GRASS_VERBOSE": "3"}
	assert.Equal(t, "3", env.Get("GRASS_VERBOSE"))
	_, ok = env.Lookup("GSCRIPT_TEST_VAR")
	assert.False(t, ok, "explicit env must not fall back to the ambient one")
}

func TestEnv_CloneAndMerge(t *testing.T) {
	base := Env{"A": "1"}
	merged := base.Merge(map[string]string{"B": "2", "A": "3"})

	assert.Equal(t, Env{"A": "1"}, base)
	assert.Equal(t, Env{"A": "3", "B": "2"}, merged)

	t.Setenv("GSCRIPT_TEST_VAR", "snap")
	var inherit Env
	snap := inherit.Clone()
	require.NotNil(t, snap)
	assert.Equal(t, "snap", snap["GSCRIPT_TEST_VAR"])
	assert.Len(t, snap, len(FromEnviron(os.Environ())))
}
