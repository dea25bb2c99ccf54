package exec

import (
	"os"
	"runtime"
	"sort"
	"strings"
)

// Env is the environment a child runs with. A nil Env inherits the ambient
// environment of the host process; a non-nil Env is used as-is.
type Env map[string]string

// Ambient returns a copy of the host process environment.
func Ambient() Env {
	return FromEnviron(os.Environ())
}

// FromEnviron builds an Env from KEY=VALUE pairs. Later duplicates win.
func FromEnviron(pairs []string) Env {
	env := make(Env, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Lookup returns the value of key. A nil Env looks up the ambient
// environment. Keys are case-insensitive on Windows.
func (e Env) Lookup(key string) (string, bool) {
	if e == nil {
		return os.LookupEnv(key)
	}
	if v, ok := e[key]; ok {
		return v, true
	}
	if runtime.GOOS == "windows" {
		for k, v := range e {
			if strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return "", false
}

// Get returns the value of key, or "" when unset.
func (e Env) Get(key string) string {
	v, _ := e.Lookup(key)
	return v
}

// Clone returns a copy of e. Cloning a nil Env snapshots the ambient one.
func (e Env) Clone() Env {
	if e == nil {
		return Ambient()
	}
	out := make(Env, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge returns a copy of e with vars layered on top.
func (e Env) Merge(vars map[string]string) Env {
	out := e.Clone()
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// Environ renders e as sorted KEY=VALUE pairs. A nil Env renders as nil so
// os/exec inherits the host environment.
func (e Env) Environ() []string {
	if e == nil {
		return nil
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e[k])
	}
	return out
}
