package exec

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/gscript/errors"
)

// StatFS is the part of a filesystem the Resolver needs. Every go-billy
// filesystem satisfies it.
type StatFS interface {
	Stat(filename string) (os.FileInfo, error)
}

// defaultPathExt is used on Windows when PATHEXT is unset.
const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

// Resolver finds executables on the search path of an Env.
type Resolver struct {
	fs   StatFS
	goos string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFilesystem sets the filesystem executables are looked up in.
func WithFilesystem(fs StatFS) ResolverOption {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithPlatform overrides the platform rules used for lookup ("windows"
// enables PATHEXT handling and skips the permission check).
func WithPlatform(goos string) ResolverOption {
	return func(r *Resolver) {
		r.goos = goos
	}
}

// NewResolver creates a Resolver over the host filesystem.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{goos: runtime.GOOS}
	for _, opt := range opts {
		opt(r)
	}
	if r.fs == nil {
		r.fs = osfs.Default
	}
	return r
}

// Resolve returns the path of the executable name. Names containing a path
// separator are checked directly; others are searched for in the PATH of env.
func (r *Resolver) Resolve(name string, env Env) (string, error) {
	if name == "" {
		return "", errors.New(errors.CodeExecutableNotFound, "cannot find the executable: empty name")
	}

	exts := r.extensions(env)

	if strings.ContainsAny(name, r.separators()) {
		candidate := name
		if !filepath.IsAbs(candidate) {
			if abs, err := filepath.Abs(candidate); err == nil {
				candidate = abs
			}
		}
		if p, ok := r.find(candidate, exts); ok {
			return p, nil
		}
		return "", notFound(name)
	}

	path, _ := env.Lookup("PATH")
	for _, dir := range filepath.SplitList(path) {
		// Empty entries would mean the working directory; they are never searched.
		if dir == "" {
			continue
		}
		if !filepath.IsAbs(dir) {
			abs, err := filepath.Abs(dir)
			if err != nil {
				continue
			}
			dir = abs
		}
		if p, ok := r.find(filepath.Join(dir, name), exts); ok {
			return p, nil
		}
	}

	return "", notFound(name)
}

func (r *Resolver) find(candidate string, exts []string) (string, bool) {
	if r.goos != "windows" {
		return candidate, r.isExecutable(candidate)
	}

	if ext := strings.ToLower(filepath.Ext(candidate)); ext != "" && slices.Contains(exts, ext) {
		return candidate, r.isExecutable(candidate)
	}
	for _, ext := range exts {
		if r.isExecutable(candidate + ext) {
			return candidate + ext, true
		}
	}
	return "", false
}

func (r *Resolver) isExecutable(path string) bool {
	fi, err := r.fs.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	if r.goos == "windows" {
		return true
	}
	return fi.Mode().Perm()&0o111 != 0
}

func (r *Resolver) extensions(env Env) []string {
	if r.goos != "windows" {
		return nil
	}
	raw, ok := env.Lookup("PATHEXT")
	if !ok || raw == "" {
		raw = defaultPathExt
	}
	var exts []string
	for _, ext := range strings.Split(raw, ";") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

func (r *Resolver) separators() string {
	if r.goos == "windows" {
		return `/\`
	}
	return "/"
}

