package script

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/exec"
)

// GisenvLevelSource reads the debug level from the GRASS session through
// g.gisenv. It implements policy.LevelSource.
type GisenvLevelSource struct {
	Session *Session
}

// DebugLevel returns the DEBUG variable of the GRASS session. When
// g.gisenv is unavailable or fails the level is 0.
func (g GisenvLevelSource) DebugLevel(ctx context.Context) (int, error) {
	if !g.Session.FindProgram(ctx, "g.gisenv", "--help") {
		return 0, nil
	}
	out, err := g.Session.Read(ctx, "g.gisenv", Opt("get", "DEBUG"))
	if err != nil {
		g.Session.logger.Debug(ctx, "reading debug level failed", "error", err.Error())
		return 0, nil
	}
	return parseLevel(strings.TrimSpace(out))
}

// FindProgram reports whether name can be started with args. Any exit code
// counts as found. All streams are discarded.
func (s *Session) FindProgram(ctx context.Context, name string, args ...string) bool {
	argv := append([]string{name}, args...)
	_, err := s.Call(ctx, argv,
		exec.WithStdin(exec.Discard),
		exec.WithStdout(exec.Discard),
		exec.WithStderr(exec.Discard),
	)
	return err == nil
}

// Gisenv returns the GRASS session variables reported by g.gisenv -n.
func (s *Session) Gisenv(ctx context.Context, opts ...CallOption) (map[string]string, error) {
	out, err := s.Read(ctx, "g.gisenv", append([]CallOption{Flags("n")}, opts...)...)
	if err != nil {
		return nil, err
	}
	return ParseKeyVal(out, "="), nil
}

// ParseKeyVal parses lines of key<sep>value pairs. Blank lines are
// skipped; a line without sep maps its key to "".
func ParseKeyVal(text, sep string) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, _ := strings.Cut(line, sep)
		vars[key] = value
	}
	return vars
}

// OverwriteEnabled reports whether GRASS_OVERWRITE permits overwriting outputs.
func OverwriteEnabled(env exec.Env) bool {
	v, ok := env.Lookup("GRASS_OVERWRITE")
	return ok && v != "0"
}

// Verbosity returns the GRASS_VERBOSE level, or 2 when it is unset or not a
// number.
func Verbosity(env exec.Env) int {
	v := env.Get("GRASS_VERBOSE")
	if v == "" {
		return 2
	}
	level, err := strconv.Atoi(v)
	if err != nil {
		return 2
	}
	return level
}

// Catalog lists the tools installed in a GRASS installation.
type Catalog struct {
	// Commands holds tool names, sorted.
	Commands []string

	// Scripts maps a script extension to the tools implemented with it.
	// It is only filled on Windows.
	Scripts map[string][]string
}

// Has reports whether name is a known tool.
func (c *Catalog) Has(name string) bool {
	i := sort.SearchStrings(c.Commands, name)
	return i < len(c.Commands) && c.Commands[i] == name
}

// CatalogOption configures Commands.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	fs   billy.Dir
	goos string
}

// WithCatalogFilesystem sets the filesystem scanned. Defaults to the host's.
func WithCatalogFilesystem(fs billy.Dir) CatalogOption {
	return func(c *catalogConfig) {
		c.fs = fs
	}
}

// WithCatalogPlatform sets the platform whose naming rules apply.
func WithCatalogPlatform(goos string) CatalogOption {
	return func(c *catalogConfig) {
		c.goos = goos
	}
}

var scriptExtensions = []string{".py"}

// Commands lists the tools in $GISBASE/bin and $GISBASE/scripts. Missing
// directories are skipped. On Windows names lose their extension,
// .manifest files are skipped and scripts are grouped by extension.
func Commands(env exec.Env, opts ...CatalogOption) (*Catalog, error) {
	cfg := catalogConfig{fs: osfs.Default, goos: runtime.GOOS}
	for _, opt := range opts {
		opt(&cfg)
	}

	catalog := &Catalog{}
	gisbase := env.Get("GISBASE")
	if gisbase == "" {
		return catalog, nil
	}

	windows := cfg.goos == "windows"
	if windows {
		catalog.Scripts = make(map[string][]string, len(scriptExtensions))
		for _, ext := range scriptExtensions {
			catalog.Scripts[ext] = []string{}
		}
	}

	seen := make(map[string]struct{})
	for _, dir := range []string{"bin", "scripts"} {
		full := filepath.Join(gisbase, dir)
		entries, err := cfg.fs.ReadDir(full)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.WrapWithContext(err, errors.CodeInternal, "failed to list tools", map[string]interface{}{
				"dir": full,
			})
		}

		for _, entry := range entries {
			name := entry.Name()
			if windows {
				ext := path.Ext(name)
				name = strings.TrimSuffix(name, ext)
				if ext != ".manifest" {
					seen[name] = struct{}{}
				}
				if _, ok := catalog.Scripts[ext]; ok {
					catalog.Scripts[ext] = append(catalog.Scripts[ext], name)
				}
				continue
			}
			seen[name] = struct{}{}
		}
	}

	catalog.Commands = make([]string, 0, len(seen))
	for name := range seen {
		catalog.Commands = append(catalog.Commands, name)
	}
	sort.Strings(catalog.Commands)
	return catalog, nil
}
