package discovery

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/kailayerhq/sigfind/discovery/modulepath"
	"lukechampine.com/blake3"
)

// searchPath is a process-wide, mutex-guarded module search path that Load
// mutates transiently and restores on every exit path.
var (
	searchPathMu sync.Mutex
	searchPath   []string
)

// withSearchPath prepends root to the process-wide search path iff it is
// not already present, runs fn, and — on every exit path — removes the
// exact string it added (never someone else's entry), tolerating
// concurrent removal by another goroutine.
func withSearchPath(root string, fn func() error) error {
	searchPathMu.Lock()
	added := !containsString(searchPath, root)
	if added {
		searchPath = append([]string{root}, searchPath...)
	}
	searchPathMu.Unlock()

	defer func() {
		if !added {
			return
		}
		searchPathMu.Lock()
		defer searchPathMu.Unlock()
		searchPath = removeString(searchPath, root)
	}()

	return fn()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			out := make([]string, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out
		}
	}
	return list
}

// LoadedSymbol is what Load returns in place of a native language object —
// Go has no way to hold a live Python class or Ruby module, so materializing
// a non-Go candidate means invoking that language's own toolchain and
// capturing what it reports about the symbol.
type LoadedSymbol struct {
	Name       string
	Module     string
	Language   string
	ModulePath string // the dotted module name (Python, Go) or file path (JavaScript, Ruby) handed to the materializer
	Output     string // the materializer's introspection output (repr, go doc text, etc.)
}

// Materializer imports/requires the module containing a winning candidate
// and reports back what the language runtime knows about the named symbol.
type Materializer interface {
	Materialize(ctx context.Context, result DiscoveryResult, moduleName string) (*LoadedSymbol, error)
}

var materializers = map[string]Materializer{
	"python":     pythonMaterializer{},
	"go":         goMaterializer{},
	"javascript": javascriptMaterializer{},
	"ruby":       rubyMaterializer{},
}

// Load imports the module owning the winning candidate and returns the
// named attribute. Computing the module name and staging the search path
// are language-agnostic; the import itself, and its fallback-by-path, are
// delegated to the Materializer registered for the candidate's Language.
func (r DiscoveryResult) Load() (*LoadedSymbol, error) {
	moduleName := r.Module
	if moduleName == "" {
		moduleName = modulepath.For(strings.TrimPrefix(r.FilePath, r.Root+"/"), extOf(r.FilePath))
	}

	materializer, ok := materializers[r.Language]
	if !ok {
		return nil, &LoadError{FilePath: r.FilePath, Name: r.Name, Cause: fmt.Errorf("no materializer registered for language %q", r.Language)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var loaded *LoadedSymbol
	err := withSearchPath(r.Root, func() error {
		var loadErr error
		loaded, loadErr = materializer.Materialize(ctx, r, moduleName)
		return loadErr
	})
	if err != nil {
		return nil, &LoadError{FilePath: r.FilePath, Name: r.Name, Cause: err}
	}
	return loaded, nil
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

// syntheticModuleName builds a reserved-namespace fallback name
// ("_sigfind_discovery.<module>_<hash>", or "_sigfind_discovery.<hash>"
// when there is no module name) for a candidate whose owning module can't
// be imported by dotted name, guaranteeing uniqueness across sibling
// discoveries of the same leaf filename with an 8-character BLAKE3 hash of
// the absolute file path — the same hash function this codebase's
// content-addressing already uses.
func syntheticModuleName(moduleName, filePath string) string {
	sum := blake3.Sum256([]byte(filePath))
	hash := fmt.Sprintf("%x", sum[:4])
	if moduleName == "" {
		return "_sigfind_discovery." + hash
	}
	return "_sigfind_discovery." + moduleName + "_" + hash
}

// pythonMaterializer shells out to python3, running the
// import-then-fallback dance Load delegates to it: try
// importlib.import_module, and on ImportError, load the file directly
// under a synthetic module name.
type pythonMaterializer struct{}

func (pythonMaterializer) Materialize(ctx context.Context, r DiscoveryResult, moduleName string) (*LoadedSymbol, error) {
	bin, err := exec.LookPath("python3")
	if err != nil {
		return nil, fmt.Errorf("python3 not available: %w", err)
	}

	fallbackName := syntheticModuleName(moduleName, r.FilePath)
	script := pythonLoaderScript(r.Root, moduleName, fallbackName, r.FilePath, r.Name)

	cmd := exec.CommandContext(ctx, bin, "-c", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("python3: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return &LoadedSymbol{
		Name:       r.Name,
		Module:     moduleName,
		Language:   "python",
		ModulePath: moduleName,
		Output:     strings.TrimSpace(stdout.String()),
	}, nil
}

func pythonLoaderScript(root, moduleName, fallbackName, filePath, name string) string {
	return fmt.Sprintf(`
import importlib, importlib.util, sys
sys.path.insert(0, %q)
try:
    module = importlib.import_module(%q) if %q else None
    if module is None:
        raise ImportError("no module name")
except ImportError:
    spec = importlib.util.spec_from_file_location(%q, %q)
    module = importlib.util.module_from_spec(spec)
    sys.modules[%q] = module
    spec.loader.exec_module(module)
print(repr(getattr(module, %q)))
`, root, moduleName, moduleName, fallbackName, filePath, fallbackName, name)
}

// goMaterializer shells out to `go doc`, the closest Go equivalent to
// "import the module and inspect the symbol" without compiling and running
// arbitrary user code.
type goMaterializer struct{}

func (goMaterializer) Materialize(ctx context.Context, r DiscoveryResult, moduleName string) (*LoadedSymbol, error) {
	bin, err := exec.LookPath("go")
	if err != nil {
		return nil, fmt.Errorf("go toolchain not available: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, "doc", fmt.Sprintf(".%c%s", '/', r.Name))
	cmd.Dir = r.Root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("go doc: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return &LoadedSymbol{
		Name:       r.Name,
		Module:     moduleName,
		Language:   "go",
		ModulePath: moduleName,
		Output:     strings.TrimSpace(stdout.String()),
	}, nil
}

// javascriptMaterializer shells out to node, requiring the file directly by
// path (CommonJS) rather than attempting a dotted-module resolution — JS
// has no universal equivalent of Python's import-by-dotted-name.
type javascriptMaterializer struct{}

func (javascriptMaterializer) Materialize(ctx context.Context, r DiscoveryResult, moduleName string) (*LoadedSymbol, error) {
	bin, err := exec.LookPath("node")
	if err != nil {
		return nil, fmt.Errorf("node not available: %w", err)
	}

	script := fmt.Sprintf("const m = require(%q); console.log(String(m[%q] ?? m.default?.[%q]));", r.FilePath, r.Name, r.Name)
	cmd := exec.CommandContext(ctx, bin, "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("node: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return &LoadedSymbol{
		Name:       r.Name,
		Module:     moduleName,
		Language:   "javascript",
		ModulePath: r.FilePath,
		Output:     strings.TrimSpace(stdout.String()),
	}, nil
}

// rubyMaterializer shells out to ruby, require_relative-ing the file and
// printing the constant's inspect form.
type rubyMaterializer struct{}

func (rubyMaterializer) Materialize(ctx context.Context, r DiscoveryResult, moduleName string) (*LoadedSymbol, error) {
	bin, err := exec.LookPath("ruby")
	if err != nil {
		return nil, fmt.Errorf("ruby not available: %w", err)
	}

	script := fmt.Sprintf("require_relative %q; puts (%s).inspect", r.FilePath, r.Name)
	cmd := exec.CommandContext(ctx, bin, "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ruby: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return &LoadedSymbol{
		Name:       r.Name,
		Module:     moduleName,
		Language:   "ruby",
		ModulePath: r.FilePath,
		Output:     strings.TrimSpace(stdout.String()),
	}, nil
}
