package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type importRef struct {
	file string
	imp  string
}

// TestLayering keeps dependencies pointing inward:
// http -> services -> data -> domain, with platform usable by all.
func TestLayering(t *testing.T) {
	root, modulePath := moduleRoot(t)

	var violations []string
	for _, ref := range internalImports(t, root, modulePath) {
		for _, bad := range disallowedImports(modulePath, layerFor(ref.file)) {
			if strings.HasPrefix(ref.imp, bad) {
				violations = append(violations, fmt.Sprintf("- %s imports %q (disallowed: %q)", ref.file, ref.imp, bad))
				break
			}
		}
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestClientsAreWiredOnlyByApp(t *testing.T) {
	root, modulePath := moduleRoot(t)
	clientsPrefix := modulePath + "/internal/clients/"

	var violations []string
	for _, ref := range internalImports(t, root, modulePath) {
		if !strings.HasPrefix(ref.imp, clientsPrefix) {
			continue
		}
		if strings.HasPrefix(ref.file, "internal/app/") || strings.HasPrefix(ref.file, "internal/clients/") {
			continue
		}
		violations = append(violations, fmt.Sprintf("- %s imports %q", ref.file, ref.imp))
	}
	if len(violations) > 0 {
		t.Fatalf("internal/clients must only be constructed in internal/app:\n%s", strings.Join(violations, "\n"))
	}
}

func layerFor(rel string) string {
	for _, layer := range []string{"platform", "domain", "eligibility", "data", "services", "http"} {
		if strings.HasPrefix(rel, "internal/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func disallowedImports(modulePath string, layer string) []string {
	p := func(pkg string) string { return modulePath + "/internal/" + pkg }
	switch layer {
	case "platform":
		return []string{p("data/"), p("services"), p("http"), p("app"), p("eligibility")}
	case "domain":
		return []string{p("data/"), p("services"), p("http"), p("app"), p("platform/db")}
	case "eligibility":
		return []string{p("data/"), p("services"), p("http"), p("app")}
	case "data":
		return []string{p("services"), p("http"), p("app")}
	case "services":
		return []string{p("http"), p("app")}
	case "http":
		return []string{p("data/"), p("app")}
	default:
		return nil
	}
}

func internalImports(t *testing.T, root, modulePath string) []importRef {
	t.Helper()
	fset := token.NewFileSet()
	var refs []importRef
	err := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil || !strings.HasPrefix(imp, modulePath+"/") {
				continue
			}
			refs = append(refs, importRef{file: filepath.ToSlash(rel), imp: imp})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk internal/: %v", err)
	}
	return refs
}

func moduleRoot(t *testing.T) (string, string) {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found")
		}
		dir = parent
	}
	modulePath, err := readModulePath(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}
	return dir, modulePath
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if mp, ok := strings.CutPrefix(line, "module "); ok {
			if mp = strings.TrimSpace(mp); mp != "" {
				return mp, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
