package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateTree(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"-o", tmp, "./testdata/pyproj/sample"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	root := readPage(t, tmp, "sample.rst")
	assertContains(t, root, "sample\n======")
	assertContains(t, root, ".. toctree::\n   :maxdepth: 4")
	assertContains(t, root, "   sample.util\n   sample.core\n   sample.helpers")
	assertContains(t, root, ".. automodule:: sample.core\n   :members:\n   :undoc-members:\n   :show-inheritance:")
	assertContains(t, root, "Overview\n--------")

	util := readPage(t, tmp, "sample.util.rst")
	assertContains(t, util, "sample.util\n===========")
	assertContains(t, util, ".. automodule:: sample.util.paths")

	index := readPage(t, tmp, "modules.rst")
	assertContains(t, index, "sample\n======")
	assertContains(t, index, "   sample\n")
}

func TestStdoutStream(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"./testdata/pyproj/sample"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "sample\n======")
	assertContains(t, out, "sample.util\n===========")
	assertContains(t, out, ".. toctree::")
}

func TestModuleFirstOrdering(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"--module-first", "-o", tmp, "./testdata/pyproj/sample"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	root := readPage(t, tmp, "sample.rst")
	self := strings.Index(root, ".. automodule:: sample\n")
	sub := strings.Index(root, ".. automodule:: sample.core")
	toc := strings.Index(root, ".. toctree::")
	if self == -1 || sub == -1 || toc == -1 {
		t.Fatalf("missing expected blocks:\n%s", root)
	}
	if !(toc < self && self < sub) {
		t.Fatalf("expected toctree, then package automodule, then submodules:\n%s", root)
	}
	if strings.Contains(root, "Overview") {
		t.Fatalf("module-first page must not carry an Overview section:\n%s", root)
	}
}

func TestSeparateModules(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"--separate-modules", "-o", tmp, "./testdata/pyproj/sample"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	root := readPage(t, tmp, "sample.rst")
	if strings.Contains(root, ".. automodule:: sample.core") {
		t.Fatalf("submodule must not be inlined with --separate-modules:\n%s", root)
	}
	assertContains(t, root, "   sample.core")
}

func TestImplicitNamespacesFlag(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"--implicit-namespaces", "-o", tmp, "./testdata/pyproj/sample"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	plugins := readPage(t, tmp, "sample.plugins.rst")
	assertContains(t, plugins, "sample.plugins namespace")
	if strings.Contains(plugins, ".. automodule:: sample.plugins\n") {
		t.Fatalf("namespace page must not embed its own automodule:\n%s", plugins)
	}
	auth := readPage(t, tmp, "sample.plugins.auth.rst")
	assertContains(t, auth, ".. automodule:: sample.plugins.auth.token")
}

func TestConfigFileDrivesRun(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "rstgen.yaml")
	if err := os.WriteFile(cfgPath, []byte("separate-modules: true\nsuffix: .txt\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out := filepath.Join(tmp, "out")
	if err := run([]string{"--config", cfgPath, "-o", out, "./testdata/pyproj/sample"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	root := readPage(t, out, "sample.txt")
	if strings.Contains(root, ".. automodule:: sample.core") {
		t.Fatalf("config file separate-modules was ignored:\n%s", root)
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	if err := run([]string{"--dry-run", "-o", out, "./testdata/pyproj/sample"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run must not create the output directory, stat err: %v", err)
	}
}

func TestGoLanguageTree(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"--lang", "go", "-o", tmp, "./testdata/example"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	root := readPage(t, tmp, "example.rst")
	assertContains(t, root, "example\n=======")
	assertContains(t, root, "   example.nested\n   example.subpkg")
	assertContains(t, root, ".. automodule:: example")

	nested := readPage(t, tmp, "example.nested.rst")
	assertContains(t, nested, "example.nested namespace")
	assertContains(t, nested, "   example.nested.deep")

	if _, err := os.Stat(filepath.Join(tmp, "example.subpkg.rst")); err != nil {
		t.Fatalf("missing subpkg page: %v", err)
	}
	index := readPage(t, tmp, "modules.rst")
	assertContains(t, index, "   example\n")
}

func TestInvalidMaxDepthFlag(t *testing.T) {
	err := run([]string{"-d", "0", "./testdata/pyproj/sample"}, io.Discard)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestTooManyArguments(t *testing.T) {
	if err := run([]string{"a", "b"}, io.Discard); err == nil {
		t.Fatalf("expected error for two positional arguments")
	}
}

func TestHelpFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "go-rstgen [flags] [source-dir]")
	assertContains(t, out, "--maxdepth")
	assertContains(t, out, "--separate-modules")
	assertContains(t, out, "completion  Generate shell completion scripts")
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"completion", "bash"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected completion output")
	}
	assertContains(t, buf.String(), "__start_go-rstgen")
}

func TestGenDocsCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", tmp}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("expected CLI docs to be written")
	}
	var foundRoot bool
	for _, f := range files {
		if f.Name() == "go-rstgen.md" {
			foundRoot = true
			break
		}
	}
	if !foundRoot {
		t.Fatalf("expected go-rstgen.md in docs output, got %v", files)
	}
}

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(content)
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\n%s", needle, haystack)
	}
}
