package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// discoverGoPackages maps the Go packages under root onto descriptors. The
// descriptor name is the directory path relative to root, dot-separated and
// prefixed with root's base name, so document names line up with the files
// the writer produces. Go has no submodule notion; a package page carries
// only its own automodule plus a toctree of child packages. Directories that
// hold child packages but no buildable Go files of their own surface as
// namespace packages.
func discoverGoPackages(ctx context.Context, root string) ([]*PackageDescriptor, []string, error) {
	baseDir := resolveBaseDir(root)
	if baseDir == "" {
		return nil, nil, fmt.Errorf("source path %q is not a directory", root)
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedModule,
	}
	pkgs, err := packages.Load(cfg, goPatterns(root)...)
	if err != nil {
		return nil, nil, err
	}

	base := filepath.Base(baseDir)
	real := make(map[string]bool)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, nil, fmt.Errorf("%s", pkg.Errors[0])
		}
		dir := packageDir(pkg)
		if dir == "" {
			continue
		}
		rel, err := filepath.Rel(baseDir, dir)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		real[goDocname(base, rel)] = true
	}
	if len(real) == 0 {
		return nil, nil, fmt.Errorf("no Go packages matched %q", root)
	}

	// Grouping directories between root and the loaded packages get
	// namespace descriptors so every toctree entry resolves to a page.
	docnames := make(map[string]bool, len(real))
	for name := range real {
		docnames[name] = true
		for parent := parentDocname(name); parent != ""; parent = parentDocname(parent) {
			docnames[parent] = docnames[parent] || real[parent]
		}
	}
	docnames[base] = docnames[base] || real[base]

	children := make(map[string][]string)
	for name := range docnames {
		if parent := parentDocname(name); parent != "" {
			children[parent] = append(children[parent], name)
		}
	}

	descs := make([]*PackageDescriptor, 0, len(docnames))
	for name, isReal := range docnames {
		subs := children[name]
		sort.Strings(subs)
		descs = append(descs, &PackageDescriptor{
			Name:        name,
			IsNamespace: !isReal,
			Subpackages: subs,
		})
	}
	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs, []string{base}, nil
}

func goDocname(base, rel string) string {
	if rel == "." || rel == "" {
		return base
	}
	return base + "." + strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}

func parentDocname(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// goPatterns widens a bare directory argument into the recursive form so the
// whole tree loads in one call.
func goPatterns(root string) []string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = filepath.ToSlash(root)
	patterns := []string{root}
	if !strings.Contains(root, "...") {
		recursive := root
		switch {
		case recursive == ".":
			recursive = "./..."
		case strings.HasSuffix(recursive, "/"):
			recursive += "..."
		default:
			recursive += "/..."
		}
		patterns = append(patterns, recursive)
	}
	return patterns
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}
	return ""
}
