package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// discoveryOptions configures the filesystem discovery frontend. The
// defaults match a conventional Python source layout; other layouts can be
// described by changing the marker and suffix.
type discoveryOptions struct {
	// MarkerName is the file whose presence makes a directory a regular
	// package.
	MarkerName string
	// ModuleSuffix selects which files in a package directory count as
	// submodules.
	ModuleSuffix string
	// ImplicitNamespaces treats marker-less directories that still contain
	// modules or packages as namespace packages instead of pruning them.
	ImplicitNamespaces bool
	// Exclude holds glob patterns matched against slash-separated paths
	// relative to the source root, and against bare entry names.
	Exclude []string
}

func defaultDiscoveryOptions() discoveryOptions {
	return discoveryOptions{
		MarkerName:   "__init__.py",
		ModuleSuffix: ".py",
	}
}

// discoverPackages walks the source tree rooted at root and returns one
// descriptor per package, sorted by name, plus the top-level document names
// in order. If root is itself a package directory it becomes the single top
// package; otherwise each package directory directly under root does.
func discoverPackages(root string, opts discoveryOptions) ([]*PackageDescriptor, []string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve source directory %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("source directory %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("source path %q is not a directory", root)
	}

	d := &discoverer{opts: opts, root: abs}

	rootDesc, rootTree, err := d.scan(abs, filepath.Base(abs))
	if err != nil {
		return nil, nil, err
	}
	var all []*PackageDescriptor
	var tops []string
	if rootDesc != nil {
		all = rootTree
		tops = []string{rootDesc.Name}
	} else {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, nil, fmt.Errorf("read source directory %q: %w", root, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() || d.skipDir(entry.Name()) || d.excluded(filepath.Join(abs, entry.Name())) {
				continue
			}
			desc, tree, err := d.scan(filepath.Join(abs, entry.Name()), entry.Name())
			if err != nil {
				return nil, nil, err
			}
			if desc == nil {
				continue
			}
			all = append(all, tree...)
			tops = append(tops, desc.Name)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, tops, nil
}

// scan inspects one directory. It returns the directory's own descriptor
// (nil when the directory is not a package) together with every descriptor
// in its subtree, descriptor first.
func (d *discoverer) scan(dir, name string) (*PackageDescriptor, []*PackageDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read package directory %q: %w", dir, err)
	}

	var (
		hasMarker   bool
		submodules  []string
		subpackages []string
		descendants []*PackageDescriptor
	)
	for _, entry := range entries {
		if d.excluded(filepath.Join(dir, entry.Name())) {
			continue
		}
		if entry.IsDir() {
			if d.skipDir(entry.Name()) {
				continue
			}
			child, tree, err := d.scan(filepath.Join(dir, entry.Name()), name+"."+entry.Name())
			if err != nil {
				return nil, nil, err
			}
			if child != nil {
				subpackages = append(subpackages, child.Name)
				descendants = append(descendants, tree...)
			}
			continue
		}
		if entry.Name() == d.opts.MarkerName {
			hasMarker = true
			continue
		}
		stem, ok := strings.CutSuffix(entry.Name(), d.opts.ModuleSuffix)
		if !ok || stem == "" {
			continue
		}
		submodules = append(submodules, name+"."+stem)
	}

	isPackage := hasMarker ||
		(d.opts.ImplicitNamespaces && (len(submodules) > 0 || len(subpackages) > 0))
	if !isPackage {
		// Without a marker the directory is not importable; with implicit
		// namespaces disabled its whole subtree is unreachable.
		return nil, nil, nil
	}
	desc := &PackageDescriptor{
		Name:        name,
		IsNamespace: !hasMarker,
		Submodules:  submodules,
		Subpackages: subpackages,
	}
	return desc, append([]*PackageDescriptor{desc}, descendants...), nil
}

type discoverer struct {
	opts discoveryOptions
	root string
}

func (d *discoverer) skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "__pycache__"
}

func (d *discoverer) excluded(p string) bool {
	rel, err := filepath.Rel(d.root, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)
	for _, pattern := range d.opts.Exclude {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
