package main

import (
	"fmt"
	"strings"
)

// PackageDescriptor describes one package to document. Discovery frontends
// produce these; the renderer treats them as immutable input and trusts that
// submodule and subpackage entries name real documents.
type PackageDescriptor struct {
	Name        string
	IsNamespace bool
	Submodules  []string
	Subpackages []string
}

// RenderConfig controls page composition. One instance is shared read-only
// across every page in a run.
type RenderConfig struct {
	// MaxDepth is forwarded into every toctree. Must be positive.
	MaxDepth int
	// SeparateModules references submodules only through the toctree instead
	// of embedding them inline.
	SeparateModules bool
	// ShowHeadings gives each inlined submodule its own section heading.
	ShowHeadings bool
	// ModuleFirst places the package's own automodule directive before the
	// inlined submodules rather than at the end of the page.
	ModuleFirst bool
	// AutomoduleOptions are forwarded verbatim, in order, into every
	// automodule directive.
	AutomoduleOptions []string
}

// RenderedPage is an ordered sequence of text blocks that concatenate,
// separated by single blank lines, into the final document.
type RenderedPage struct {
	blocks []string
}

// Blocks returns the page's blocks in emission order.
func (p *RenderedPage) Blocks() []string {
	return p.blocks
}

func (p *RenderedPage) String() string {
	return strings.Join(p.blocks, "\n\n") + "\n"
}

func (p *RenderedPage) Bytes() []byte {
	return []byte(p.String())
}

// renderPage produces the complete page for one package. Rendering is a pure
// single-pass function of its inputs: identical inputs yield byte-identical
// output, and nothing is returned on failure.
//
// Block order: the package heading, the navigation tree (always present,
// even when empty), the package's own automodule when ModuleFirst, each
// inlined submodule, and finally an Overview section with the package's own
// automodule when not ModuleFirst. A namespace package never embeds its own
// automodule; it has no module body to document.
func renderPage(pkg *PackageDescriptor, cfg RenderConfig) (*RenderedPage, error) {
	if pkg == nil {
		return nil, ErrMissingDescriptor
	}
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("maxdepth %d: %w", cfg.MaxDepth, ErrInvalidConfig)
	}

	title := pkg.Name
	if pkg.IsNamespace {
		title += " namespace"
	}
	heading, err := renderHeading(title, 1)
	if err != nil {
		return nil, err
	}
	blocks := []string{heading}

	// Subpackages precede submodules in the navigation tree.
	var docnames []string
	if len(pkg.Subpackages) > 0 {
		docnames = make([]string, 0, len(pkg.Subpackages)+len(pkg.Submodules))
		docnames = append(docnames, pkg.Subpackages...)
		docnames = append(docnames, pkg.Submodules...)
	} else {
		docnames = pkg.Submodules
	}
	blocks = append(blocks, composeToctree(docnames, cfg.MaxDepth))

	if cfg.ModuleFirst && !pkg.IsNamespace {
		blocks = append(blocks, renderAutomodule(pkg.Name, cfg.AutomoduleOptions))
	}

	if len(pkg.Submodules) > 0 && !cfg.SeparateModules {
		for _, mod := range pkg.Submodules {
			if cfg.ShowHeadings {
				h, err := renderHeading(mod, 2)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, h)
			}
			blocks = append(blocks, renderAutomodule(mod, cfg.AutomoduleOptions))
		}
	}

	if !cfg.ModuleFirst && !pkg.IsNamespace {
		h, err := renderHeading("Overview", 2)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, h, renderAutomodule(pkg.Name, cfg.AutomoduleOptions))
	}

	return &RenderedPage{blocks: blocks}, nil
}

func renderAutomodule(target string, optionNames []string) string {
	opts := make([]directiveOption, len(optionNames))
	for i, name := range optionNames {
		opts[i] = directiveOption{Key: name}
	}
	return renderDirective("automodule", target, opts, nil)
}
