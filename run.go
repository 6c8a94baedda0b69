package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

type options struct {
	outputPath         string
	maxDepth           int
	separateModules    bool
	moduleFirst        bool
	noHeadings         bool
	automoduleOptions  string
	suffix             string
	tocfile            string
	implicitNamespaces bool
	excludes           []string
	lang               string
	configPath         string
	dryRun             bool
	verbosity          int
}

// documentPage pairs a document name with its rendered text. The writer
// derives the target filename from the docname; the renderer never sees
// paths.
type documentPage struct {
	docname string
	text    string
}

type cliApp struct {
	stdout io.Writer
	opts   options
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, positionals []string, changed func(string) bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	setupLogging(app.opts.verbosity)
	if len(positionals) > 1 {
		return errors.New("at most one source directory argument is accepted")
	}
	root := "."
	if len(positionals) == 1 {
		root = positionals[0]
	}
	cfg, err := resolveConfig(app.opts, changed)
	if err != nil {
		return err
	}
	pages, err := buildPages(ctx, root, cfg)
	if err != nil {
		return err
	}
	if app.opts.outputPath == "" || app.opts.outputPath == "-" {
		return streamPages(app.stdout, pages)
	}
	return writePages(app.opts.outputPath, cfg.Suffix, app.opts.dryRun, pages)
}

// buildPages discovers the package tree under root and renders every page
// plus the root index. Pages are rendered fully in memory before anything is
// written, so a failing package aborts the run without partial output.
func buildPages(ctx context.Context, root string, cfg generatorConfig) ([]documentPage, error) {
	var (
		descs []*PackageDescriptor
		tops  []string
		err   error
	)
	switch cfg.Language {
	case "go":
		descs, tops, err = discoverGoPackages(ctx, root)
	default:
		descs, tops, err = discoverPackages(root, cfg.Discovery)
	}
	if err != nil {
		return nil, err
	}
	if len(descs) == 0 {
		return nil, fmt.Errorf("no packages found under %q", root)
	}
	log.Info().Str("root", root).Int("packages", len(descs)).Msg("discovered packages")

	pages := make([]documentPage, 0, len(descs)+1)
	for _, desc := range descs {
		page, err := renderPage(desc, cfg.Render)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", desc.Name, err)
		}
		log.Debug().
			Str("package", desc.Name).
			Int("blocks", len(page.Blocks())).
			Bool("namespace", desc.IsNamespace).
			Msg("rendered page")
		pages = append(pages, documentPage{docname: desc.Name, text: page.String()})
	}

	index, err := renderIndexPage(indexTitle(root), tops, cfg.Render.MaxDepth)
	if err != nil {
		return nil, err
	}
	pages = append(pages, documentPage{docname: cfg.Tocfile, text: index})
	return pages, nil
}

// renderIndexPage builds the root toctree page linking the top-level
// packages, the entry point a hand-written docs index includes.
func renderIndexPage(title string, tops []string, maxDepth int) (string, error) {
	heading, err := renderHeading(title, 1)
	if err != nil {
		return "", err
	}
	return heading + "\n\n" + composeToctree(tops, maxDepth) + "\n", nil
}

func indexTitle(root string) string {
	if base := resolveBaseDir(root); base != "" {
		return filepath.Base(base)
	}
	return "API Reference"
}

func streamPages(w io.Writer, pages []documentPage) error {
	for i, page := range pages {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, page.text); err != nil {
			return err
		}
	}
	return nil
}

func writePages(outDir, suffix string, dryRun bool, pages []documentPage) error {
	if !dryRun {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}
	for _, page := range pages {
		target := filepath.Join(outDir, page.docname+suffix)
		if dryRun {
			log.Info().Str("target", target).Msg("would write page")
			continue
		}
		if err := os.WriteFile(target, []byte(page.text), 0o644); err != nil {
			return err
		}
		log.Debug().Str("target", target).Msg("wrote page")
	}
	if !dryRun {
		log.Info().Str("dir", outDir).Int("pages", len(pages)).Msg("wrote documentation tree")
	}
	return nil
}

func resolveBaseDir(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = strings.TrimSuffix(root, "/...")
	root = strings.TrimSuffix(root, "\\...")
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return ""
	}
	base, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	return base
}
