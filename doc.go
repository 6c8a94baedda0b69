// # go-rstgen
//
// `go-rstgen` generates a reStructuredText API documentation skeleton for a
// source tree, in the spirit of sphinx-apidoc. It walks the packages under a
// source directory, renders one page per package, and writes the pages plus a
// root index toctree into an output directory, ready for a Sphinx-style
// builder to introspect and fill in.
//
// Key capabilities:
//
//   - render one page per package: a section heading, a toctree listing
//     subpackages then submodules, and automodule directives that a
//     downstream autodoc builder expands.
//   - treat namespace packages correctly: they get a toctree-only page, never
//     an automodule of their own.
//   - control composition with the familiar knobs: `--maxdepth`,
//     `--separate-modules`, `--module-first`, `--no-headings`, and
//     `--automodule-options`.
//   - discover Python-layout trees (`__init__.py` markers, optional
//     `--implicit-namespaces`) or Go module trees (`--lang go`, loaded via
//     `go/packages`).
//   - read defaults from a YAML config file (`--config`), with explicit flags
//     taking precedence.
//   - ship a Cobra-powered CLI with rich `--help`, `--version`, shell
//     completion, and a `gen-docs` helper for publishing the CLI reference.
//
// ## Usage
//
//	go-rstgen [flags] [source-dir]
//
// Examples:
//
//   - Generate pages for a Python source tree into docs/api:
//
//     go-rstgen -o docs/api ./src
//
//   - Same, but inline every submodule after the package's own automodule:
//
//     go-rstgen --module-first -o docs/api ./src
//
//   - Preview the pages on stdout without touching the filesystem:
//
//     go-rstgen ./src
//
//   - Document a Go module tree:
//
//     go-rstgen --lang go -o docs/api .
//
// ## Output Layout
//
// Pages are written flat into the output directory, one file per package
// named after its dotted document name (`pkg.sub.rst`), plus a root index
// page (`modules.rst` by default, see `--tocfile`) whose toctree links the
// top-level packages. Reference the index from a hand-written `index.rst`
// and the whole tree becomes navigable.
//
// ## Page Composition
//
// Every page starts with the package heading (suffixed `namespace` for
// namespace packages) and a toctree listing subpackages before submodules.
// Unless `--separate-modules` is set, each submodule is then embedded inline
// via an automodule directive, with its own heading unless `--no-headings`.
// The package's own automodule appears directly after the toctree with
// `--module-first`, or at the end of the page under an Overview heading
// otherwise. Namespace packages never embed their own automodule.
//
// ## Shell Completion
//
// Autocompletion is provided via Cobra's generators:
//
//	go-rstgen completion bash        # bash
//	go-rstgen completion zsh         # zsh
//	go-rstgen completion fish | source
//	go-rstgen completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
// `go-rstgen` can generate Markdown for each CLI command via `gen-docs`:
//
//	go-rstgen gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
package main
