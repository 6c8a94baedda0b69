package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
go-rstgen generates a reStructuredText API documentation skeleton for a source tree.
It walks the packages under a source directory, renders one page per package with a
navigation toctree and automodule directives, and writes the pages plus a root index
into an output directory, ready for a Sphinx-style builder to pick up.

  • One page per package: toctree of subpackages and submodules, automodule blocks
  • Namespace packages get a toctree-only page (they have no module body)
  • Go module trees are supported via --lang go
  • Shell completion generation for bash, zsh, fish, and PowerShell
  • A gen-docs helper that emits Markdown reference docs for the CLI itself

Use go-rstgen -o docs/api ./src the way you would run sphinx-apidoc, or omit -o to
stream every page to stdout.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout}
	cmd := &cobra.Command{
		Use:           "go-rstgen [flags] [source-dir]",
		Short:         "Generate reStructuredText API doc pages for a source tree",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "directory to write pages into (stdout when omitted)")
	flags.IntVarP(&app.opts.maxDepth, "maxdepth", "d", defaultMaxDepth, "maximum depth of generated toctrees")
	flags.BoolVar(&app.opts.separateModules, "separate-modules", false, "reference submodules only via the toctree, never inline")
	flags.BoolVar(&app.opts.moduleFirst, "module-first", false, "place the package's own automodule before the inlined submodules")
	flags.BoolVar(&app.opts.noHeadings, "no-headings", false, "omit per-submodule headings")
	flags.StringVarP(&app.opts.automoduleOptions, "automodule-options", "a", defaultAutomoduleOptions, "comma-separated options forwarded into every automodule directive")
	flags.StringVar(&app.opts.suffix, "suffix", defaultSuffix, "filename suffix for generated pages")
	flags.StringVar(&app.opts.tocfile, "tocfile", defaultTocfile, "document name of the root index page")
	flags.BoolVar(&app.opts.implicitNamespaces, "implicit-namespaces", false, "treat marker-less directories as namespace packages")
	flags.StringArrayVar(&app.opts.excludes, "exclude", nil, "glob pattern to skip, relative to the source root (repeatable)")
	flags.StringVar(&app.opts.lang, "lang", defaultLanguage, "source tree language: python or go")
	flags.StringVar(&app.opts.configPath, "config", "", "YAML config file; explicit flags take precedence")
	flags.BoolVar(&app.opts.dryRun, "dry-run", false, "log target paths without writing files")
	flags.CountVarP(&app.opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.execute(cmd.Context(), args, cmd.Flags().Changed)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for go-rstgen.

The output should be evaluated by your shell. For example:

  # bash
  go-rstgen completion bash > /usr/local/etc/bash_completion.d/go-rstgen

  # zsh
  go-rstgen completion zsh > "${fpath[1]}/_go-rstgen"

  # fish
  go-rstgen completion fish | source

  # PowerShell
  go-rstgen completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  go-rstgen gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
