package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Generator defaults. Flag defaults mirror these so --help stays truthful.
const (
	defaultMaxDepth = 4
	defaultSuffix   = ".rst"
	defaultTocfile  = "modules"
	defaultLanguage = "python"
)

const defaultAutomoduleOptions = "members,undoc-members,show-inheritance"

// generatorConfig is the fully resolved configuration for one run: the
// shared RenderConfig plus everything the discovery and writer collaborators
// need. Resolution order is defaults, then the config file, then any flag
// the user set explicitly.
type generatorConfig struct {
	Render    RenderConfig
	Suffix    string
	Tocfile   string
	Language  string
	Discovery discoveryOptions
}

// fileConfig is the YAML shape of --config. Pointer fields distinguish "not
// set" from an explicit zero.
type fileConfig struct {
	MaxDepth           *int     `yaml:"maxdepth"`
	SeparateModules    *bool    `yaml:"separate-modules"`
	ModuleFirst        *bool    `yaml:"module-first"`
	ShowHeadings       *bool    `yaml:"show-headings"`
	AutomoduleOptions  []string `yaml:"automodule-options"`
	Suffix             *string  `yaml:"suffix"`
	Tocfile            *string  `yaml:"tocfile"`
	Language           *string  `yaml:"language"`
	ImplicitNamespaces *bool    `yaml:"implicit-namespaces"`
	Exclude            []string `yaml:"exclude"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &fc, nil
}

// resolveConfig merges defaults, the optional config file, and explicitly
// set flags into a validated generatorConfig. changed reports whether a flag
// was set on the command line.
func resolveConfig(opts options, changed func(string) bool) (generatorConfig, error) {
	cfg := generatorConfig{
		Render: RenderConfig{
			MaxDepth:          defaultMaxDepth,
			ShowHeadings:      true,
			AutomoduleOptions: splitOptionList(defaultAutomoduleOptions),
		},
		Suffix:    defaultSuffix,
		Tocfile:   defaultTocfile,
		Language:  defaultLanguage,
		Discovery: defaultDiscoveryOptions(),
	}

	if opts.configPath != "" {
		fc, err := loadConfigFile(opts.configPath)
		if err != nil {
			return generatorConfig{}, err
		}
		applyFileConfig(&cfg, fc)
	}

	if changed("maxdepth") {
		cfg.Render.MaxDepth = opts.maxDepth
	}
	if changed("separate-modules") {
		cfg.Render.SeparateModules = opts.separateModules
	}
	if changed("module-first") {
		cfg.Render.ModuleFirst = opts.moduleFirst
	}
	if changed("no-headings") {
		cfg.Render.ShowHeadings = !opts.noHeadings
	}
	if changed("automodule-options") {
		cfg.Render.AutomoduleOptions = splitOptionList(opts.automoduleOptions)
	}
	if changed("suffix") {
		cfg.Suffix = opts.suffix
	}
	if changed("tocfile") {
		cfg.Tocfile = opts.tocfile
	}
	if changed("lang") {
		cfg.Language = opts.lang
	}
	if changed("implicit-namespaces") {
		cfg.Discovery.ImplicitNamespaces = opts.implicitNamespaces
	}
	if changed("exclude") {
		cfg.Discovery.Exclude = opts.excludes
	}

	normalizeConfig(&cfg)
	if err := validateConfig(cfg); err != nil {
		return generatorConfig{}, err
	}
	return cfg, nil
}

func applyFileConfig(cfg *generatorConfig, fc *fileConfig) {
	if fc.MaxDepth != nil {
		cfg.Render.MaxDepth = *fc.MaxDepth
	}
	if fc.SeparateModules != nil {
		cfg.Render.SeparateModules = *fc.SeparateModules
	}
	if fc.ModuleFirst != nil {
		cfg.Render.ModuleFirst = *fc.ModuleFirst
	}
	if fc.ShowHeadings != nil {
		cfg.Render.ShowHeadings = *fc.ShowHeadings
	}
	if fc.AutomoduleOptions != nil {
		cfg.Render.AutomoduleOptions = fc.AutomoduleOptions
	}
	if fc.Suffix != nil {
		cfg.Suffix = *fc.Suffix
	}
	if fc.Tocfile != nil {
		cfg.Tocfile = *fc.Tocfile
	}
	if fc.Language != nil {
		cfg.Language = *fc.Language
	}
	if fc.ImplicitNamespaces != nil {
		cfg.Discovery.ImplicitNamespaces = *fc.ImplicitNamespaces
	}
	if fc.Exclude != nil {
		cfg.Discovery.Exclude = fc.Exclude
	}
}

func normalizeConfig(cfg *generatorConfig) {
	if cfg.Suffix != "" && !strings.HasPrefix(cfg.Suffix, ".") {
		cfg.Suffix = "." + cfg.Suffix
	}
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
}

func validateConfig(cfg generatorConfig) error {
	if cfg.Render.MaxDepth < 1 {
		return fmt.Errorf("maxdepth %d: %w", cfg.Render.MaxDepth, ErrInvalidConfig)
	}
	if cfg.Suffix == "" || cfg.Suffix == "." {
		return fmt.Errorf("suffix %q: %w", cfg.Suffix, ErrInvalidConfig)
	}
	if cfg.Tocfile == "" {
		return fmt.Errorf("empty tocfile: %w", ErrInvalidConfig)
	}
	switch cfg.Language {
	case "python", "go":
	default:
		return fmt.Errorf("language %q: %w", cfg.Language, ErrInvalidConfig)
	}
	return nil
}

func splitOptionList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
