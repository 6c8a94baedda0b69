package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Section adornment characters, one per supported heading level. Downstream
// builders infer the section hierarchy from these, so they are fixed.
const (
	adornmentLevel1 = "="
	adornmentLevel2 = "-"
)

// directiveIndent is the indentation for directive option and body lines.
const directiveIndent = "   "

// rstEscaper neutralizes inline markup in plain text destined for headings.
var rstEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`|`, `\|`,
)

func escapeText(s string) string {
	return rstEscaper.Replace(s)
}

// renderHeading formats title as an underlined section heading. The underline
// length matches the escaped title, measured in runes.
func renderHeading(title string, level int) (string, error) {
	var adornment string
	switch level {
	case 1:
		adornment = adornmentLevel1
	case 2:
		adornment = adornmentLevel2
	default:
		return "", fmt.Errorf("heading level %d: %w", level, ErrInvalidLevel)
	}
	escaped := escapeText(title)
	underline := strings.Repeat(adornment, utf8.RuneCountInString(escaped))
	return escaped + "\n" + underline, nil
}

// directiveOption is a single field line under a directive header. A zero
// Value renders the valueless form `:key:`.
type directiveOption struct {
	Key   string
	Value string
}

// renderDirective formats a directive block: the header line, one option line
// per entry in the given order, then a blank line and the body lines. Options
// are emitted verbatim; this layer does not know which keys a directive
// accepts.
func renderDirective(kind, target string, options []directiveOption, body []string) string {
	var b strings.Builder
	b.WriteString(".. ")
	b.WriteString(kind)
	b.WriteString("::")
	if target != "" {
		b.WriteString(" ")
		b.WriteString(target)
	}
	for _, opt := range options {
		b.WriteString("\n")
		b.WriteString(directiveIndent)
		b.WriteString(":")
		b.WriteString(opt.Key)
		b.WriteString(":")
		if opt.Value != "" {
			b.WriteString(" ")
			b.WriteString(opt.Value)
		}
	}
	if len(body) > 0 {
		b.WriteString("\n")
		for _, line := range body {
			b.WriteString("\n")
			b.WriteString(directiveIndent)
			b.WriteString(line)
		}
	}
	return b.String()
}

// composeToctree builds a navigation-tree directive listing docnames in the
// given order. An empty list still yields a valid directive; consumers may
// prune an empty tree later.
func composeToctree(docnames []string, maxDepth int) string {
	opts := []directiveOption{{Key: "maxdepth", Value: strconv.Itoa(maxDepth)}}
	return renderDirective("toctree", "", opts, docnames)
}
