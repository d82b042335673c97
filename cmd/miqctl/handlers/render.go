package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/miqops/miqctl/internal/attributes"
	"github.com/miqops/miqctl/internal/provider"
)

var (
	verdictColorGreen = lipgloss.Color("#22c55e")
	verdictColorBlue  = lipgloss.Color("#3b82f6")
	verdictColorDim   = lipgloss.Color("#6b7280")
)

var (
	verdictChangedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(verdictColorGreen)

	verdictUnchangedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(verdictColorDim)

	verdictSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(verdictColorBlue)

	verdictDimStyle = lipgloss.NewStyle().
			Foreground(verdictColorDim)
)

// renderApplyResult produces the styled verdict for a provider converge.
func renderApplyResult(result *provider.ApplyResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderVerdict(result.Changed))
	b.WriteString("  ")
	b.WriteString(result.Msg)
	b.WriteString("\n")
	if result.ProviderID != 0 {
		b.WriteString(verdictDimStyle.Render(fmt.Sprintf("  provider id: %d", result.ProviderID)))
		b.WriteString("\n")
	}

	if result.Updates != nil {
		renderUpdateSection(&b, "Added", result.Updates.Added)
		renderUpdateSection(&b, "Updated", result.Updates.Updated)
		renderUpdateSection(&b, "Removed", result.Updates.Removed)
	}

	return b.String()
}

// renderDeleteResult produces the styled verdict for a provider delete.
func renderDeleteResult(result *provider.DeleteResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderVerdict(result.Changed))
	b.WriteString("  ")
	b.WriteString(result.Msg)
	b.WriteString("\n")
	if result.TaskID != 0 {
		b.WriteString(verdictDimStyle.Render(fmt.Sprintf("  task id: %d", result.TaskID)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderAttributesResult produces the styled verdict for an attribute
// apply.
func renderAttributesResult(result *attributes.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderVerdict(result.Changed))
	b.WriteString("  ")
	b.WriteString(result.Msg)
	b.WriteString("\n")

	if result.Updates != nil {
		if len(result.Updates.Added) > 0 {
			b.WriteString(verdictSectionStyle.Render("  Added"))
			b.WriteString("\n")
			for _, ca := range result.Updates.Added {
				b.WriteString(fmt.Sprintf("    %s/%s = %s\n", ca.Section, ca.Name, ca.Value))
			}
		}
		if len(result.Updates.Updated) > 0 {
			b.WriteString(verdictSectionStyle.Render("  Updated"))
			b.WriteString("\n")
			for _, ca := range result.Updates.Updated {
				b.WriteString(fmt.Sprintf("    %s/%s = %s\n", ca.Section, ca.Name, ca.Value))
			}
		}
	}

	return b.String()
}

// renderAttributesDeleteResult produces the styled verdict for an
// attribute delete.
func renderAttributesDeleteResult(result *attributes.DeleteResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderVerdict(result.Changed))
	b.WriteString("  ")
	b.WriteString(result.Msg)
	b.WriteString("\n")

	return b.String()
}

func renderVerdict(changed bool) string {
	if changed {
		return verdictChangedStyle.Render("  changed")
	}
	return verdictUnchangedStyle.Render("  unchanged")
}

func renderUpdateSection(b *strings.Builder, title string, entries map[string]any) {
	if len(entries) == 0 {
		return
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString(verdictSectionStyle.Render("  " + title))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("    %s: %v\n", k, entries[k]))
	}
}
