package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/config/wizard"
	"github.com/imamik/launcher/internal/provisioning"
)

// Colors matching internal/ui/tui/styles.go palette.
var (
	colorGreen = lipgloss.Color("#22c55e")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)

func writeHeader(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")
}

func writeField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "    %-12s %s\n", name+":", value)
}

func writeSelections(b *strings.Builder, sel *wizard.Selections) {
	if sel.Mission != nil {
		writeField(b, "Mission", sel.Mission.Name)
	}
	if sel.Runtime != nil {
		writeField(b, "Runtime", wizard.Label(*sel.Runtime, isInteractiveTTY()))
	}
}

// renderZipResult describes a written zip archive.
func renderZipResult(sel *wizard.Selections, output string) string {
	var b strings.Builder
	writeHeader(&b, "launcher: "+sel.ProjectName)
	writeSelections(&b, sel)
	writeField(&b, "Archive", output)
	b.WriteString("\n")
	b.WriteString(greenStyle.Render("  ✓ Project downloaded"))
	b.WriteString("\n")
	return b.String()
}

// renderLaunchResult describes the provisioned repository and webhooks.
func renderLaunchResult(sel *wizard.Selections, req *provisioning.Request) string {
	var b strings.Builder
	writeHeader(&b, "launcher: "+req.Projectile.RepositoryName())
	writeSelections(&b, sel)
	writeField(&b, "Cluster", sel.ClusterID)
	writeField(&b, "Project", sel.ProjectName)
	if req.Repository != nil {
		writeField(&b, "Repository", req.Repository.HTMLURL)
	}

	if len(req.Webhooks) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Webhooks"))
		b.WriteString("\n")
		for _, h := range req.Webhooks {
			b.WriteString("    ")
			b.WriteString(dimStyle.Render(h.URL))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(greenStyle.Render("  ✓ Project launched"))
	b.WriteString("\n")
	return b.String()
}

// renderPublishResult summarizes a catalog upload.
func renderPublishResult(bucket, prefix string, result *catalog.PublishResult) string {
	var b strings.Builder
	writeHeader(&b, "launcher catalog: "+bucket)
	writeField(&b, "Prefix", prefix)
	writeField(&b, "Boosters", fmt.Sprintf("%d", result.Boosters))
	writeField(&b, "Uploaded", fmt.Sprintf("%d objects", len(result.Uploaded)))
	writeField(&b, "Deleted", fmt.Sprintf("%d objects", len(result.Deleted)))
	b.WriteString("\n")
	b.WriteString(greenStyle.Render("  ✓ Catalog published"))
	b.WriteString("\n")
	return b.String()
}
