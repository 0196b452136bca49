// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 60

var (
	titleColor = lipgloss.Color("#2E86AB")
	okColor    = lipgloss.Color("#00AA00")
	busyColor  = lipgloss.Color("#F6AE2D")
	failColor  = lipgloss.Color("#C0392B")
	mutedColor = lipgloss.Color("#888888")
)

func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	b.WriteString(renderFileQueue(m))
	b.WriteString("\n")

	b.WriteString(renderOverallProgress(m))

	return b.String()
}

func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		Render("audfx - " + m.Title)

	subtitle := lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true).
		Render(fmt.Sprintf("Processing %d file(s), q to stop", len(m.Files)))

	return title + "\n" + subtitle
}

func renderFileQueue(m Model) string {
	var b strings.Builder

	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file))
		b.WriteString("\n")
	}

	return b.String()
}

func renderFileEntry(file FileProgress) string {
	fileName := filepath.Base(file.InputPath)

	switch file.Status {
	case StatusComplete:
		icon := lipgloss.NewStyle().Foreground(okColor).Render("✓")
		return fmt.Sprintf(" %s %s → %s\n   %s",
			icon, fileName, filepath.Base(file.Result.Output), renderResultLine(file))

	case StatusProcessing:
		icon := lipgloss.NewStyle().Foreground(busyColor).Render("⚙")
		return fmt.Sprintf(" %s %s\n%s", icon, fileName, renderFileDetails(file))

	case StatusError:
		icon := lipgloss.NewStyle().Foreground(failColor).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, fileName, file.Error)

	default:
		icon := lipgloss.NewStyle().Foreground(mutedColor).Render("○")
		return fmt.Sprintf(" %s %s\n   Queued...", icon, fileName)
	}
}

func renderResultLine(file FileProgress) string {
	res := file.Result
	line := fmt.Sprintf("%v in %d chunks | Peak: %.1f dBFS", res.Duration, res.Chunks, res.PeakDBFS)
	if res.InputLoudness != nil && res.OutputLoudness != nil {
		line += fmt.Sprintf(" | %.1f → %.1f LUFS", res.InputLoudness.IntegratedLUFS, res.OutputLoudness.IntegratedLUFS)
	}

	return line
}

func renderFileDetails(file FileProgress) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(titleColor).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder

	content.WriteString(renderProgressBar(file.Progress, 40))
	content.WriteString("\n")

	elapsed := file.ElapsedTime.Seconds()
	if file.Progress > 0 {
		remaining := elapsed/file.Progress - elapsed
		content.WriteString(fmt.Sprintf("Elapsed: %.1fs | Remaining: ~%.1fs | Chunk %d\n", elapsed, remaining, file.Chunks))
	} else {
		content.WriteString(fmt.Sprintf("Elapsed: %.1fs | Chunk %d\n", elapsed, file.Chunks))
	}

	content.WriteString(fmt.Sprintf("Level: %.1f dB | Peak: %.1f dB", file.CurrentLevel, file.PeakLevel))

	return box.Render(content.String())
}

func renderProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	return fmt.Sprintf("%s %d%%", bar, int(progress*100))
}

func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Padding(0, 1).
		Width(boxWidth)

	content := fmt.Sprintf("%d of %d complete, %d running, %d failed",
		m.CompletedFiles, len(m.Files), m.Active, m.FailedFiles)

	return box.Render(content)
}

func renderCompletionSummary(m Model) string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(okColor).
		Render("Processing complete")
	if m.FailedFiles > 0 {
		header = lipgloss.NewStyle().
			Bold(true).
			Foreground(failColor).
			Render(fmt.Sprintf("Processing finished with %d failure(s)", m.FailedFiles))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, file := range m.Files {
		if file.Status == StatusComplete || file.Status == StatusError {
			b.WriteString(renderFileEntry(file))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", boxWidth))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d processed, %d failed\n", m.CompletedFiles, m.FailedFiles))

	return b.String()
}
