// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/loudness"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#2E86AB")
	errorColor   = lipgloss.Color("#C0392B")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("audfx"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintKV writes one aligned key/value line.
func PrintKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(fmt.Sprintf("%-12s", key+":")), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintResult summarizes one processed file.
func PrintResult(w io.Writer, res audfx.Result) {
	fmt.Fprintf(w, "%s → %s\n", filepath.Base(res.Input), filepath.Base(res.Output))
	if res.Chain != "" {
		PrintKV(w, "Chain", res.Chain)
	}
	PrintKV(w, "Duration", res.Duration)
	PrintKV(w, "Chunks", res.Chunks)
	PrintKV(w, "Peak", fmt.Sprintf("%.1f dBFS", res.PeakDBFS))
	if res.InputLoudness != nil && res.OutputLoudness != nil {
		PrintKV(w, "Loudness", fmt.Sprintf("%.1f → %.1f LUFS",
			res.InputLoudness.IntegratedLUFS, res.OutputLoudness.IntegratedLUFS))
	}
}

// PrintReport writes a loudness report for path.
func PrintReport(w io.Writer, path string, r loudness.Report) {
	fmt.Fprintln(w, TitleStyle.Render(filepath.Base(path)))
	PrintKV(w, "Integrated", fmt.Sprintf("%.1f LUFS", r.IntegratedLUFS))
	PrintKV(w, "Momentary", fmt.Sprintf("%.1f LUFS max", r.MomentaryLUFS))
	PrintKV(w, "Peak", fmt.Sprintf("%.1f dBFS", r.PeakDBFS))
	PrintKV(w, "RMS", fmt.Sprintf("%.1f dB", r.RMSDB))
	PrintKV(w, "Frames", r.Frames)
}
