// SPDX-License-Identifier: EPL-2.0

// Package ui provides the Bubbletea progress view of the audfx command.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/audfx"
)

// silenceDB is the level shown before any audio was measured.
const silenceDB = -60.0

type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusProcessing
	StatusComplete
	StatusError
)

// FileProgress tracks progress for a single audio file
type FileProgress struct {
	InputPath string
	Status    FileStatus

	// Fraction done, 0 to 1; stays 0 when the input length is unknown.
	Progress    float64
	Chunks      int
	StartTime   time.Time
	ElapsedTime time.Duration

	CurrentLevel float64
	PeakLevel    float64

	Result audfx.Result
	Error  error
}

// Model is the Bubbletea model for the processing UI. Files are addressed
// by path, so messages for several files may interleave.
type Model struct {
	Title          string
	Files          []FileProgress
	index          map[string]int
	Active         int
	CompletedFiles int
	FailedFiles    int

	StartTime time.Time
	Done      bool
	// Quit is set when the user asked to stop.
	Quit bool

	Width  int
	Height int
}

func NewModel(title string, inputFiles []string) Model {
	m := Model{
		Title:     title,
		index:     make(map[string]int, len(inputFiles)),
		StartTime: time.Now(),
	}
	for _, path := range inputFiles {
		m.add(path)
	}

	return m
}

func (m *Model) add(path string) int {
	if i, ok := m.index[path]; ok {
		return i
	}

	m.Files = append(m.Files, FileProgress{
		InputPath: path,
		Status:    StatusQueued,
		PeakLevel: silenceDB,
	})
	m.index[path] = len(m.Files) - 1

	return len(m.Files) - 1
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case FileStartMsg:
		i := m.add(msg.Path)
		m.Files[i].Status = StatusProcessing
		m.Files[i].StartTime = time.Now()
		m.Active++

	case ProgressMsg:
		i := m.add(msg.Path)
		m.Files[i] = updateFileProgress(m.Files[i], msg)

	case FileCompleteMsg:
		i := m.add(msg.Path)
		f := &m.Files[i]
		if f.Status == StatusProcessing {
			m.Active--
		}
		f.Result = msg.Result
		f.Error = msg.Err
		if !f.StartTime.IsZero() {
			f.ElapsedTime = time.Since(f.StartTime)
		}

		if msg.Err != nil {
			f.Status = StatusError
			m.FailedFiles++
		} else {
			f.Status = StatusComplete
			f.Progress = 1
			m.CompletedFiles++
		}

	case AllCompleteMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}

	return renderProcessingView(m)
}

func updateFileProgress(fp FileProgress, msg ProgressMsg) FileProgress {
	if fp.StartTime.IsZero() {
		fp.StartTime = time.Now()
	}

	p := msg.Progress
	fp.Status = StatusProcessing
	fp.Progress = p.Fraction
	fp.Chunks = p.Chunk + 1
	fp.ElapsedTime = time.Since(fp.StartTime)

	// -Inf for a silent chunk
	if p.LevelDB > silenceDB {
		fp.CurrentLevel = p.LevelDB
		fp.PeakLevel = max(fp.PeakLevel, p.LevelDB)
	} else {
		fp.CurrentLevel = silenceDB
	}

	return fp
}
