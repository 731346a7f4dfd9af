// Package live is an interactive converter. Every edit re-runs the pure codec
// on the whole input; there is no incremental state to keep in sync.
package live

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/morse/cmd/morse/codec"
	"github.com/gigurra/morse/cmd/morse/notify"
	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gigurra/morse/cmd/morse/speech"
	"github.com/gigurra/morse/cmd/morse/tone"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Mode int

const (
	ModeEncode Mode = iota
	ModeDecode
)

func (m Mode) String() string {
	if m == ModeDecode {
		return "Morse → Text"
	}
	return "Text → Morse"
}

// Deps are the collaborators the converter drives. Any of them may be nil,
// which disables the matching key binding.
type Deps struct {
	Player *tone.Player
	// Fallback takes over for the rest of the session once Player reports
	// tone.ErrAudioUnavailable.
	Fallback *tone.Player
	Timing   schedule.Timing
	Speech   *speech.Session
	Copy     func(string) error
	Notifier notify.Notifier
}

type playDoneMsg struct {
	seq int
	tl  schedule.Timeline
	err error
}

type captureMsg struct {
	text string
	err  error
}

type Model struct {
	deps Deps

	mode   Mode
	input  string
	output string
	issues int

	playing   bool
	playSeq   int
	capturing bool
	status    string
	width     int
}

func New(deps Deps, mode Mode) Model {
	return Model{deps: deps, mode: mode}
}

func (m Model) Input() string  { return m.input }
func (m Model) Output() string { return m.output }
func (m Model) Mode() Mode     { return m.mode }

func (m Model) Init() tea.Cmd { return nil }

// convert is the whole conversion step; it is called after every edit.
func convert(mode Mode, input string) (string, int) {
	var out string
	var issues []error
	if mode == ModeDecode {
		out, issues = codec.DecodeReport(input)
	} else {
		out, issues = codec.EncodeReport(input)
	}
	return out, len(issues)
}

func (m Model) setInput(input string) Model {
	m.input = input
	m.output, m.issues = convert(m.mode, input)
	return m
}

// morse returns the Morse side of the current conversion.
func (m Model) morse() string {
	if m.mode == ModeDecode {
		return m.input
	}
	return m.output
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case playDoneMsg:
		if msg.seq != m.playSeq {
			return m, nil
		}
		m.playing = false
		if errors.Is(msg.err, tone.ErrAudioUnavailable) {
			return m.fallBack(msg)
		}
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.status = "playback failed: " + msg.err.Error()
			m.notify("Morse playback", msg.err.Error())
		}
		return m, nil

	case captureMsg:
		m.capturing = false
		if msg.err != nil {
			m.status = msg.err.Error()
			if errors.Is(msg.err, speech.ErrCapabilityUnavailable) || errors.Is(msg.err, speech.ErrCaptureFailed) {
				m.notify("Morse speech input", msg.err.Error())
			}
			return m, nil
		}
		m.status = ""
		if m.mode == ModeEncode {
			m = m.setInput(speech.Append(m.input, msg.text))
			return m, nil
		}
		encoded := codec.Encode(msg.text)
		if strings.TrimSpace(m.input) == "" {
			m = m.setInput(encoded)
		} else {
			m = m.setInput(strings.TrimRight(m.input, " ") + codec.WordGap + encoded)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.deps.Player != nil {
			m.deps.Player.Stop()
		}
		if m.deps.Speech != nil {
			m.deps.Speech.Cancel()
		}
		return m, tea.Quit

	case tea.KeyTab:
		if m.mode == ModeEncode {
			m.mode = ModeDecode
		} else {
			m.mode = ModeEncode
		}
		m = m.setInput(m.output)
		m.status = ""

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m = m.setInput(string(r[:len(r)-1]))
		}

	case tea.KeyCtrlU:
		m = m.setInput("")

	case tea.KeySpace:
		m = m.setInput(m.input + " ")

	case tea.KeyEnter:
		if m.mode == ModeDecode {
			m = m.setInput(m.input + "\n")
		} else {
			m = m.setInput(m.input + " ")
		}

	case tea.KeyRunes:
		m = m.setInput(m.input + string(msg.Runes))

	case tea.KeyCtrlY:
		if m.deps.Copy == nil {
			return m, nil
		}
		if err := m.deps.Copy(m.output); err != nil {
			m.status = "copy failed: " + err.Error()
			m.notify("Morse clipboard", err.Error())
		} else {
			m.status = "copied to clipboard"
		}

	case tea.KeyCtrlP:
		if m.deps.Player == nil {
			return m, nil
		}
		m.playSeq++
		m.playing = true
		m.status = ""
		return m, playCmd(m.deps.Player, schedule.ScheduleTiming(m.morse(), m.deps.Timing), m.playSeq)

	case tea.KeyCtrlS:
		if m.deps.Player != nil {
			m.deps.Player.Stop()
		}

	case tea.KeyCtrlL:
		if m.deps.Speech == nil || m.capturing {
			return m, nil
		}
		m.capturing = true
		m.status = "listening..."
		return m, captureCmd(m.deps.Speech)
	}
	return m, nil
}

func playCmd(p *tone.Player, tl schedule.Timeline, seq int) tea.Cmd {
	return func() tea.Msg {
		return playDoneMsg{seq: seq, tl: tl, err: p.Play(context.Background(), tl)}
	}
}

// fallBack swaps in the fallback player after the speaker failed and replays
// the timeline on it.
func (m Model) fallBack(msg playDoneMsg) (tea.Model, tea.Cmd) {
	m.notify("Morse playback", "Audio output is unavailable; falling back to the terminal bell.")
	if m.deps.Fallback == nil {
		m.status = "audio output unavailable"
		return m, nil
	}
	m.deps.Player, m.deps.Fallback = m.deps.Fallback, nil
	m.status = "audio unavailable, using terminal bell"
	m.playSeq++
	m.playing = true
	return m, playCmd(m.deps.Player, msg.tl, m.playSeq)
}

func captureCmd(s *speech.Session) tea.Cmd {
	return func() tea.Msg {
		text, err := s.Capture(context.Background())
		return captureMsg{text: text, err: err}
	}
}

func (m Model) notify(title, message string) {
	if m.deps.Notifier != nil {
		_ = m.deps.Notifier.Notify(title, message)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MORSE  " + m.mode.String()))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Input"))
	b.WriteString("\n")
	b.WriteString(wrap(m.input, m.width))
	b.WriteString("█\n\n")
	b.WriteString(labelStyle.Render("Output"))
	b.WriteString("\n")
	b.WriteString(outputStyle.Render(wrap(m.output, m.width)))
	b.WriteString("\n\n")

	var state []string
	if m.issues > 0 {
		noun := "characters"
		if m.mode == ModeDecode {
			noun = "codes"
		}
		state = append(state, warnStyle.Render(fmt.Sprintf("%d unsupported %s skipped", m.issues, noun)))
	}
	if m.playing {
		state = append(state, "♪ playing")
	}
	if m.status != "" {
		state = append(state, truncate(m.status, m.width))
	}
	if len(state) > 0 {
		b.WriteString(strings.Join(state, "  ·  "))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: swap direction · ctrl+p: play · ctrl+s: stop · ctrl+y: copy · ctrl+l: speak · ctrl+u: clear · esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// truncate keeps status messages on one line, counting display columns.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// Run starts the interactive converter and blocks until the user quits.
func Run(deps Deps, mode Mode) error {
	_, err := tea.NewProgram(New(deps, mode), tea.WithAltScreen()).Run()
	return err
}
