// SPDX-License-Identifier: MIT

package panel

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/mesh"
	"github.com/katalvlaran/pathgraph/ops"
	"github.com/katalvlaran/pathgraph/overlay"
	"github.com/katalvlaran/pathgraph/session"
)

// Canvas and list dimensions in cells.
const (
	CanvasWidth  = 56
	CanvasHeight = 16
	listRows     = 10
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	paneStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// frame holds the last overlay items delivered by the renderer.
type frame struct {
	mu    sync.Mutex
	items []overlay.TextItem
}

func (f *frame) set(items []overlay.TextItem) {
	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
}

func (f *frame) get() []overlay.TextItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items
}

// Model is the bubbletea model of the panel.
type Model struct {
	op         *ops.Operator
	sess       *session.Session
	renderer   *overlay.Renderer
	frame      *frame
	keys       KeyMap
	input      textinput.Model
	exportPath string

	cursor int
	status string
	err    error
}

// New returns a panel over the active mesh of op.Session. It switches the
// session to edit mode and opens an overlay renderer sized to the canvas;
// call Close when the program ends.
func New(op *ops.Operator, settings overlay.Settings, place, exportPath string) (Model, error) {
	sess := op.Session
	var points []mesh.Vec3
	err := sess.Do(func(v *session.View) error {
		obj, err := v.ActiveMesh()
		if err != nil {
			return err
		}
		for _, vert := range obj.Mesh.Vertices() {
			points = append(points, obj.World(vert.Co))
		}
		return nil
	})
	if err != nil {
		return Model{}, err
	}
	sess.SetMode(session.ModeEdit)

	f := &frame{}
	r := overlay.NewRenderer(sess, overlay.Fit(points, CanvasWidth, CanvasHeight, 1), f.set,
		overlay.WithLogger(op.Logger))
	if err := r.SetSettings(settings); err != nil {
		return Model{}, err
	}
	if err := r.Open(); err != nil {
		return Model{}, err
	}

	in := textinput.New()
	in.Placeholder = "place name"
	in.Prompt = "Place: "
	in.CharLimit = 64
	in.Width = 32
	in.SetValue(place)

	m := Model{
		op:         op,
		sess:       sess,
		renderer:   r,
		frame:      f,
		keys:       DefaultKeyMap,
		input:      in,
		exportPath: exportPath,
	}
	sess.Redraw()

	return m, nil
}

// Close releases the overlay subscription. Safe to call more than once.
func (m Model) Close() { m.renderer.Close() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.input.Focused() {
		switch {
		case key.Matches(keyMsg, m.keys.Confirm):
			m.input.Blur()
			m.save()
			return m, nil
		case key.Matches(keyMsg, m.keys.Back):
			m.input.Blur()
			return m, nil
		case keyMsg.String() == "ctrl+c":
			m.Close()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		rows, err := m.rows()
		if err != nil {
			m.report(err, "")
		} else if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		m.toggle()
	case key.Matches(keyMsg, m.keys.SelectAll):
		m.selectAll()
	case key.Matches(keyMsg, m.keys.Create):
		m.report(m.op.CreateLabelLayer(), "Created data layer")
	case key.Matches(keyMsg, m.keys.Edit):
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Save):
		m.save()
	case key.Matches(keyMsg, m.keys.Export):
		path, err := m.op.ExportGraph(m.exportPath)
		m.report(err, fmt.Sprintf("JSON file %q has been created", path))
	case key.Matches(keyMsg, m.keys.Labels):
		s := m.renderer.Settings()
		s.ShowLabels = !s.ShowLabels
		m.report(m.renderer.SetSettings(s), "")
	case key.Matches(keyMsg, m.keys.Indexes):
		s := m.renderer.Settings()
		s.ShowIndexes = !s.ShowIndexes
		m.report(m.renderer.SetSettings(s), "")
	case key.Matches(keyMsg, m.keys.Bigger):
		m.resize(+2)
	case key.Matches(keyMsg, m.keys.Smaller):
		m.resize(-2)
	}

	return m, nil
}

func (m *Model) report(err error, ok string) {
	m.err = err
	if err == nil {
		m.status = ok
		return
	}
	m.status = ""
	if errors.Is(err, labels.ErrMissingLayer) {
		m.err = fmt.Errorf("%s: press c to create it", TextMissingLayer)
	}
}

func (m *Model) save() {
	place := m.input.Value()
	n, err := m.op.SaveLabel(place)
	m.report(err, fmt.Sprintf("Saved %q on %d vertices", place, n))
}

func (m *Model) resize(delta int) {
	s := m.renderer.Settings()
	size := s.LabelsSize + delta
	if size < overlay.MinLabelsSize {
		size = overlay.MinLabelsSize
	}
	if size > overlay.MaxLabelsSize {
		size = overlay.MaxLabelsSize
	}
	s.LabelsSize = size
	m.report(m.renderer.SetSettings(s), "")
}

func (m *Model) toggle() {
	err := m.sess.Do(func(v *session.View) error {
		obj, err := v.ActiveMesh()
		if err != nil {
			return err
		}
		verts := obj.Mesh.Vertices()
		if m.cursor >= len(verts) {
			return nil
		}
		vert := verts[m.cursor]
		v.Touch()
		return obj.Mesh.SetSelected(vert.ID, !vert.Selected)
	})
	m.report(err, "")
}

func (m *Model) selectAll() {
	err := m.sess.Do(func(v *session.View) error {
		obj, err := v.ActiveMesh()
		if err != nil {
			return err
		}
		if len(obj.Mesh.Selected()) == obj.Mesh.VertexCount() {
			obj.Mesh.DeselectAll()
		} else {
			obj.Mesh.SelectAll()
		}
		v.Touch()
		return nil
	})
	m.report(err, "")
}

type row struct {
	vert  mesh.Vertex
	place string
}

// rows lists the vertices of the active mesh. Without one the list is empty
// and no error is reported.
func (m Model) rows() ([]row, error) {
	var out []row
	err := m.sess.Do(func(v *session.View) error {
		obj, err := v.ActiveMesh()
		if err != nil {
			return err
		}
		for _, vert := range obj.Mesh.Vertices() {
			out = append(out, row{vert: vert, place: obj.Labels.Get(vert.ID)})
		}
		return nil
	})
	if session.Unavailable(err) {
		err = nil
	}

	return out, err
}

// State returns the current panel state.
func (m Model) State() (State, error) {
	var st State
	err := m.sess.Do(func(v *session.View) error {
		var err error
		st, err = Inspect(v, m.renderer.Settings())
		return err
	})

	return st, err
}

// Cursor returns the highlighted vertex position.
func (m Model) Cursor() int { return m.cursor }

// Status returns the last success message and error.
func (m Model) Status() (string, error) { return m.status, m.err }

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	st, err := m.State()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Vertex Graph Flags"))
	b.WriteString(subtleStyle.Render("  " + st.Object))
	b.WriteString("\n\n")

	side := strings.Join(st.Lines(), "\n")
	if st.HasLayer {
		side += "\n\n" + m.input.View()
	}

	var list strings.Builder
	rows, rowsErr := m.rows()
	start := 0
	if m.cursor >= listRows {
		start = m.cursor - listRows + 1
	}
	for i := start; i < len(rows) && i < start+listRows; i++ {
		r := rows[i]
		mark := "[ ]"
		if r.vert.Selected {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %3d (%.2f, %.2f, %.2f) %s", mark, r.vert.Index, r.vert.Co.X, r.vert.Co.Y, r.vert.Co.Z, r.place)
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(side),
		paneStyle.Render(strings.TrimRight(list.String(), "\n")),
	)
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(paneStyle.Width(CanvasWidth + 4).Render(Canvas(m.frame.get(), CanvasWidth, CanvasHeight)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case rowsErr != nil:
		b.WriteString(errorStyle.Render(rowsErr.Error()))
	case m.status != "":
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteString("\n")

	var help []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(subtleStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")

	return b.String()
}
