package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/config"
	"github.com/jask/moneyboard/internal/dashboard"
	"github.com/jask/moneyboard/internal/filter"
	"github.com/jask/moneyboard/internal/layout"
	"github.com/jask/moneyboard/internal/records"
	"github.com/jask/moneyboard/internal/widgets"
)

// How long a burst of amount-range keys settles before the pipeline
// recomputes. Enter commits immediately regardless of the delay.
const rangeCommitDelay = 300 * time.Millisecond

type recordsMsg struct {
	expenses []records.Expense
	income   []records.Income
}

type fetchErrMsg struct{ err error }

type rangeCommitMsg struct{ seq int }

// Model is the dashboard surface: it renders the grid for the current
// breakpoint, hosts every widget instance, and routes user intent into
// the instance controller and the shared filter state.
type Model struct {
	ctx     context.Context
	cfg     config.Config
	cat     *catalog.Catalog
	ctl     *dashboard.Controller
	fetcher *records.Fetcher
	session *filter.State

	expenses []records.Expense
	income   []records.Income
	view     filter.Result
	observed []string

	loading bool
	status  string

	width  int
	height int
	bp     layout.Breakpoint

	focusIdx int
	grabbed  bool

	manage *manageModel

	pendingRange *[2]float64
	pendingSeq   int

	keys keyMap
}

// New wires the dashboard model. The controller's filter-reset hook is
// expected to point at the same session state passed here.
func New(ctx context.Context, cfg config.Config, cat *catalog.Catalog, ctl *dashboard.Controller, fetcher *records.Fetcher, session *filter.State) *Model {
	m := &Model{
		ctx:     ctx,
		cfg:     cfg,
		cat:     cat,
		ctl:     ctl,
		fetcher: fetcher,
		session: session,
		loading: true,
		bp:      breakpointForCells(80),
		keys:    newKeyMap(),
	}
	m.recompute()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m *Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		expenses, income, err := m.fetcher.FetchAll(m.ctx, m.cfg.API.UserID)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return recordsMsg{expenses: expenses, income: income}
	}
}

func rangeTick(seq int) tea.Cmd {
	return tea.Tick(rangeCommitDelay, func(time.Time) tea.Msg {
		return rangeCommitMsg{seq: seq}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bp = breakpointForCells(msg.Width)
		return m, nil

	case recordsMsg:
		m.loading = false
		m.expenses = msg.expenses
		m.income = msg.income
		m.recompute()
		return m, nil

	case fetchErrMsg:
		// Never leave a partial stale view: both lists reset together.
		m.loading = false
		m.expenses = nil
		m.income = nil
		m.status = fmt.Sprintf("fetch failed: %v", msg.err)
		m.recompute()
		return m, nil

	case rangeCommitMsg:
		if m.pendingRange != nil && msg.seq == m.pendingSeq {
			m.commitRange()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.manage != nil {
		done, apply := m.manage.handleKey(msg)
		if done {
			if apply {
				m.ctl.ApplyMembership(m.ctx, m.manage.desired)
				m.clampFocus()
				m.recompute()
			}
			m.manage = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = ""
		return m, m.fetchCmd()

	case key.Matches(msg, m.keys.Manage):
		m.manage = newManageModel(m.cat, m.ctl.State())
		return m, nil

	case key.Matches(msg, m.keys.NextWidget):
		if !m.grabbed {
			m.cycleFocus(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevWidget):
		if !m.grabbed {
			m.cycleFocus(-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Grab):
		if m.focusedInstance() != nil {
			m.grabbed = !m.grabbed
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		// Removal only acts on a settled pane; a grabbed pane is mid-drag.
		if inst := m.focusedInstance(); inst != nil && !m.grabbed {
			m.ctl.Remove(m.ctx, inst.ID)
			m.clampFocus()
			m.recompute()
		}
		return m, nil

	case key.Matches(msg, m.keys.Period):
		m.cyclePeriod()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keys.Move):
		if m.grabbed {
			m.moveFocused(msg.String())
		}
		return m, nil

	case key.Matches(msg, m.keys.Resize):
		if m.grabbed {
			m.resizeFocused(msg.String())
		}
		return m, nil

	case key.Matches(msg, m.keys.UpperUp), key.Matches(msg, m.keys.UpperDown),
		key.Matches(msg, m.keys.LowerUp), key.Matches(msg, m.keys.LowerDown):
		return m, m.adjustRange(msg.String())

	case key.Matches(msg, m.keys.Commit):
		if m.pendingRange != nil {
			m.commitRange()
		}
		return m, nil
	}

	if inst := m.focusedInstance(); inst != nil && inst.Kind == catalog.KindFilterPanel {
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.toggleCategory(int(s[0] - '1'))
		}
	}
	return m, nil
}

func (m *Model) cycleFocus(dir int) {
	n := len(m.ctl.State().Widgets)
	if n == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + dir + n) % n
}

func (m *Model) focusedInstance() *layout.Instance {
	st := m.ctl.State()
	if m.focusIdx < 0 || m.focusIdx >= len(st.Widgets) {
		return nil
	}
	return &st.Widgets[m.focusIdx]
}

func (m *Model) clampFocus() {
	n := len(m.ctl.State().Widgets)
	if m.focusIdx >= n {
		m.focusIdx = n - 1
	}
	if m.focusIdx < 0 {
		m.focusIdx = 0
	}
	if n == 0 {
		m.grabbed = false
	}
}

// recompute re-runs the pure pipeline and stores the clamped filters
// back as the active set.
func (m *Model) recompute() {
	te := filter.ExpensesByPeriod(m.expenses, m.session.Period)

	// a wide-open upper bound follows the ceiling as new data raises it;
	// a user-narrowed bound stays put and only re-clamps downward
	if m.session.Active.AmountRange[1] >= m.view.MaxAmount {
		m.session.Active.AmountRange[1] = filter.DeriveMaxAmount(te)
	}

	m.view = filter.Apply(m.expenses, m.income, m.session.Period, m.session.Active)
	m.session.Active = m.view.Filters

	seen := make(map[string]bool)
	var names []string
	for _, r := range te {
		if !seen[r.CategoryName] {
			seen[r.CategoryName] = true
			names = append(names, r.CategoryName)
		}
	}
	sort.Strings(names)
	m.observed = names
}

func (m *Model) cyclePeriod() {
	next := filter.Presets[0]
	for i, p := range filter.Presets {
		if p == m.session.Period.Preset {
			next = filter.Presets[(i+1)%len(filter.Presets)]
			break
		}
	}
	m.session.Period = filter.PresetPeriod(next, time.Now())
}

func (m *Model) toggleCategory(idx int) {
	if idx < 0 || idx >= len(m.observed) {
		return
	}
	name := m.observed[idx]
	if m.session.Active.Categories[name] {
		delete(m.session.Active.Categories, name)
	} else {
		if m.session.Active.Categories == nil {
			m.session.Active.Categories = make(map[string]bool)
		}
		m.session.Active.Categories[name] = true
	}
	m.recompute()
}

func (m *Model) adjustRange(k string) tea.Cmd {
	if m.pendingRange == nil {
		r := m.session.Active.AmountRange
		m.pendingRange = &r
	}
	step := m.view.MaxAmount / 20
	if step <= 0 {
		step = 50
	}
	switch k {
	case "]":
		m.pendingRange[1] += step
	case "[":
		m.pendingRange[1] -= step
	case "}":
		m.pendingRange[0] += step
	case "{":
		m.pendingRange[0] -= step
	}
	clamped := filter.Clamp(filter.Filters{AmountRange: *m.pendingRange}, m.view.MaxAmount)
	*m.pendingRange = clamped.AmountRange
	m.pendingSeq++
	return rangeTick(m.pendingSeq)
}

func (m *Model) commitRange() {
	m.session.Active.AmountRange = *m.pendingRange
	m.pendingRange = nil
	m.recompute()
}

func (m *Model) moveFocused(k string) {
	m.updateFocusedEntry(func(e layout.Entry) layout.Entry {
		switch k {
		case "up":
			e.Y--
		case "down":
			e.Y++
		case "left":
			e.X--
		case "right":
			e.X++
		}
		return e
	})
}

func (m *Model) resizeFocused(k string) {
	m.updateFocusedEntry(func(e layout.Entry) layout.Entry {
		switch k {
		case "+":
			e.H++
		case "-":
			e.H--
		case ">":
			e.W++
		case "<":
			e.W--
		}
		return e
	})
}

func (m *Model) updateFocusedEntry(change func(layout.Entry) layout.Entry) {
	inst := m.focusedInstance()
	if inst == nil {
		return
	}
	entries := append([]layout.Entry(nil), m.ctl.State().Layouts[m.bp.Name]...)
	for i := range entries {
		if entries[i].InstanceID == inst.ID {
			entries[i] = clampEntry(change(entries[i]), m.bp.Cols)
			m.ctl.CommitGeometry(m.ctx, m.bp.Name, entries)
			return
		}
	}
}

func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	header := fmt.Sprintf("moneyboard · %s · user %s", periodLabel(m.session.Period), m.cfg.API.UserID)
	if m.loading {
		header += " · loading…"
	}
	if m.status != "" {
		header += " · " + m.status
	}

	body := renderGrid(m.ctl.State().Layouts[m.bp.Name], width, m.bp.Cols, m.drawPane)
	if len(m.ctl.State().Widgets) == 0 {
		body = "\n  no widgets yet — press m to add some"
	}

	base := header + "\n" + body + "\n" + m.footer()
	if m.manage != nil && m.height > 0 {
		return widgets.Popup(base, m.manage.view(), width, m.height)
	}
	return base
}

func (m *Model) drawPane(e layout.Entry, w, h int) string {
	kind := ""
	focused := false
	for i, wi := range m.ctl.State().Widgets {
		if wi.ID == e.InstanceID {
			kind = wi.Kind
			focused = i == m.focusIdx
			break
		}
	}
	def, ok := m.cat.Lookup(kind)
	if !ok {
		return ""
	}

	rc := RenderContext{
		Expenses:   m.view.Expenses,
		Income:     m.view.Income,
		Loading:    m.loading,
		UserID:     m.cfg.API.UserID,
		Period:     m.session.Period,
		Filters:    m.session.Active,
		MaxAmount:  m.view.MaxAmount,
		Categories: m.observed,
		Currency:   m.cfg.UI.CurrencySymbol,
	}
	if kind == catalog.KindFilterPanel {
		rc.PendingRange = m.pendingRange
	}

	content := "(unavailable)"
	if render, ok := rendererFor(kind); ok {
		content = render(rc, w-4, h-2)
	}
	return widgets.Pane{
		Title:   def.Title,
		Content: content,
		Focused: focused,
		Grabbed: focused && m.grabbed,
	}.Render(w, h)
}

func (m *Model) footer() string {
	bindings := m.keys.footerBindings(m.grabbed)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return lipgloss.NewStyle().Faint(true).Render(strings.Join(parts, " · "))
}
