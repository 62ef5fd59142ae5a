package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/layout"
)

// manageModel is the manage-widgets dialog: the full catalog as a
// checklist seeded from current membership, narrowed by fuzzy search.
// On apply it emits one desired-state map for the controller to diff.
type manageModel struct {
	cat     *catalog.Catalog
	query   string
	results []catalog.Definition
	cursor  int
	desired map[string]bool
}

func newManageModel(cat *catalog.Catalog, st *layout.State) *manageModel {
	desired := make(map[string]bool, len(cat.Kinds()))
	for _, kind := range cat.Kinds() {
		desired[kind] = st.HasKind(kind)
	}
	return &manageModel{
		cat:     cat,
		results: cat.Search(""),
		desired: desired,
	}
}

// handleKey consumes one key press. done means the dialog closed; apply
// means the collected desired map should be applied.
func (mm *manageModel) handleKey(msg tea.KeyMsg) (done, apply bool) {
	switch msg.String() {
	case "esc":
		return true, false
	case "enter":
		return true, true
	case "up":
		if mm.cursor > 0 {
			mm.cursor--
		}
	case "down":
		if mm.cursor < len(mm.results)-1 {
			mm.cursor++
		}
	case " ":
		if mm.cursor < len(mm.results) {
			kind := mm.results[mm.cursor].Kind
			mm.desired[kind] = !mm.desired[kind]
		}
	case "backspace":
		if mm.query != "" {
			mm.query = mm.query[:len(mm.query)-1]
			mm.refresh()
		}
	default:
		if msg.Type == tea.KeyRunes {
			mm.query += string(msg.Runes)
			mm.refresh()
		}
	}
	return false, false
}

func (mm *manageModel) refresh() {
	mm.results = mm.cat.Search(mm.query)
	if mm.cursor >= len(mm.results) {
		mm.cursor = len(mm.results) - 1
	}
	if mm.cursor < 0 {
		mm.cursor = 0
	}
}

func (mm *manageModel) view() string {
	var b strings.Builder
	b.WriteString("Manage widgets\n")
	b.WriteString(fmt.Sprintf("search: %s▌\n\n", mm.query))
	if len(mm.results) == 0 {
		b.WriteString("  (no matches)\n")
	}
	for i, def := range mm.results {
		cursor := "  "
		if i == mm.cursor {
			cursor = "> "
		}
		mark := " "
		if mm.desired[def.Kind] {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("%s[%s] %s\n", cursor, mark, def.Title))
	}
	b.WriteString("\nspace toggle · enter apply · esc cancel")
	return b.String()
}
