package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"ganttlane/internal/domain"
)

// editItemFields holds form-bound values for the item edit/add form.
type editItemFields struct {
	title     string
	kind      string
	assignees string
	labels    string
	start     string
	due       string
}

// editForm wraps a huh.Form plus the fields it binds. An empty id means
// the form creates a new item on completion.
type editForm struct {
	form *huh.Form
	f    *editItemFields
	id   string
}

func (e *editForm) Init() tea.Cmd { return e.form.Init() }

func (e *editForm) View() string { return e.form.View() }

// newEditForm builds the form pre-populated from an existing item.
// Blank date fields clear the corresponding date.
func newEditForm(item *domain.WorkItem) *editForm {
	f := &editItemFields{
		title:     item.Title,
		kind:      string(item.Kind),
		assignees: strings.Join(item.Assignees, ", "),
		labels:    strings.Join(item.Labels, ", "),
	}
	if item.Start != nil {
		f.start = item.Start.Format("2006-01-02")
	}
	if item.Due != nil {
		f.due = item.Due.Format("2006-01-02")
	}
	return &editForm{form: buildItemForm(f), f: f, id: item.ID}
}

// newAddForm builds an empty form for creating an item.
func newAddForm() *editForm {
	f := &editItemFields{kind: string(domain.KindTask)}
	return &editForm{form: buildItemForm(f), f: f}
}

func buildItemForm(f *editItemFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Task", "task"),
					huh.NewOption("Bug", "bug"),
					huh.NewOption("Feature", "feature"),
					huh.NewOption("Milestone", "milestone"),
				).
				Value(&f.kind),
			huh.NewInput().
				Title("Assignees (comma separated)").
				Placeholder("alice, bob").
				Value(&f.assignees),
			huh.NewInput().
				Title("Labels (comma separated)").
				Placeholder("backend").
				Value(&f.labels),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start (YYYY-MM-DD, blank to clear)").
				Placeholder("2025-06-01").
				Value(&f.start).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Due (YYYY-MM-DD, blank to clear)").
				Placeholder("2025-06-30").
				Value(&f.due).
				Validate(validateOptionalDate),
		),
	).WithTheme(boardHuhTheme()).WithShowHelp(false)
}

// updateForm routes messages to the modal form while it is open.
func (m *boardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.setStatus("cancelled")
		return m, nil
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}

	if m.form.form.State == huh.StateCompleted {
		e := m.form
		m.form = nil
		return m, m.applyEdit(e)
	}
	return m, cmd
}

// applyEdit persists the form: update when the form carries an item id,
// create otherwise.
func (m *boardModel) applyEdit(e *editForm) tea.Cmd {
	svc := m.app.Board
	return func() tea.Msg {
		ctx := context.Background()

		if e.id == "" {
			w := &domain.WorkItem{}
			e.f.apply(w)
			if err := svc.Create(ctx, w); err != nil {
				return editResultMsg{err: err}
			}
			return editResultMsg{title: w.Title}
		}

		current, err := svc.GetByID(ctx, e.id)
		if err != nil {
			return editResultMsg{err: err}
		}
		e.f.apply(current)
		if err := svc.Update(ctx, current); err != nil {
			return editResultMsg{err: err}
		}
		return editResultMsg{title: current.Title}
	}
}

// apply writes the parsed field values onto the item.
func (f *editItemFields) apply(w *domain.WorkItem) {
	w.Title = strings.TrimSpace(f.title)
	w.Kind = domain.ItemKind(f.kind)
	w.Assignees = splitCommaList(f.assignees)
	w.Labels = splitCommaList(f.labels)
	w.Start = parseOptionalDate(f.start)
	w.Due = parseOptionalDate(f.due)
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func boardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorSelect)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(colorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}
