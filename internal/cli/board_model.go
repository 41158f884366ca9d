package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ganttlane/internal/domain"
	"ganttlane/internal/drag"
	"ganttlane/internal/reconcile"
	"ganttlane/internal/repository"
	"ganttlane/internal/scheduler"
	"ganttlane/internal/service"
)

// laneTop is the first terminal row of the lane area (below the title and
// the time axis). Mouse coordinates are translated by this offset.
const laneTop = 2

// itemsLoadedMsg carries a fresh authoritative snapshot.
type itemsLoadedMsg struct {
	items []*domain.WorkItem
	err   error
}

// commitDoneMsg signals a debounced span commit reached the store.
type commitDoneMsg struct{ id string }

// commitFailedMsg signals a commit failed; the item stays pending.
type commitFailedMsg struct {
	id  string
	err error
}

// reassignResultMsg signals the outcome of a drag group reassignment.
type reassignResultMsg struct {
	id  string
	err error
}

// editResultMsg signals the outcome of the edit/add form.
type editResultMsg struct {
	title string
	err   error
}

// boardModel is the root bubbletea model: a Gantt board of group bands,
// each packed into overlap-free lanes, with keyboard and mouse
// rescheduling running through the reconcile pipeline.
type boardModel struct {
	app *App

	keys      boardKeyMap
	rec       *reconcile.Reconciler
	committer *reconcile.Committer
	policy    scheduler.DurationPolicy
	table     drag.Table
	gran      drag.Granularity
	edge      int
	groupMode domain.GroupMode
	anchor    time.Time

	items  []*domain.WorkItem
	layout *boardLayout
	cursor int

	// In-flight mouse gesture.
	gesture    *drag.Drag
	dragOrigin domain.Interval
	pressX     int

	// Modal edit form, nil when the board has focus.
	form *editForm

	status    string
	statusErr bool
	loading   bool

	width, height int
	quitting      bool

	// notify delivers messages from committer goroutines into the
	// program loop. Set to tea.Program.Send by RunBoard, or to a test
	// collector by the test driver.
	notify func(tea.Msg)
}

func newBoardModel(app *App) *boardModel {
	cfg := app.Config
	m := &boardModel{
		app:       app,
		keys:      newBoardKeyMap(),
		policy:    cfg.DurationPolicy(),
		table:     cfg.ScaleTable(),
		gran:      cfg.Granularity(),
		edge:      cfg.EdgeMargin(),
		groupMode: cfg.GroupMode(),
		anchor:    time.Now(),
		loading:   true,
	}
	m.rec = reconcile.New(cfg.Tolerance())
	m.committer = reconcile.NewCommitter(cfg.Debounce(), m.commitSpan,
		reconcile.WithFailureHandler(m.commitFailed))
	return m
}

func (m *boardModel) scale() drag.Scale {
	return m.table.Scale(m.gran)
}

func (m *boardModel) send(msg tea.Msg) {
	if m.notify != nil {
		m.notify(msg)
	}
}

// commitSpan is the Committer's commit function. It runs on a timer
// goroutine, so results travel back through notify rather than mutating
// the model directly.
func (m *boardModel) commitSpan(ctx context.Context, id string, span domain.Interval) error {
	start, end := span.Start, span.End
	if err := m.app.Board.CommitSpan(ctx, id, repository.SpanUpdate{Start: &start, Due: &end}); err != nil {
		return err
	}
	m.send(commitDoneMsg{id: id})
	return nil
}

func (m *boardModel) commitFailed(id string, err error) {
	m.send(commitFailedMsg{id: id, err: err})
}

func (m *boardModel) Init() tea.Cmd {
	return m.loadItems()
}

func (m *boardModel) loadItems() tea.Cmd {
	svc := m.app.Board
	return func() tea.Msg {
		items, err := svc.Items(context.Background())
		return itemsLoadedMsg{items: items, err: err}
	}
}

// rebuild recomputes the layout. A non-empty previewID overlays the
// in-flight gesture preview on top of the reconciler state so the bar
// tracks the pointer before anything is staged.
func (m *boardModel) rebuild(previewID string, preview domain.Interval) {
	items := m.items
	if previewID != "" {
		items = make([]*domain.WorkItem, len(m.items))
		for i, it := range m.items {
			if it.ID == previewID {
				w := *it
				start, end := preview.Start, preview.End
				w.Start, w.Due = &start, &end
				items[i] = &w
				continue
			}
			items[i] = it
		}
	}
	m.layout = buildLayout(items, m.rec, m.groupMode, m.policy, m.anchor, m.scale())
	if m.cursor >= len(m.layout.bars) {
		m.cursor = len(m.layout.bars) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *boardModel) itemByID(id string) *domain.WorkItem {
	for _, it := range m.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (m *boardModel) selectedBar() *bar {
	if m.layout == nil || m.cursor >= len(m.layout.bars) {
		return nil
	}
	return &m.layout.bars[m.cursor]
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case itemsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("load failed: %v", msg.err))
			return m, nil
		}
		m.items = msg.items
		// Compare the fresh authoritative spans against staged overrides;
		// matches within tolerance flip back to Confirmed.
		spans := make(map[string]domain.Interval, len(msg.items))
		for _, it := range msg.items {
			spans[it.ID] = m.policy.Span(*it, m.anchor)
		}
		if confirmed := m.rec.ObserveAll(spans); len(confirmed) > 0 {
			m.setStatus(fmt.Sprintf("%d change(s) confirmed", len(confirmed)))
		}
		m.rebuild("", domain.Interval{})
		return m, nil

	case commitDoneMsg:
		// Refresh to learn what the store actually recorded.
		return m, m.loadItems()

	case commitFailedMsg:
		title := msg.id
		if m.layout != nil {
			if b := m.layout.barOf(msg.id); b != nil {
				title = b.item.Title
			}
		}
		m.setError(fmt.Sprintf("commit failed for %q: %v (still pending)", title, msg.err))
		return m, nil

	case reassignResultMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("reassign failed: %v", msg.err))
			return m, nil
		}
		return m, m.loadItems()

	case editResultMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("save failed: %v", msg.err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("saved %q", msg.title))
		return m, m.loadItems()

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.form == nil {
			return m.handleMouse(msg)
		}
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Push out any debounced commits before the program exits.
		m.committer.FlushAll()
		m.committer.Stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.layout != nil && m.cursor < len(m.layout.bars)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.MoveLeft):
		m.nudge(drag.ModeMove, -1)
	case key.Matches(msg, m.keys.MoveRight):
		m.nudge(drag.ModeMove, 1)
	case key.Matches(msg, m.keys.DueEarlier):
		m.nudge(drag.ModeResizeEnd, -1)
	case key.Matches(msg, m.keys.DueLater):
		m.nudge(drag.ModeResizeEnd, 1)
	case key.Matches(msg, m.keys.StartSooner):
		m.nudge(drag.ModeResizeStart, -1)
	case key.Matches(msg, m.keys.StartLater):
		m.nudge(drag.ModeResizeStart, 1)

	case key.Matches(msg, m.keys.Group):
		m.groupMode = nextGroupMode(m.groupMode)
		m.rebuild("", domain.Interval{})
		m.setStatus("grouping: " + string(m.groupMode))
	case key.Matches(msg, m.keys.ZoomIn):
		m.setGranularity(m.gran.Zoom(-1))
	case key.Matches(msg, m.keys.ZoomOut):
		m.setGranularity(m.gran.Zoom(1))

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadItems()

	case key.Matches(msg, m.keys.Edit):
		if b := m.selectedBar(); b != nil {
			if it := m.itemByID(b.item.ID); it != nil {
				m.form = newEditForm(it)
				return m, m.form.Init()
			}
		}
	case key.Matches(msg, m.keys.Add):
		m.form = newAddForm()
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if b := m.selectedBar(); b != nil {
			return m, m.deleteItem(b.item.ID, b.item.Title)
		}
	}
	return m, nil
}

// nudge reschedules the selected item from the keyboard by whole units,
// running through the same gesture interpreter as a mouse drag so resize
// clamping behaves identically.
func (m *boardModel) nudge(mode drag.Mode, units int) {
	b := m.selectedBar()
	if b == nil {
		return
	}
	scale := m.scale()
	g := drag.Begin(b.item.ID, b.span, mode, scale)
	g.MoveTo(scale.Cells(time.Duration(units)*m.gran.UnitDuration()), 0)
	res := g.End()
	if res.Changed {
		m.stageAndRequest(res.ID, b.span, res.Span)
	}
}

// stageAndRequest stages a proposed interval and, when it is material,
// schedules the debounced commit.
func (m *boardModel) stageAndRequest(id string, original, proposed domain.Interval) {
	if !m.rec.Stage(id, original, proposed) {
		return
	}
	m.committer.Request(id, proposed)
	m.rebuild("", domain.Interval{})
	m.setStatus(fmt.Sprintf("%s → %s", proposed.Start.Format("Jan 2"), proposed.End.Format("Jan 2")))
}

func (m *boardModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, row := msg.X, msg.Y-laneTop

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.layout == nil {
			return m, nil
		}
		b := m.layout.barAt(x, row)
		if b == nil {
			return m, nil
		}
		for i := range m.layout.bars {
			if m.layout.bars[i].item.ID == b.item.ID {
				m.cursor = i
			}
		}
		mode := drag.ClassifyMode(x-b.x, b.width, m.edge)
		m.gesture = drag.Begin(b.item.ID, b.span, mode, m.scale()).
			WithGroups(m.layout.bands, b.group)
		m.dragOrigin = b.span
		m.pressX = x

	case tea.MouseActionMotion:
		if m.gesture == nil {
			return m, nil
		}
		preview := m.gesture.MoveTo(x-m.pressX, row)
		m.rebuild(m.gesture.ID(), preview)

	case tea.MouseActionRelease:
		if m.gesture == nil {
			return m, nil
		}
		m.gesture.MoveTo(x-m.pressX, row)
		res := m.gesture.End()
		m.gesture = nil

		var cmd tea.Cmd
		if res.Group != nil {
			cmd = m.reassign(res.ID, *res.Group)
		}
		if res.Changed {
			m.stageAndRequest(res.ID, m.dragOrigin, res.Span)
		} else {
			m.rebuild("", domain.Interval{})
		}
		return m, cmd
	}
	return m, nil
}

func (m *boardModel) reassign(id, group string) tea.Cmd {
	if group == service.UnassignedGroup {
		group = ""
	}
	svc := m.app.Board
	mode := m.groupMode
	return func() tea.Msg {
		err := svc.Reassign(context.Background(), id, mode, group)
		return reassignResultMsg{id: id, err: err}
	}
}

func (m *boardModel) deleteItem(id, title string) tea.Cmd {
	svc := m.app.Board
	return func() tea.Msg {
		if err := svc.Delete(context.Background(), id); err != nil {
			return editResultMsg{err: err}
		}
		return editResultMsg{title: title + " (deleted)"}
	}
}

func (m *boardModel) setGranularity(g drag.Granularity) {
	if g == m.gran {
		return
	}
	m.gran = g
	m.rebuild("", domain.Interval{})
	m.setStatus("scale: " + string(g))
}

func (m *boardModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *boardModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

func nextGroupMode(mode domain.GroupMode) domain.GroupMode {
	switch mode {
	case domain.GroupNone:
		return domain.GroupAssignee
	case domain.GroupAssignee:
		return domain.GroupLabel
	default:
		return domain.GroupNone
	}
}
