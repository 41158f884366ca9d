package cli

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ganttlane/internal/config"
	"ganttlane/internal/domain"
	"ganttlane/internal/reconcile"
	"ganttlane/internal/repository"
	"ganttlane/internal/service"
	"ganttlane/internal/teatest"
	"ganttlane/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Board.DebounceMS = 20
	return &App{
		Board:  service.NewBoardService(repository.NewSQLiteWorkItemRepo(testutil.NewTestDB(t)), zerolog.Nop()),
		Config: cfg,
		Logger: zerolog.Nop(),
	}
}

// newTestBoard builds a board over the app and drains its initial load.
// Messages sent from committer goroutines land on the returned channel;
// tests feed them back through the driver.
func newTestBoard(t *testing.T, app *App) (*teatest.Driver, *boardModel, chan tea.Msg) {
	t.Helper()
	m := newBoardModel(app)
	msgs := make(chan tea.Msg, 16)
	m.notify = func(msg tea.Msg) { msgs <- msg }
	t.Cleanup(m.committer.Stop)

	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()
	return d, m, msgs
}

func awaitMsg(t *testing.T, msgs chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-msgs:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async message")
		return nil
	}
}

func mustCreate(t *testing.T, app *App, items ...*domain.WorkItem) {
	t.Helper()
	for _, w := range items {
		require.NoError(t, app.Board.Create(context.Background(), w))
	}
}

func TestBoard_RendersGroupBandsAndPacksLanes(t *testing.T) {
	app := newTestApp(t)
	mustCreate(t, app,
		testutil.NewTestItem("Schema work", testutil.WithAssignees("alice"),
			testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7))),
		testutil.NewTestItem("API fixes", testutil.WithAssignees("alice"),
			testutil.WithSpan(testutil.Day(2025, 3, 5), testutil.Day(2025, 3, 10))),
		testutil.NewTestItem("Dashboard", testutil.WithAssignees("bob"),
			testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 6))),
	)
	_, m, _ := newTestBoard(t, app)

	view := m.View()
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "bob")
	assert.Contains(t, view, "Schema work")

	// The two overlapping alice items land on different rows.
	require.Len(t, m.layout.bars, 3)
	var schemaRow, apiRow = -1, -1
	for _, b := range m.layout.bars {
		switch b.item.Title {
		case "Schema work":
			schemaRow = b.row
		case "API fixes":
			apiRow = b.row
		}
	}
	assert.NotEqual(t, schemaRow, apiRow, "overlapping items must not share a lane")
}

func TestBoard_KeyboardMoveStagesThenConfirms(t *testing.T) {
	app := newTestApp(t)
	item := testutil.NewTestItem("Drag me", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
	mustCreate(t, app, item)
	d, m, msgs := newTestBoard(t, app)

	// Move one unit right: staged immediately, committed after debounce.
	d.PressKey('l')
	assert.Equal(t, reconcile.StatePending, m.rec.State(item.ID))
	assert.True(t, m.layout.barOf(item.ID).pending, "pending items render distinctly")

	msg := awaitMsg(t, msgs)
	require.IsType(t, commitDoneMsg{}, msg)
	d.Send(msg) // triggers the refresh that reconciles the override

	assert.Equal(t, reconcile.StateConfirmed, m.rec.State(item.ID))
	fetched, err := app.Board.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Start.Equal(testutil.Day(2025, 3, 4)))
	assert.True(t, fetched.Due.Equal(testutil.Day(2025, 3, 8)))
}

// commitCounter counts CommitSpan calls going through to the real service.
type commitCounter struct {
	service.BoardService
	mu sync.Mutex
	n  int
}

func (c *commitCounter) CommitSpan(ctx context.Context, id string, span repository.SpanUpdate) error {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
	return c.BoardService.CommitSpan(ctx, id, span)
}

func (c *commitCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestBoard_RapidNudgesCoalesceIntoOneCommit(t *testing.T) {
	app := newTestApp(t)
	counter := &commitCounter{BoardService: app.Board}
	app.Board = counter
	item := testutil.NewTestItem("Burst", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
	mustCreate(t, app, item)
	d, _, msgs := newTestBoard(t, app)

	// Three nudges inside the debounce window.
	d.PressKey('l')
	d.PressKey('l')
	d.PressKey('l')

	msg := awaitMsg(t, msgs)
	require.IsType(t, commitDoneMsg{}, msg)
	d.Send(msg)

	assert.Equal(t, 1, counter.count(), "rapid reschedules coalesce into one commit")
	fetched, err := app.Board.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	// Only the final interval was sent.
	assert.True(t, fetched.Start.Equal(testutil.Day(2025, 3, 6)))
}

func TestBoard_MouseDragMovesBar(t *testing.T) {
	app := newTestApp(t)
	item := testutil.NewTestItem("Dragged", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
	mustCreate(t, app, item)
	d, m, _ := newTestBoard(t, app)

	b := m.layout.barOf(item.ID)
	require.NotNil(t, b)
	// Press in the bar's interior: a move, not a resize.
	px, py := b.x+b.width/2, b.row+laneTop
	d.MousePress(px, py)
	require.NotNil(t, m.gesture)

	// Day granularity is 4 cells per unit: 4 cells right is one day.
	d.MouseMotion(px+4, py)
	d.MouseRelease(px+4, py)

	assert.Equal(t, reconcile.StatePending, m.rec.State(item.ID))
	span := m.rec.Pending()[item.ID]
	assert.True(t, span.Start.Equal(testutil.Day(2025, 3, 4)))
	assert.True(t, span.End.Equal(testutil.Day(2025, 3, 8)))
}

func TestBoard_MouseDragEdgeResizesDue(t *testing.T) {
	app := newTestApp(t)
	item := testutil.NewTestItem("Resize me", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
	mustCreate(t, app, item)
	d, m, _ := newTestBoard(t, app)

	b := m.layout.barOf(item.ID)
	require.NotNil(t, b)
	// Press on the last cell: resize-end.
	px, py := b.x+b.width-1, b.row+laneTop
	d.MousePress(px, py)
	d.MouseMotion(px+4, py)
	d.MouseRelease(px+4, py)

	span := m.rec.Pending()[item.ID]
	assert.True(t, span.Start.Equal(testutil.Day(2025, 3, 3)), "resize keeps the start anchored")
	assert.True(t, span.End.Equal(testutil.Day(2025, 3, 8)))
}

func TestBoard_MouseDragAcrossBandsReassigns(t *testing.T) {
	app := newTestApp(t)
	item := testutil.NewTestItem("Handoff", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
	mustCreate(t, app, item,
		testutil.NewTestItem("Anchor", testutil.WithAssignees("bob"),
			testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 6))),
	)
	d, m, _ := newTestBoard(t, app)

	b := m.layout.barOf(item.ID)
	require.NotNil(t, b)
	var bobBand int
	for _, band := range m.layout.bands {
		if band.ID == "bob" {
			bobBand = band.Top
		}
	}

	px, py := b.x+b.width/2, b.row+laneTop
	d.MousePress(px, py)
	d.MouseMotion(px, bobBand+laneTop)
	d.MouseRelease(px, bobBand+laneTop)

	// The reassign command ran during drain; the refresh landed too.
	fetched, err := app.Board.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, fetched.Assignees)
}

// failingBoard rejects every span commit.
type failingBoard struct {
	service.BoardService
}

func (f *failingBoard) CommitSpan(ctx context.Context, id string, span repository.SpanUpdate) error {
	return errors.New("store unavailable")
}

func TestBoard_CommitFailureStaysPendingAndSurfaces(t *testing.T) {
	app := newTestApp(t)
	item := testutil.NewTestItem("Unlucky", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7)))
	mustCreate(t, app, item)
	app.Board = &failingBoard{BoardService: app.Board}
	d, m, msgs := newTestBoard(t, app)

	d.PressKey('l')
	msg := awaitMsg(t, msgs)
	require.IsType(t, commitFailedMsg{}, msg)
	d.Send(msg)

	// Optimistic value stays on display; the failure is reported, not
	// silently rolled back.
	assert.Equal(t, reconcile.StatePending, m.rec.State(item.ID))
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "commit failed")
}

func TestBoard_GroupCycleAndZoom(t *testing.T) {
	app := newTestApp(t)
	mustCreate(t, app, testutil.NewTestItem("Item", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7))))
	d, m, _ := newTestBoard(t, app)

	require.Equal(t, domain.GroupAssignee, m.groupMode)
	d.PressKey('g')
	assert.Equal(t, domain.GroupLabel, m.groupMode)
	d.PressKey('g')
	assert.Equal(t, domain.GroupNone, m.groupMode)

	d.PressKey('-')
	assert.Equal(t, "week", string(m.gran))
	d.PressKey('+')
	d.PressKey('+')
	assert.Equal(t, "hour", string(m.gran))
	d.PressKey('+')
	assert.Equal(t, "hour", string(m.gran), "zoom clamps at the finest scale")
}

func TestBoard_EditFormOpensAndCancels(t *testing.T) {
	app := newTestApp(t)
	mustCreate(t, app, testutil.NewTestItem("Editable", testutil.WithAssignees("alice"),
		testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7))))
	d, m, _ := newTestBoard(t, app)

	d.PressKey('e')
	require.NotNil(t, m.form)
	assert.Contains(t, strings.ToLower(d.View()), "title")

	d.PressEsc()
	assert.Nil(t, m.form)
}

func TestBoard_SelectionMovesWithKeys(t *testing.T) {
	app := newTestApp(t)
	mustCreate(t, app,
		testutil.NewTestItem("First", testutil.WithAssignees("alice"),
			testutil.WithSpan(testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 5))),
		testutil.NewTestItem("Second", testutil.WithAssignees("alice"),
			testutil.WithSpan(testutil.Day(2025, 3, 4), testutil.Day(2025, 3, 8))),
	)
	d, m, _ := newTestBoard(t, app)

	require.Equal(t, 0, m.cursor)
	d.PressKey('j')
	assert.Equal(t, 1, m.cursor)
	d.PressKey('j')
	assert.Equal(t, 1, m.cursor, "cursor clamps at the last bar")
	d.PressKey('k')
	assert.Equal(t, 0, m.cursor)
}
