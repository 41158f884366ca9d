package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBoardImport_Valid(t *testing.T) {
	board := &BoardImport{
		Items: []ItemImport{
			{Title: "Design schema", Kind: "task", Start: "2026-03-02", Due: "2026-03-06"},
			{Title: "Fix login", Kind: "bug", Assignees: []string{"alice"}},
			{Title: "Ship 2.4", Kind: "milestone", Due: "2026-03-20"},
		},
	}

	assert.Empty(t, ValidateBoardImport(board))
}

func TestValidateBoardImport_NoItems(t *testing.T) {
	errs := ValidateBoardImport(&BoardImport{})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one item")
}

func TestValidateBoardImport_MissingTitle(t *testing.T) {
	board := &BoardImport{Items: []ItemImport{{Kind: "task"}}}

	errs := ValidateBoardImport(board)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "items[0].title is required")
}

func TestValidateBoardImport_InvalidKind(t *testing.T) {
	board := &BoardImport{Items: []ItemImport{{Title: "X", Kind: "epic"}}}

	errs := ValidateBoardImport(board)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `items[0].kind: invalid value "epic"`)
}

func TestValidateBoardImport_BadDateFormat(t *testing.T) {
	board := &BoardImport{Items: []ItemImport{{Title: "X", Start: "03/02/2026"}}}

	errs := ValidateBoardImport(board)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "items[0].start: invalid date format")
}

func TestValidateBoardImport_DueBeforeStart(t *testing.T) {
	board := &BoardImport{Items: []ItemImport{
		{Title: "X", Start: "2026-03-06", Due: "2026-03-02"},
	}}

	errs := ValidateBoardImport(board)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "is before start")
}

func TestValidateBoardImport_CollectsAllErrors(t *testing.T) {
	board := &BoardImport{Items: []ItemImport{
		{Kind: "epic"},
		{Title: "Y", Due: "not-a-date"},
	}}

	errs := ValidateBoardImport(board)

	assert.Len(t, errs, 3)
}

func TestLoadBoardImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	content := `items:
  - title: Design schema
    kind: task
    assignees: [alice]
    labels: [backend]
    start: 2026-03-02
    due: 2026-03-06
  - title: Spike queue backend
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	board, err := LoadBoardImport(path)
	require.NoError(t, err)

	require.Len(t, board.Items, 2)
	assert.Equal(t, "Design schema", board.Items[0].Title)
	assert.Equal(t, []string{"alice"}, board.Items[0].Assignees)
	assert.Equal(t, "2026-03-02", board.Items[0].Start)
	assert.Empty(t, board.Items[1].Kind)
}

func TestLoadBoardImport_MissingFile(t *testing.T) {
	_, err := LoadBoardImport(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBoardImport_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [title: {"), 0o644))

	_, err := LoadBoardImport(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}
