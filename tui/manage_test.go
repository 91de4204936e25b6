package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/deck"
)

func TestManageEnterAndLeave(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, _ = press(t, m, "right")
	id := m.Session().ID

	m, _ = press(t, m, "m")
	assert.Equal(t, ScreenManage, m.Screen())
	assert.Contains(t, m.View(), "The Hundred")

	m, _ = press(t, m, "esc")
	assert.Equal(t, ScreenStudy, m.Screen())
	assert.Equal(t, id, m.Session().ID, "an unchanged collection keeps the session")
}

func TestManageHideResetsSession(t *testing.T) {
	m, store := newTestModel(t, testRecords())
	id := m.Session().ID

	m, _ = press(t, m, "m")
	m, cmd := press(t, m, "x")
	m = runSave(t, m, cmd)

	assert.True(t, m.Records()[0].Hidden)
	status, isErr := m.Status()
	assert.False(t, isErr)
	assert.Equal(t, "Exercise hidden", status)
	assert.Contains(t, m.View(), "(hidden)")

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, stored[0].Hidden)

	m, _ = press(t, m, "esc")
	assert.NotEqual(t, id, m.Session().ID)
	assert.Equal(t, 3, m.Session().Len())
}

func TestManageNavigate(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, _ = press(t, m, "m", "down", "down", "j")
	rec, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, int64(4), rec.ID)

	m, _ = press(t, m, "down")
	rec, _ = m.selected()
	assert.Equal(t, int64(4), rec.ID)

	m, _ = press(t, m, "up", "k")
	rec, _ = m.selected()
	assert.Equal(t, int64(2), rec.ID)
}

func TestManageSearch(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, _ = press(t, m, "m", "/")
	m = typeText(t, m, "saw")
	m, _ = press(t, m, "enter")

	require.Len(t, m.filtered, 1)
	assert.Equal(t, int64(3), m.filtered[0].ID)

	m, _ = press(t, m, "t")
	assert.Empty(t, m.filtered, "the filter applies to titles in the display language")

	m, _ = press(t, m, "/", "esc")
	assert.Len(t, m.filtered, 4)
}

func TestManageEditSave(t *testing.T) {
	m, store := newTestModel(t, testRecords())
	m, _ = press(t, m, "m", "enter")
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Edit exercise #1")

	m = typeText(t, m, "XYZ")
	m, cmd := press(t, m, "ctrl+s")
	m = runSave(t, m, cmd)

	assert.Nil(t, m.form)
	assert.Contains(t, m.Records()[0].TitleEN, "XYZ")
	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, stored[0].TitleEN, "XYZ")
}

func TestManageEditToggleHidden(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, _ = press(t, m, "m", "down", "enter", "tab", "tab", "tab", "tab", " ")
	assert.True(t, m.form.hidden)

	m, cmd := press(t, m, "ctrl+s")
	m = runSave(t, m, cmd)
	assert.True(t, m.Records()[1].Hidden)
}

func TestManageEditCancel(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, _ = press(t, m, "m", "enter")
	m = typeText(t, m, "junk")
	m, cmd := press(t, m, "esc")
	assert.Nil(t, cmd)
	assert.Nil(t, m.form)
	assert.Equal(t, "The Hundred", m.Records()[0].TitleEN)
}

func TestManageAdd(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, _ = press(t, m, "m", "a")
	assert.Contains(t, m.View(), "New exercise")

	m = typeText(t, m, "Swan")
	m, cmd := press(t, m, "ctrl+s")
	m = runSave(t, m, cmd)

	recs := m.Records()
	require.Len(t, recs, 5)
	assert.Equal(t, int64(5), recs[4].ID)
	assert.Equal(t, "Swan", recs[4].TitleEN)

	m, _ = press(t, m, "esc")
	assert.Equal(t, 5, m.Session().Len())
}

func TestManageAddRequiresTitle(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, _ = press(t, m, "m", "a")
	m, cmd := press(t, m, "ctrl+s")
	assert.Nil(t, cmd)
	_, isErr := m.Status()
	assert.True(t, isErr)
	assert.NotNil(t, m.form)
}

func TestManageDelete(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, cmd := press(t, m, "m", "ctrl+d")
	m = runSave(t, m, cmd)

	recs := m.Records()
	require.Len(t, recs, 3)
	_, found := deck.Find(recs, 1)
	assert.False(t, found)
}

func TestManageDeleteFromForm(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, cmd := press(t, m, "m", "down", "enter", "ctrl+d")
	m = runSave(t, m, cmd)
	_, found := deck.Find(m.Records(), 2)
	assert.False(t, found)
	assert.Nil(t, m.form)
}

func TestManageDeleteLastRecord(t *testing.T) {
	m, _ := newTestModel(t, testRecords()[:1])
	m, cmd := press(t, m, "m", "ctrl+d")
	assert.Nil(t, cmd)
	assert.Len(t, m.Records(), 1)

	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "last exercise")
}

func TestManageRestore(t *testing.T) {
	records := testRecords()[:2]
	m, store := newTestModel(t, records)

	m, _ = press(t, m, "m", "ctrl+r")
	assert.Contains(t, m.View(), "(y/n)")
	m, cmd := press(t, m, "n")
	assert.Nil(t, cmd)
	assert.Len(t, m.Records(), 2)

	m, _ = press(t, m, "ctrl+r")
	m, cmd = press(t, m, "y")
	m = runSave(t, m, cmd)
	assert.Equal(t, testRecords(), m.Records())

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testRecords(), stored)

	m, _ = press(t, m, "esc")
	assert.Equal(t, 4, m.Session().Len())
}

func TestManageKeysDroppedWhileSaving(t *testing.T) {
	m, _ := newTestModel(t, testRecords())
	m, cmd := press(t, m, "m", "x")
	require.NotNil(t, cmd)

	m, second := press(t, m, "x")
	assert.Nil(t, second)

	m = runSave(t, m, cmd)
	assert.True(t, m.Records()[0].Hidden)
}
