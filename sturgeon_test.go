package sturgeon

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/sturgeon/internal/config"
)

func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	eng, err := New(strings.NewReader(""), &out, "", config.Default(), true)
	require.NoError(t, err)
	return eng, &out
}

func TestNew_CompilesBuiltInGrammar(t *testing.T) {
	eng, _ := newTestEngine(t)
	assert.NotNil(t, eng.grammar)
	assert.NotNil(t, eng.table)
}

func TestRunQuery_AcceptsAKnownQuery(t *testing.T) {
	eng, out := newTestEngine(t)
	err := eng.RunQuery("my repos")
	require.NoError(t, err)
	assert.Equal(t, 1, eng.LastTreeCount())
	assert.Contains(t, out.String(), "repos-created(me)")
}

func TestRunQuery_ReportsUnparsableQuery(t *testing.T) {
	eng, _ := newTestEngine(t)
	err := eng.RunQuery("gibberish that matches nothing")
	assert.Error(t, err)
	assert.Equal(t, 0, eng.LastTreeCount())
}

func TestDispatch_RunsKCommand(t *testing.T) {
	eng, out := newTestEngine(t)
	require.NoError(t, eng.dispatch(".k 3"))
	assert.Equal(t, 3, eng.k)
	assert.Contains(t, out.String(), "k = 3")
}

func TestDispatch_RunsHelpCommand(t *testing.T) {
	eng, out := newTestEngine(t)
	require.NoError(t, eng.dispatch(".help"))
	assert.Contains(t, out.String(), ".rebuild")
}

func TestDispatch_UnrecognizedCommandErrors(t *testing.T) {
	eng, _ := newTestEngine(t)
	err := eng.dispatch(".nonsense")
	assert.Error(t, err)
}

func TestDispatch_RecordsHistory(t *testing.T) {
	eng, _ := newTestEngine(t)
	require.NoError(t, eng.dispatch("my repos"))
	require.NoError(t, eng.dispatch(".k 2"))
	assert.Equal(t, []string{"my repos", ".k 2"}, eng.history)
}

func TestCmdTest_PassesAllBuiltInScenarios(t *testing.T) {
	eng, out := newTestEngine(t)
	require.NoError(t, eng.dispatch(".test"))
	assert.Contains(t, out.String(), "5/5 passed")
}

func TestCmdForest_ListsNodesAfterAQuery(t *testing.T) {
	eng, out := newTestEngine(t)
	require.NoError(t, eng.RunQuery("my repos"))
	out.Reset()
	require.NoError(t, eng.dispatch(".forest"))
	assert.NotEmpty(t, out.String())
}
