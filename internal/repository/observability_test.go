package repository

import (
	"bytes"
	"context"
	"testing"

	"github.com/emacsway/ganttproject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogObserver_RecordsOperations(t *testing.T) {
	var buf bytes.Buffer
	database := testutil.NewTestDB(t)
	projectDB := NewSQLiteProjectDatabase(database, WithObserver(NewLogObserver(&buf)))
	ctx := context.Background()

	require.NoError(t, projectDB.Init(ctx))
	require.NoError(t, projectDB.InsertTask(ctx, testutil.NewTestTask(1, "A")))

	out := buf.String()
	assert.Contains(t, out, "operation=init")
	assert.Contains(t, out, "operation=insert_task")
	assert.Contains(t, out, "task_id=1")
	assert.Contains(t, out, "success=true")
}

func TestLogObserver_RecordsFailures(t *testing.T) {
	var buf bytes.Buffer
	database := testutil.NewTestDB(t)
	projectDB := NewSQLiteProjectDatabase(database, WithObserver(NewLogObserver(&buf)))
	ctx := context.Background()

	require.NoError(t, projectDB.Init(ctx))
	require.NoError(t, projectDB.InsertTask(ctx, testutil.NewTestTask(1, "A")))
	require.Error(t, projectDB.InsertTask(ctx, testutil.NewTestTask(1, "dup")))

	assert.Contains(t, buf.String(), "success=false")
	assert.Contains(t, buf.String(), "failed to insert task 1")
}

func TestNewLogObserver_NilWriterIsNoop(t *testing.T) {
	obs := NewLogObserver(nil)
	assert.IsType(t, NoopObserver{}, obs)
	obs.ObserveOperation(context.Background(), OperationEvent{Name: "noop"})
}
