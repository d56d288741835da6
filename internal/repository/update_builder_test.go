package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/emacsway/ganttproject/internal/domain"
	"github.com/emacsway/ganttproject/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderSetup(t *testing.T) (*SQLiteProjectDatabase, *SQLiteTaskReader, *sql.DB, *domain.Task) {
	t.Helper()
	projectDB, reader, database := setupDB(t)
	task := testutil.NewTestTask(1, "Original",
		testutil.WithStart(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
		testutil.WithDuration(2))
	require.NoError(t, projectDB.InsertTask(context.Background(), task))
	return projectDB, reader, database, task
}

func TestUpdateBuilder_ExecuteWithNoChangesIsNoOp(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	require.NoError(t, builder.Execute(ctx))

	got, err := reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)
}

func TestUpdateBuilder_NameAndMilestoneInOneFlush(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.SetName("foo")
	builder.SetMilestone(true)
	require.NoError(t, builder.Execute(ctx))

	got, err := reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "foo", got.Name)
	assert.True(t, got.Milestone)

	// A second Execute with nothing new pending is a no-op: a direct edit
	// underneath the builder is not overwritten.
	_, err = projectDB.db.Exec(`UPDATE task SET name = 'edited directly' WHERE id = ?`, task.ID)
	require.NoError(t, err)
	require.NoError(t, builder.Execute(ctx))

	got, err = reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited directly", got.Name)
}

func TestUpdateBuilder_FailedFlushLeavesNoResidue(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.SetName("should not survive")
	builder.SetCompletionPercentage(150) // violates the completion CHECK

	err := builder.Execute(ctx)
	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, ErrorKindOperation, dbErr.Kind)
	assert.Equal(t, "failed to execute update", dbErr.Message)

	// The pending set was cleared: only the new assignment applies.
	builder.SetName("fresh")
	require.NoError(t, builder.Execute(ctx))

	got, getErr := reader.GetTask(ctx, task.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "fresh", got.Name)
	assert.Equal(t, 0, got.Completion, "failed completion assignment must not be retried")
}

func TestUpdateBuilder_LastAssignmentPerColumnWins(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.SetName("first")
	builder.SetName("second")
	require.NoError(t, builder.Execute(ctx))

	got, err := reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
}

func TestUpdateBuilder_OnlyTouchesBoundTask(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	other := testutil.NewTestTask(2, "Other")
	require.NoError(t, projectDB.InsertTask(ctx, other))

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.SetName("changed")
	require.NoError(t, builder.Execute(ctx))

	gotOther, err := reader.GetTask(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Other", gotOther.Name)
}

func TestUpdateBuilder_ScalarMutators(t *testing.T) {
	projectDB, reader, database, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.SetPriority(domain.PriorityHigh)
	builder.SetStart(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	builder.SetDuration(5)
	builder.SetCompletionPercentage(60)
	builder.SetShape("cross,0,0,0")
	builder.SetColor("#00ff00")
	builder.SetWebLink("https://example.com")
	builder.SetNotes("rewritten")
	builder.SetProjectTask(true)
	require.NoError(t, builder.Execute(ctx))

	got, err := reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.True(t, got.Start.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, got.Duration)
	assert.Equal(t, 60, got.Completion)
	assert.Equal(t, "cross,0,0,0", got.Shape)
	assert.Equal(t, "#00ff00", got.Color)
	assert.Equal(t, "https://example.com", got.WebLink)
	assert.Equal(t, "rewritten", got.Notes)
	assert.True(t, got.ProjectTask)

	// Priority is stored under its persistent code, not the enum ordinal.
	var code int
	require.NoError(t, database.QueryRow(`SELECT priority FROM task WHERE id = ?`, task.ID).Scan(&code))
	assert.Equal(t, domain.PriorityHigh.PersistentValue(), code)
}

func TestUpdateBuilder_ViewStateMutators(t *testing.T) {
	projectDB, _, database, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.SetExpand(false)
	builder.SetCritical(true)
	builder.SetTaskInfo("on-critical-path")
	require.NoError(t, builder.Execute(ctx))

	var expanded, critical int
	var info sql.NullString
	require.NoError(t, database.QueryRow(
		`SELECT is_expanded, is_critical, task_info FROM task WHERE id = ?`, task.ID).
		Scan(&expanded, &critical, &info))
	assert.Equal(t, 0, expanded)
	assert.Equal(t, 1, critical)
	require.True(t, info.Valid)
	assert.Equal(t, "on-critical-path", info.String)
}

func TestUpdateBuilder_ShiftMovesStartDate(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.Shift(3)
	require.NoError(t, builder.Execute(ctx))

	got, err := reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)))

	builder.Shift(-7)
	require.NoError(t, builder.Execute(ctx))

	got, err = reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}

func TestUpdateBuilder_SetEndRecomputesDuration(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	// Start is 2024-03-04; an exclusive end of 2024-03-08 is four days.
	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.SetEnd(time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, builder.Execute(ctx))

	got, err := reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Duration)
}

func TestUpdateBuilder_AddNotesAppends(t *testing.T) {
	projectDB, reader, _, task := builderSetup(t)
	ctx := context.Background()

	builder := projectDB.CreateTaskUpdateBuilder(task)
	builder.AddNotes("first line")
	require.NoError(t, builder.Execute(ctx))

	got, err := reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "first line", got.Notes)

	builder.AddNotes("second line")
	require.NoError(t, builder.Execute(ctx))

	got, err = reader.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got.Notes)
}
