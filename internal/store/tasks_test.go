package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madeengine/memoryd/internal/models"
	"github.com/madeengine/memoryd/internal/store"
	"github.com/madeengine/memoryd/test/dbtest"
)

func TestClient_PutTaskAndListTasks(t *testing.T) {
	client := dbtest.NewClient(t)
	ctx := context.Background()

	_, err := client.PutTask(ctx, models.TaskRecord{
		ReportID:      "task-report-1",
		TaskName:      "repair the beacon",
		Importance:    0.8,
		RequiredTime:  4,
		AvailableTime: 10,
	})
	require.NoError(t, err)

	_, err = client.PutTask(ctx, models.TaskRecord{
		ReportID:      "task-report-1",
		TaskName:      "scout the ridge",
		Importance:    0.3,
		RequiredTime:  1,
		AvailableTime: 2,
	})
	require.NoError(t, err)

	tasks, err := client.ListTasks(ctx, "task-report-1")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestClient_PutTaskAllowsOrphanedReportID(t *testing.T) {
	client := dbtest.NewClient(t)
	_, err := client.PutTask(context.Background(), models.TaskRecord{
		ReportID:      "no-such-cognitive-record",
		TaskName:      "orphan task",
		Importance:    0.5,
		RequiredTime:  1,
		AvailableTime: 1,
	})
	assert.NoError(t, err)
}

func TestClient_PutTaskRejectsMissingName(t *testing.T) {
	client := dbtest.NewClient(t)
	_, err := client.PutTask(context.Background(), models.TaskRecord{ReportID: "r1"})
	assert.True(t, store.IsValidationError(err))
}

func TestClient_ListTasksEmptyForUnknownReport(t *testing.T) {
	client := dbtest.NewClient(t)
	tasks, err := client.ListTasks(context.Background(), "never-seen-report")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
