package queue_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/decide/internal/adapters/queue"
	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/decide/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return logger
}

func testTask() domain.TaskDescriptor {
	return domain.TaskDescriptor{
		WorkerType: "github-worker",
		Priority:   "lowest",
		Metadata:   domain.Metadata{Name: "lint"},
	}
}

func TestCreateTask(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody domain.TaskDescriptor

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := queue.NewClient(server.URL, testLogger(t))
	err := client.CreateTask(context.Background(), "task-001", testTask())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/task/task-001", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "github-worker", gotBody.WorkerType)
	assert.Equal(t, "lint", gotBody.Metadata.Name)
}

func TestCreateTask_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer server.Close()

	client := queue.NewClient(server.URL+"/", testLogger(t))
	require.NoError(t, client.CreateTask(context.Background(), "task-001", testTask()))
	assert.Equal(t, "/task/task-001", gotPath)
}

func TestCreateTask_Rejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": "InputValidationError"}`))
	}))
	defer server.Close()

	client := queue.NewClient(server.URL, testLogger(t))
	err := client.CreateTask(context.Background(), "task-001", testTask())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskSubmission)
}

func TestCreateTask_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := queue.NewClient(server.URL, testLogger(t))
	err := client.CreateTask(context.Background(), "task-001", testTask())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTaskSubmission)
}
