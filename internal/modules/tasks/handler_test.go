package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/axis-labs/axis-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeStore struct {
	tasks   []models.TaskModel
	listErr error
}

func (f *fakeStore) ListTasks(ctx context.Context) ([]models.TaskModel, error) {
	return f.tasks, f.listErr
}

func (f *fakeStore) GetTask(ctx context.Context, id int) (*models.TaskModel, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i], nil
		}
	}
	return nil, nil
}

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, zap.NewNop()).RegisterRoutes(r.Group(""))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleTasks() []models.TaskModel {
	return []models.TaskModel{
		{ID: 1, Name: "Pick and place", Description: "Move the cube", Difficulty: "easy", ExpectedDuration: 120, SuccessRate: 0.8, Thumbnail: "/img/1.png"},
		{ID: 2, Name: "Stack blocks", Description: "Stack three blocks", Difficulty: "hard", ExpectedDuration: 300, SuccessRate: 0.35, Thumbnail: "/img/2.png"},
	}
}

func TestListTasks(t *testing.T) {
	r := newTestRouter(&fakeStore{tasks: sampleTasks()})

	w := get(r, "/tasks")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Tasks []models.TaskModel `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Tasks) != 2 || body.Tasks[0].Name != "Pick and place" {
		t.Fatalf("unexpected tasks %+v", body.Tasks)
	}
}

func TestListTasksEmpty(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := get(r, "/tasks")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"tasks":[]`) {
		t.Fatalf("empty catalog should serialize as []: status %d body %s", w.Code, w.Body.String())
	}
}

func TestGetTask(t *testing.T) {
	r := newTestRouter(&fakeStore{tasks: sampleTasks()})

	w := get(r, "/tasks/2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var task models.TaskModel
	_ = json.Unmarshal(w.Body.Bytes(), &task)
	if task.ID != 2 || task.Difficulty != "hard" {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	r := newTestRouter(&fakeStore{tasks: sampleTasks()})

	w := get(r, "/tasks/99")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Task not found") {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
}

func TestGetTaskRejectsNonInteger(t *testing.T) {
	r := newTestRouter(&fakeStore{tasks: sampleTasks()})

	if w := get(r, "/tasks/abc"); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestTaskDetailQueryRoute(t *testing.T) {
	r := newTestRouter(&fakeStore{tasks: sampleTasks()})

	w := get(r, "/taskdetail?id=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var task models.TaskModel
	_ = json.Unmarshal(w.Body.Bytes(), &task)
	if task.ID != 1 {
		t.Fatalf("unexpected task %+v", task)
	}

	if w := get(r, "/taskdetail?id=99"); w.Code != http.StatusNotFound {
		t.Fatalf("missing task: status = %d, want 404", w.Code)
	}
	if w := get(r, "/taskdetail"); w.Code != http.StatusBadRequest {
		t.Fatalf("missing id: status = %d, want 400", w.Code)
	}
}

func TestListTasksStoreFailure(t *testing.T) {
	r := newTestRouter(&fakeStore{listErr: errors.New("db gone")})

	w := get(r, "/tasks")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "db gone") {
		t.Fatal("store errors must not leak to the caller")
	}
}
