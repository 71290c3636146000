// ABOUTME: Tests for the coach HTTP API
// ABOUTME: Drives the gin router through httptest against in-memory storage
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/harper/daily-coach/internal/core"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// unreachable completes nothing and fails its probe
type unreachable struct{}

func (unreachable) Complete(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}
func (unreachable) Ping(context.Context) error { return errors.New("connection refused") }
func (unreachable) Name() string               { return "unreachable" }

func canned(reply string) llm.Completer {
	return llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	})
}

func newTestServer(t *testing.T, completer llm.Completer, timeout time.Duration) (*Server, *sqlite.Storage) {
	t.Helper()
	store, err := sqlite.NewStorageInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := log.New(&bytes.Buffer{})
	coach := core.NewCoach(store, completer, core.CoachOptions{LLMTimeout: timeout}, logger)
	return NewServer(coach, store, completer, Options{Addr: "127.0.0.1:0", Version: "test"}, logger), store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestBanner(t *testing.T) {
	s, _ := newTestServer(t, nil, time.Second)

	w := do(t, s, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Daily Coach API is running")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestWriteTimeoutOutlastsCompletion(t *testing.T) {
	s, _ := newTestServer(t, nil, time.Second)
	assert.Equal(t, MinWriteTimeout, s.httpServer().WriteTimeout)

	s.opts.LLMTimeout = 90 * time.Second
	assert.Greater(t, s.httpServer().WriteTimeout, 90*time.Second)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		completer  llm.Completer
		wantStatus string
		wantCheck  string
	}{
		{"reachable", canned("ok"), "healthy", "ok"},
		{"unreachable", unreachable{}, "degraded", "unreachable: connection refused"},
		{"not configured", nil, "degraded", "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.completer, time.Second)

			w := do(t, s, http.MethodGet, "/health", "")
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[HealthResponse](t, w)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "ok", resp.Checks["database"])
			assert.Equal(t, tt.wantCheck, resp.Checks["completion"])
			assert.Equal(t, "test", resp.Version)
		})
	}
}

func TestChat_MeetingWithDana(t *testing.T) {
	s, store := newTestServer(t, nil, time.Second)

	w := do(t, s, http.MethodPost, "/chat", `{"message": "Meeting with Dana at 2pm"}`)
	require.Equal(t, http.StatusOK, w.Code)

	reply := decode[core.Reply](t, w)
	assert.Equal(t, models.IntentTimeTask, reply.Intent)
	assert.Contains(t, reply.Response, "14:00")
	assert.Contains(t, reply.Response, "Meeting with Dana")
	assert.False(t, reply.Timestamp.IsZero())

	tasks, err := store.TasksForDate(models.DateOf(time.Now()))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "14:00", tasks[0].Time)
	assert.Contains(t, tasks[0].Name, "Dana")
}

func TestChat_CompletionTimeoutStillSucceeds(t *testing.T) {
	hang := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	s, _ := newTestServer(t, hang, 20*time.Millisecond)

	w := do(t, s, http.MethodPost, "/chat", `{"message": "tell me something nice"}`)

	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[core.Reply](t, w)
	assert.Equal(t, core.FallbackReply, reply.Response)
	assert.Equal(t, models.IntentFallback, reply.Intent)
}

func TestChat_CompletionErrorStillSucceeds(t *testing.T) {
	s, _ := newTestServer(t, unreachable{}, time.Second)

	w := do(t, s, http.MethodPost, "/chat", `{"message": "I had oatmeal for breakfast"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, core.FallbackReply, decode[core.Reply](t, w).Response)
}

func TestChat_BadRequests(t *testing.T) {
	s, store := newTestServer(t, nil, time.Second)

	for _, body := range []string{`not json`, `{}`, `{"message": "   "}`, `{"message": 7}`} {
		t.Run(body, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/chat", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, http.StatusBadRequest, decode[ErrorResponse](t, w).Code)
		})
	}

	turns, err := store.RecentConversations(0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestRoutines_ListAndDeactivate(t *testing.T) {
	s, _ := newTestServer(t, nil, time.Second)

	do(t, s, http.MethodPost, "/chat", `{"message": "wake me up at 7am"}`)
	do(t, s, http.MethodPost, "/chat", `{"message": "wake me up at 7am"}`)

	w := do(t, s, http.MethodGet, "/routines", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[RoutinesResponse](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Wake Up", list.Routines[0].Name)
	assert.Equal(t, "07:00", list.Routines[0].Time)

	w = do(t, s, http.MethodPost, "/routines/"+list.Routines[0].ID+"/deactivate", "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 0, decode[RoutinesResponse](t, do(t, s, http.MethodGet, "/routines", "")).Count)
	assert.Equal(t, 1, decode[RoutinesResponse](t, do(t, s, http.MethodGet, "/routines?all=true", "")).Count)

	w = do(t, s, http.MethodPost, "/routines/"+list.Routines[0].ID+"/deactivate", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutines_Maintenance(t *testing.T) {
	s, store := newTestServer(t, nil, time.Second)

	first, err := models.NewRoutine("Wake Up", "07:00", "Good morning!")
	require.NoError(t, err)
	_, err = store.UpsertRoutine(first)
	require.NoError(t, err)
	require.NoError(t, store.DeactivateRoutine(first.ID))

	second, err := models.NewRoutine("Wake Up", "07:00", "Good morning!")
	require.NoError(t, err)
	created, err := store.UpsertRoutine(second)
	require.NoError(t, err)
	require.True(t, created)

	w := do(t, s, http.MethodPost, "/clean-duplicates", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[MaintenanceResponse](t, w)
	assert.Equal(t, int64(1), resp.Removed)
	assert.Equal(t, "Cleaned up 1 duplicate routines", resp.Message)

	all, err := store.ListRoutines()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Active)

	require.NoError(t, store.DeactivateRoutine(second.ID))
	w = do(t, s, http.MethodPost, "/routines/purge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[MaintenanceResponse](t, w).Removed)
}

func TestTasks(t *testing.T) {
	s, _ := newTestServer(t, nil, time.Second)

	do(t, s, http.MethodPost, "/chat", `{"message": "Meeting with Dana at 2pm"}`)

	w := do(t, s, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[TasksResponse](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, models.DateOf(time.Now()), list.Date)

	w = do(t, s, http.MethodPost, "/tasks/"+list.Tasks[0].ID+"/done", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[TasksResponse](t, do(t, s, http.MethodGet, "/tasks", "")).Tasks[0].IsDone)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/tasks/missing/done", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/tasks?date=yesterday", "").Code)

	other := decode[TasksResponse](t, do(t, s, http.MethodGet, "/tasks?date=2001-01-01", ""))
	assert.Equal(t, 0, other.Count)
	assert.NotNil(t, other.Tasks)
}

func TestActivities(t *testing.T) {
	s, _ := newTestServer(t, canned("Great fuel for the morning."), time.Second)

	do(t, s, http.MethodPost, "/chat", `{"message": "I had oatmeal for breakfast"}`)

	w := do(t, s, http.MethodGet, "/activities?days=7&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ActivitiesResponse](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, models.CategoryMeal, resp.Activities[0].Category)
	assert.Equal(t, "oatmeal", resp.Activities[0].Description)
}

func TestDebug(t *testing.T) {
	s, store := newTestServer(t, nil, time.Second)

	for i := 0; i < 20; i++ {
		r, err := models.NewRoutine(fmt.Sprintf("Routine %02d", i), fmt.Sprintf("%02d:00", i), "A fairly long encouragement message")
		require.NoError(t, err)
		_, err = store.UpsertRoutine(r)
		require.NoError(t, err)
	}

	w := do(t, s, http.MethodGet, "/debug", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[DebugResponse](t, w)
	assert.Len(t, resp.Routines, 20)
	assert.NotNil(t, resp.Conversations)
	assert.True(t, strings.HasPrefix(resp.ContextSample, "Current time:"))
	assert.True(t, strings.HasSuffix(resp.ContextSample, "..."))
	assert.Equal(t, DebugSampleChars+3, len([]rune(resp.ContextSample)))
}

func TestRequestIDPropagates(t *testing.T) {
	s, _ := newTestServer(t, nil, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, nil, time.Second)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
