package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"
	mid "github.com/OFFIS-RIT/greenlens/internal/server/middleware"
	"github.com/OFFIS-RIT/greenlens/pkg/audit"
)

type stubLauncher struct {
	id    string
	err   error
	names []string
}

func (l *stubLauncher) Launch(ctx context.Context, companyName string) (string, error) {
	l.names = append(l.names, companyName)
	if l.err != nil {
		return "", l.err
	}
	return l.id, nil
}

func do(t *testing.T, app *mid.App, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	New(app).ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestCreateReport(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		launchErr  error
		wantStatus int
		launched   bool
	}{
		{name: "accepted", body: `{"company_name":"Acme"}`, wantStatus: http.StatusAccepted, launched: true},
		{name: "missing company", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{"company_name":`, wantStatus: http.StatusBadRequest},
		{name: "blank company", body: `{"company_name":"   "}`, launchErr: audit.ErrEmptyCompanyName, wantStatus: http.StatusBadRequest, launched: true},
		{name: "launcher failure", body: `{"company_name":"Acme"}`, launchErr: errors.New("broker down"), wantStatus: http.StatusInternalServerError, launched: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			launcher := &stubLauncher{id: "task-1", err: tc.launchErr}
			app := &mid.App{Runs: jobs.NewMemoryStore(), Launcher: launcher}

			rec, out := do(t, app, http.MethodPost, "/sustainability-report", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if (len(launcher.names) > 0) != tc.launched {
				t.Fatalf("launched = %v, want %v", len(launcher.names) > 0, tc.launched)
			}
			if tc.wantStatus == http.StatusAccepted && out["task_id"] != "task-1" {
				t.Fatalf("unexpected body %v", out)
			}
		})
	}
}

func TestCreateReport_IncludesEstimate(t *testing.T) {
	app := &mid.App{
		Runs:     jobs.NewMemoryStore(),
		Launcher: &stubLauncher{id: "task-1"},
		Estimate: func(ctx context.Context) (time.Duration, error) {
			return 90 * time.Second, nil
		},
	}
	_, out := do(t, app, http.MethodPost, "/sustainability-report", `{"company_name":"Acme"}`)
	if out["estimated_duration_ms"] != float64(90000) {
		t.Fatalf("expected estimate in response, got %v", out)
	}
}

func TestGetReport(t *testing.T) {
	ctx := context.Background()
	runs := jobs.NewMemoryStore()
	state := audit.NewState("Acme").WithThemes([]string{"Climate"})
	_ = runs.Put(ctx, jobs.Run{ID: "done", Status: jobs.StatusCompleted, Result: &state})
	_ = runs.Put(ctx, jobs.Run{ID: "broken", Status: jobs.StatusFailed, Error: "search unavailable"})
	_ = runs.Put(ctx, jobs.Run{ID: "busy", Status: jobs.StatusRunning})
	app := &mid.App{Runs: runs, Launcher: &stubLauncher{}}

	rec, out := do(t, app, http.MethodGet, "/sustainability-report/done", "")
	if rec.Code != http.StatusOK || out["status"] != "completed" {
		t.Fatalf("unexpected completed response %d %v", rec.Code, out)
	}
	if themes, _ := out["themes"].([]any); len(themes) != 1 {
		t.Fatalf("expected themes in response, got %v", out)
	}

	_, out = do(t, app, http.MethodGet, "/sustainability-report/broken", "")
	if out["status"] != "failed" || out["error"] != "search unavailable" {
		t.Fatalf("unexpected failed response %v", out)
	}

	_, out = do(t, app, http.MethodGet, "/sustainability-report/busy", "")
	if out["status"] != "running" {
		t.Fatalf("unexpected running response %v", out)
	}

	rec, out = do(t, app, http.MethodGet, "/sustainability-report/unknown", "")
	if rec.Code != http.StatusNotFound || out["error"] != "Task ID not found" {
		t.Fatalf("unexpected not found response %d %v", rec.Code, out)
	}
}

func TestLocalLauncherEndToEnd(t *testing.T) {
	runs := jobs.NewMemoryStore()
	launcher := jobs.NewLocalLauncher(runs, func() *audit.Pipeline {
		return audit.NewPipeline(audit.Stage{Name: "themes", Run: func(ctx context.Context, s audit.State) (audit.State, error) {
			return s.WithThemes([]string{"Water"}), nil
		}})
	})
	app := &mid.App{Runs: runs, Launcher: launcher}

	rec, out := do(t, app, http.MethodPost, "/sustainability-report", `{"company_name":"Acme"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	id, _ := out["task_id"].(string)
	launcher.Wait()

	_, out = do(t, app, http.MethodGet, "/sustainability-report/"+id, "")
	if out["status"] != "completed" {
		t.Fatalf("expected completed run, got %v", out)
	}
}

func TestHealth(t *testing.T) {
	rec, _ := do(t, &mid.App{}, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestCheckJobMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		runs    jobs.Store
		wantErr bool
	}{
		{name: "local with memory store", mode: "local", runs: jobs.NewMemoryStore()},
		{name: "queue with memory store", mode: "queue", runs: jobs.NewMemoryStore(), wantErr: true},
		{name: "queue with shared store", mode: "queue", runs: jobs.NewPgxStore(nil)},
		{name: "unknown mode", mode: "cron", runs: jobs.NewMemoryStore(), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := checkJobMode(tc.mode, tc.runs)
			if (err != nil) != tc.wantErr {
				t.Fatalf("checkJobMode(%q) error = %v, wantErr %v", tc.mode, err, tc.wantErr)
			}
		})
	}

	if err := checkJobMode("queue", jobs.NewMemoryStore()); !errors.Is(err, ErrSharedRunStore) {
		t.Fatalf("expected ErrSharedRunStore, got %v", err)
	}
}
