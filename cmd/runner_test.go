package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"spotisync/internal/shared"
	"spotisync/internal/tasks"
	mocks "spotisync/internal/testing"
)

// fakeEngine is a test double for [tasks.SyncEngine].
type fakeEngine struct {
	matchResult *tasks.MatchResult
	matchErr    error
	buildResult *tasks.BuildResult
	buildErr    error
	resetCalled bool
	resetErr    error
}

func (f *fakeEngine) Match(ctx context.Context, progress chan<- tasks.ProgressUpdate) (*tasks.MatchResult, error) {
	return f.matchResult, f.matchErr
}

func (f *fakeEngine) Build(ctx context.Context, progress chan<- tasks.ProgressUpdate) (*tasks.BuildResult, error) {
	return f.buildResult, f.buildErr
}

func (f *fakeEngine) Reset(ctx context.Context) error {
	f.resetCalled = true
	return f.resetErr
}

func newTestRunner(engine tasks.SyncEngine, input io.Reader) (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := shared.NewLogger(io.Discard)
	return NewRunner(RunnerOpts{
		Engine: engine,
		Logger: logger,
		Output: &buf,
		Input:  input,
	}), &buf
}

func runApp(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "spotisync", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"spotisync"}, args...))
}

func TestWriteJSON(t *testing.T) {
	t.Run("compact output", func(t *testing.T) {
		r, buf := newTestRunner(nil, nil)
		if err := r.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if buf.String() != "{\"key\":\"value\"}\n" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("pretty output", func(t *testing.T) {
		r, buf := newTestRunner(nil, nil)
		if err := r.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if !strings.Contains(buf.String(), "  \"key\": \"value\"") {
			t.Errorf("expected indented output: %q", buf.String())
		}
	})

	t.Run("write failure", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Output: &mocks.FWriter{}, Logger: shared.NewLogger(io.Discard)})
		if err := r.writeJSON("data", false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("trailing newline write failure", func(t *testing.T) {
		var buf bytes.Buffer
		lw := mocks.NewLimitedWriter(1, 0, &buf)
		r := NewRunner(RunnerOpts{Output: &lw, Logger: shared.NewLogger(io.Discard)})
		if err := r.writeJSON("data", false); err == nil {
			t.Error("expected error when the newline write fails")
		}
	})
}

func TestWritePlain(t *testing.T) {
	r, buf := newTestRunner(nil, nil)
	if err := r.writePlain("count: %d\n", 3); err != nil {
		t.Fatalf("writePlain failed: %v", err)
	}
	if buf.String() != "count: 3\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestScrapeValidation(t *testing.T) {
	t.Run("missing URL", func(t *testing.T) {
		r, _ := newTestRunner(nil, nil)
		err := runApp(t, r, "scrape")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("non-spotify URL", func(t *testing.T) {
		r, _ := newTestRunner(nil, nil)
		err := runApp(t, r, "scrape", "https://example.com/playlist/abc")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestMatchCommand(t *testing.T) {
	t.Run("prints summary and writes report", func(t *testing.T) {
		engine := &fakeEngine{
			matchResult: &tasks.MatchResult{
				Processed: 2,
				Matched:   1,
				NotFound:  []string{"Song B - Artist Y"},
			},
		}
		r, buf := newTestRunner(engine, nil)

		reportPath := filepath.Join(t.TempDir(), "missing.txt")
		if err := runApp(t, r, "match", "--report", reportPath); err != nil {
			t.Fatalf("match failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Match Complete") {
			t.Errorf("missing header: %q", out)
		}
		if !strings.Contains(out, "Matched: 1") {
			t.Errorf("missing summary: %q", out)
		}

		content := mocks.MustReadFile(t, reportPath)
		if content != "Song B - Artist Y\n" {
			t.Errorf("unexpected report content: %q", content)
		}
	})

	t.Run("engine error propagates", func(t *testing.T) {
		engine := &fakeEngine{matchErr: errors.New("store down")}
		r, _ := newTestRunner(engine, nil)

		if err := runApp(t, r, "match"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("json flag emits the result and still writes the report", func(t *testing.T) {
		engine := &fakeEngine{
			matchResult: &tasks.MatchResult{
				Processed: 2,
				Matched:   1,
				NotFound:  []string{"Song B - Artist Y"},
			},
		}
		r, buf := newTestRunner(engine, nil)

		reportPath := filepath.Join(t.TempDir(), "missing.txt")
		if err := runApp(t, r, "match", "--json", "--report", reportPath); err != nil {
			t.Fatalf("match failed: %v", err)
		}

		var decoded tasks.MatchResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%q", err, buf.String())
		}
		if decoded.Matched != 1 || len(decoded.NotFound) != 1 {
			t.Errorf("unexpected decoded result: %+v", decoded)
		}
		if strings.Contains(buf.String(), "Match Complete") {
			t.Errorf("plain summary must be suppressed: %q", buf.String())
		}

		mocks.AssertFileExists(t, reportPath)
	})
}

func TestCreateCommand(t *testing.T) {
	newEngine := func() *fakeEngine {
		return &fakeEngine{
			buildResult: &tasks.BuildResult{
				PlaylistID:   "PL123",
				PlaylistName: "My Mix",
				Total:        5,
				Added:        5,
			},
		}
	}

	t.Run("prints summary with playlist URL", func(t *testing.T) {
		engine := newEngine()
		r, buf := newTestRunner(engine, nil)

		if err := runApp(t, r, "create"); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Playlist Created") {
			t.Errorf("missing header: %q", out)
		}
		if !strings.Contains(out, "https://www.youtube.com/playlist?list=PL123") {
			t.Errorf("missing playlist URL: %q", out)
		}
		if engine.resetCalled {
			t.Error("reset must not run without --clean")
		}
	})

	t.Run("clean flag resets after a successful build", func(t *testing.T) {
		engine := newEngine()
		r, _ := newTestRunner(engine, nil)

		if err := runApp(t, r, "create", "--clean"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if !engine.resetCalled {
			t.Error("expected reset after --clean build")
		}
	})

	t.Run("json flag emits the result", func(t *testing.T) {
		engine := newEngine()
		r, buf := newTestRunner(engine, nil)

		if err := runApp(t, r, "create", "--json", "--pretty", "--clean"); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		var decoded tasks.BuildResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%q", err, buf.String())
		}
		if decoded.PlaylistID != "PL123" || decoded.Added != 5 {
			t.Errorf("unexpected decoded result: %+v", decoded)
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Errorf("expected indented output: %q", buf.String())
		}
		if !engine.resetCalled {
			t.Error("expected reset after --clean build")
		}
	})

	t.Run("clean flag is skipped when the build fails", func(t *testing.T) {
		engine := &fakeEngine{buildErr: errors.New("quota exceeded")}
		r, _ := newTestRunner(engine, nil)

		if err := runApp(t, r, "create", "--clean"); err == nil {
			t.Fatal("expected error")
		}
		if engine.resetCalled {
			t.Error("reset must not run after a failed build")
		}
	})
}

func TestResetCommand(t *testing.T) {
	t.Run("confirmation declined", func(t *testing.T) {
		engine := &fakeEngine{}
		r, buf := newTestRunner(engine, strings.NewReader("n\n"))

		if err := runApp(t, r, "reset"); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		if engine.resetCalled {
			t.Error("reset must not run after a declined confirmation")
		}
		if !strings.Contains(buf.String(), "Aborted") {
			t.Errorf("missing abort message: %q", buf.String())
		}
	})

	t.Run("confirmation accepted", func(t *testing.T) {
		engine := &fakeEngine{}
		r, _ := newTestRunner(engine, strings.NewReader("y\n"))

		if err := runApp(t, r, "reset"); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		if !engine.resetCalled {
			t.Error("expected reset to run")
		}
	})

	t.Run("yes flag skips the prompt", func(t *testing.T) {
		engine := &fakeEngine{}
		r, buf := newTestRunner(engine, strings.NewReader(""))

		if err := runApp(t, r, "reset", "--yes"); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		if !engine.resetCalled {
			t.Error("expected reset to run")
		}
		if strings.Contains(buf.String(), "Continue?") {
			t.Errorf("prompt should be skipped: %q", buf.String())
		}
	})
}
