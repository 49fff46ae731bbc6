package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/storycast/pkg/storage"
)

func TestInitCmd(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()

	out, err := runCommand(t, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Initialized") {
		t.Errorf("init output = %q", out)
	}

	if _, err := os.Stat(filepath.Join(storage.StorycastDir, storage.ConfigFile)); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	// Re-init is a no-op, not an error.
	out, err = runCommand(t, "init")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "already initialized") {
		t.Errorf("second init output = %q", out)
	}
}

func TestStoryAddAndList(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	out, err := runCommand(t, "story", "add", "build the forecast engine", "--points", "5", "--priority", "high", "--assignee", "alice")
	if err != nil {
		t.Fatalf("story add: %v", err)
	}
	if !strings.Contains(out, "Added story #1") {
		t.Errorf("add output = %q", out)
	}

	out, err = runCommand(t, "story", "list")
	if err != nil {
		t.Fatalf("story list: %v", err)
	}
	if !strings.Contains(out, "build the forecast engine") || !strings.Contains(out, "alice") {
		t.Errorf("list output = %q", out)
	}
}

func TestStoryAddRejectsBadPoints(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	if _, err := runCommand(t, "story", "add", "bad estimate", "--points", "4"); err == nil {
		t.Error("story add with off-scale points expected error")
	}
}

func TestStoryMoveAndAssign(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	if _, err := runCommand(t, "story", "add", "some work", "--points", "3"); err != nil {
		t.Fatalf("story add: %v", err)
	}

	repo := storage.NewFilesystemRepository(".")
	stories, err := repo.LoadBacklog()
	if err != nil || len(stories) != 1 {
		t.Fatalf("load backlog: %v (%d stories)", err, len(stories))
	}
	id := stories[0].ID

	out, err := runCommand(t, "story", "move", id, "start")
	if err != nil {
		t.Fatalf("story move: %v", err)
	}
	if !strings.Contains(out, "In Progress") {
		t.Errorf("move output = %q", out)
	}

	// An illegal event leaves the story untouched.
	if _, err := runCommand(t, "story", "move", id, "start"); err == nil {
		t.Error("starting an in-progress story expected error")
	}

	out, err = runCommand(t, "story", "assign", id, "bob")
	if err != nil {
		t.Fatalf("story assign: %v", err)
	}
	if !strings.Contains(out, "bob") {
		t.Errorf("assign output = %q", out)
	}
}

func TestSprintLifecycleCmds(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	out, err := runCommand(t, "sprint", "add", "Sprint 1", "2026-01-05", "2026-01-16", "--capacity", "20")
	if err != nil {
		t.Fatalf("sprint add: %v", err)
	}
	if !strings.Contains(out, "Added sprint") {
		t.Errorf("add output = %q", out)
	}

	repo := storage.NewFilesystemRepository(".")
	sprints, err := repo.LoadSprints()
	if err != nil || len(sprints) != 1 {
		t.Fatalf("load sprints: %v (%d sprints)", err, len(sprints))
	}

	if _, err := runCommand(t, "sprint", "start", sprints[0].ID); err != nil {
		t.Fatalf("sprint start: %v", err)
	}
	if _, err := runCommand(t, "sprint", "close", sprints[0].ID); err != nil {
		t.Fatalf("sprint close: %v", err)
	}

	out, err = runCommand(t, "sprint", "list")
	if err != nil {
		t.Fatalf("sprint list: %v", err)
	}
	if !strings.Contains(out, "completed") {
		t.Errorf("list output = %q", out)
	}
}

func TestSprintAddRejectsBadDates(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	if _, err := runCommand(t, "sprint", "add", "Sprint 1", "next monday", "2026-01-16"); err == nil {
		t.Error("sprint add with an unparseable date expected error")
	}
}

func TestForecastCmd(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	out, err := runCommand(t, "forecast")
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if !strings.Contains(out, "Nothing to forecast") {
		t.Errorf("empty forecast output = %q", out)
	}

	if _, err := runCommand(t, "story", "add", "first story", "--points", "5"); err != nil {
		t.Fatalf("story add: %v", err)
	}

	out, err = runCommand(t, "forecast")
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if !strings.Contains(out, "Projected Completion") {
		t.Errorf("forecast output = %q", out)
	}
}

func TestForecastCmdJSON(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	if _, err := runCommand(t, "story", "add", "first story", "--points", "5"); err != nil {
		t.Fatalf("story add: %v", err)
	}

	out, err := runCommand(t, "forecast", "--json")
	if err != nil {
		t.Fatalf("forecast --json: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("forecast --json output is not valid JSON: %v\n%s", err, out)
	}
	if _, ok := payload["projected_completion_date"]; !ok {
		t.Error("forecast JSON misses projected_completion_date")
	}
}

func TestVelocityCmd(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	out, err := runCommand(t, "velocity")
	if err != nil {
		t.Fatalf("velocity: %v", err)
	}
	if !strings.Contains(out, "Estimated Velocity") {
		t.Errorf("velocity output = %q", out)
	}
}

func TestRiskCmd(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	out, err := runCommand(t, "risk")
	if err != nil {
		t.Fatalf("risk: %v", err)
	}
	if !strings.Contains(out, "Risk Level") {
		t.Errorf("risk output = %q", out)
	}
}

func TestTimelineCmd(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	if _, err := runCommand(t, "story", "add", "scheduled story", "--points", "2"); err != nil {
		t.Fatalf("story add: %v", err)
	}

	out, err := runCommand(t, "timeline")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if !strings.Contains(out, "scheduled story") {
		t.Errorf("timeline output = %q", out)
	}
}

func TestImportCmd(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	path := filepath.Join(dir, "export.json")
	data := `[{"text": "imported story", "points": 3, "status": "ready_for_dev"}]`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write export: %v", err)
	}

	out, err := runCommand(t, "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 1 stories") {
		t.Errorf("import output = %q", out)
	}

	if _, err := runCommand(t, "import", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("import of a missing file expected error")
	}
}

func TestBoardCmdSkipsUnderEnv(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t)

	t.Setenv("STORYCAST_SKIP_BOARD_RUN", "true")
	if _, err := runCommand(t, "board"); err != nil {
		t.Fatalf("board: %v", err)
	}
}

func TestWatchCmdRequiresWorkspace(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()

	if _, err := runCommand(t, "watch"); err == nil {
		t.Error("watch without a workspace expected error")
	}
}

func TestServeCmdRequiresWorkspace(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()

	if _, err := runCommand(t, "serve"); err == nil {
		t.Error("serve without a workspace expected error")
	}
}
