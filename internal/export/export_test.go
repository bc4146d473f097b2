package export

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/store"
	"github.com/tbui/taskbox/tests/testutil"
)

func seedState(t *testing.T) *store.Adapter {
	t.Helper()

	adapter := testutil.NewTestAdapter(t)
	ctx := context.Background()

	users := []model.User{
		{ID: "u1", Name: "Ada", Email: "ada@example.com", Avatar: "🦉", CreatedAt: time.Now().UTC()},
		{ID: "u2", Name: "Grace", Email: "grace@example.com", Avatar: "🦊", CreatedAt: time.Now().UTC()},
	}
	if err := adapter.SaveUsers(ctx, users); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	if err := adapter.SaveTasks(ctx, "u1", []model.Task{{ID: "t1", UserID: "u1", Title: "Ship release"}}); err != nil {
		t.Fatalf("SaveTasks u1: %v", err)
	}
	if err := adapter.SaveTasks(ctx, "u2", []model.Task{{ID: "t2", UserID: "u2", Title: "Review patch"}}); err != nil {
		t.Fatalf("SaveTasks u2: %v", err)
	}
	if err := adapter.SetCurrentUserID(ctx, "u1"); err != nil {
		t.Fatalf("SetCurrentUserID: %v", err)
	}
	if err := adapter.SetTheme(ctx, "ocean"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	return adapter
}

func TestExportCollectsFullState(t *testing.T) {
	adapter := seedState(t)

	env, err := Export(context.Background(), adapter)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if env.Version != Version {
		t.Errorf("version = %q, want %q", env.Version, Version)
	}
	if len(env.Users) != 2 {
		t.Fatalf("exported %d users, want 2", len(env.Users))
	}
	if env.CurrentUser != "u1" {
		t.Errorf("current user = %q, want u1", env.CurrentUser)
	}
	if env.Theme != "ocean" {
		t.Errorf("theme = %q, want ocean", env.Theme)
	}
	if len(env.Tasks["u1"]) != 1 || env.Tasks["u1"][0].Title != "Ship release" {
		t.Errorf("u1 tasks wrong: %+v", env.Tasks["u1"])
	}
	if len(env.Tasks["u2"]) != 1 {
		t.Errorf("u2 tasks wrong: %+v", env.Tasks["u2"])
	}
}

func TestImportRoundTrip(t *testing.T) {
	src := seedState(t)
	ctx := context.Background()

	env, err := Export(ctx, src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := testutil.NewTestAdapter(t)
	if err := Import(ctx, dst, env); err != nil {
		t.Fatalf("Import: %v", err)
	}

	users, err := dst.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("imported %d users, want 2", len(users))
	}
	tasks, err := dst.LoadTasks(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Ship release" {
		t.Errorf("u1 tasks wrong after import: %+v", tasks)
	}
	id, _ := dst.CurrentUserID(ctx)
	if id != "u1" {
		t.Errorf("current user = %q, want u1", id)
	}
	theme, _ := dst.Theme(ctx)
	if theme != "ocean" {
		t.Errorf("theme = %q, want ocean", theme)
	}
}

func TestImportVersionMismatchLeavesStorageUntouched(t *testing.T) {
	adapter := seedState(t)
	ctx := context.Background()

	bad := &Envelope{
		Version: "1.0",
		Users:   []model.User{{ID: "intruder", Name: "Mallory"}},
		Tasks:   map[string][]model.Task{"intruder": {{ID: "x", Title: "evil"}}},
	}
	if err := Import(ctx, adapter, bad); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("err = %v, want ErrVersionMismatch", err)
	}

	users, err := adapter.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("rejected import changed users: %+v", users)
	}
	for _, u := range users {
		if u.ID == "intruder" {
			t.Fatal("rejected import wrote a user")
		}
	}
	tasks, _ := adapter.LoadTasks(ctx, "u1")
	if len(tasks) != 1 {
		t.Errorf("rejected import changed tasks: %+v", tasks)
	}
}

func TestFileRoundTrip(t *testing.T) {
	adapter := seedState(t)
	ctx := context.Background()

	env, err := Export(ctx, adapter)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := WriteFile(path, env); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Version != env.Version || got.CurrentUser != env.CurrentUser {
		t.Errorf("file round-trip mismatch: %+v", got)
	}
	if len(got.Users) != len(env.Users) || len(got.Tasks) != len(env.Tasks) {
		t.Errorf("file round-trip dropped data: %+v", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)

	path, err := WriteSnapshot(dir, "Statistics\nTotal: 3\n", now)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if !strings.HasSuffix(path, "taskbox-snapshot-20260831-143005.txt") {
		t.Errorf("unexpected snapshot path: %s", path)
	}
}
