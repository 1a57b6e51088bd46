package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"jamaah/pkg/domain"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("JAMAAH_STORAGE_DRIVER", "kv")
	t.Setenv("JAMAAH_KV_DRIVER", "memory")
	t.Setenv("JAMAAH_LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd, e := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := runRoot(cmd, e)
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	memoryEnv(t)
	t.Setenv("JAMAAH_SEED", "false")
	out, err := execute(t, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "seeded 18 records") || !strings.Contains(out, "members") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestStatsCommand(t *testing.T) {
	memoryEnv(t)
	out, err := execute(t, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Total members:     4", "Pending contents:  2", "Rp 200.000.000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestListCommand(t *testing.T) {
	memoryEnv(t)
	out, err := execute(t, "list", "donations")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "d1") || !strings.Contains(out, "25.0%") || !strings.Contains(out, "Rp 500.000.000") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	out, err = execute(t, "list", "masjid-posts")
	if err != nil || !strings.Contains(out, "Pengumuman Shalat Jumat") {
		t.Fatalf("list posts: %v\n%s", err, out)
	}
	if _, err := execute(t, "list", "widgets"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestFailingCommandStillClosesStore(t *testing.T) {
	memoryEnv(t)
	cmd, e := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "widgets"})
	if err := runRoot(cmd, e); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if e.svc != nil {
		t.Fatalf("store left open after a failed command")
	}
}

func TestExportThenImport(t *testing.T) {
	memoryEnv(t)
	file := filepath.Join(t.TempDir(), "snap.json")
	if _, err := execute(t, "export", file); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var snap domain.Snapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(snap.Members) != 4 || snap.Driver != domain.DriverKV {
		t.Fatalf("unexpected snapshot %+v", snap.Counts())
	}

	t.Setenv("JAMAAH_SEED", "false")
	out, err := execute(t, "import", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "members        inserted 4, skipped 0") {
		t.Fatalf("unexpected import output:\n%s", out)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	memoryEnv(t)
	t.Setenv("JAMAAH_STORAGE_DRIVER", "mongo")
	if _, err := execute(t, "stats"); err == nil {
		t.Fatalf("expected config error")
	}
}
