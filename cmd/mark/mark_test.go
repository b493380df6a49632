package mark

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/catalog"
	"github.com/nitaidas/sadhana/cmd/common/progress"
)

func captureFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "stdout")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func readBack(t *testing.T, f *os.File) string {
	t.Helper()
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(data)
}

func TestRunTogglesListened(t *testing.T) {
	t.Setenv("SADHANA_HOME", t.TempDir())
	bg, err := catalog.BG()
	if err != nil {
		t.Fatalf("BG() error = %v", err)
	}
	id := bg[0].ID

	out := captureFile(t)
	if err := Run(&Params{ID: id}, out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !progress.New(common.ProgressPath()).Get().IsListened(id) {
		t.Error("expected lecture listened after first toggle")
	}
	if got := readBack(t, out); !strings.Contains(got, "Marked listened") {
		t.Errorf("output = %q, want 'Marked listened'", got)
	}

	out2 := captureFile(t)
	if err := Run(&Params{ID: id}, out2); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if progress.New(common.ProgressPath()).Get().IsListened(id) {
		t.Error("expected lecture unlistened after second toggle")
	}
	if got := readBack(t, out2); !strings.Contains(got, "Marked unlistened") {
		t.Errorf("output = %q, want 'Marked unlistened'", got)
	}
}

func TestRunUnknownID(t *testing.T) {
	t.Setenv("SADHANA_HOME", t.TempDir())
	if err := Run(&Params{ID: -1}, captureFile(t)); err == nil {
		t.Error("expected error for unknown lecture id")
	}
}

func TestCmd(t *testing.T) {
	cmd := Cmd()
	if cmd == nil {
		t.Fatal("Cmd returned nil")
	}
	if cmd.Name() != "mark" {
		t.Errorf("expected Name()='mark', got '%s'", cmd.Name())
	}
}
