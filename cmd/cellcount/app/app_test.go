package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/testsupport"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateCommand(t *testing.T) {
	path := testsupport.WriteDatasetFile(t, "scenario.json", testsupport.ScenarioJSON)

	out, err := execute(t, "", "estimate", "--dataset", path, "0.15", "0.05", "abc")
	if err != nil {
		t.Fatalf("estimate: %v\n%s", err, out)
	}
	want := "0.15 = 200 cells/mL\n0.05 = - (range 0.100 to 0.200)\nabc = - (range 0.100 to 0.200)\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestEstimateCommand_JSON(t *testing.T) {
	path := testsupport.WriteDatasetFile(t, "scenario.json", testsupport.ScenarioJSON)

	out, err := execute(t, "", "estimate", "--dataset", path, "-o", "json", "0.2")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if !strings.Contains(out, `"estimate":300`) {
		t.Fatalf("unexpected payload %s", out)
	}
}

func TestEstimateCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "table.json")
	if err := os.WriteFile(data, []byte(testsupport.ScenarioJSON), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	cfgPath := filepath.Join(dir, "cellcount.yaml")
	if err := os.WriteFile(cfgPath, []byte("dataset: "+data+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "", "estimate", "--config", cfgPath, "0.1")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if out != "0.1 = 100 cells/mL\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCommands_RequireDataset(t *testing.T) {
	if _, err := execute(t, "", "estimate", "0.1"); err == nil {
		t.Fatalf("expected missing dataset to fail")
	}
	if _, err := execute(t, "", "table", "--dataset", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected unreadable dataset to fail")
	}
}

func TestCommands_ResolveThemeThroughRegistry(t *testing.T) {
	path := testsupport.WriteDatasetFile(t, "scenario.json", testsupport.ScenarioJSON)

	if _, err := execute(t, "", "estimate", "--dataset", path, "--theme", "cellcount", "--variant", "light", "0.1"); err != nil {
		t.Fatalf("known theme and variant: %v", err)
	}
	_, err := execute(t, "", "estimate", "--dataset", path, "--theme", "neon", "0.1")
	if !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := execute(t, "", "estimate", "--dataset", path, "--variant", "sepia", "0.1"); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestTableCommand(t *testing.T) {
	path := testsupport.WriteDatasetFile(t, "scenario.json", testsupport.ScenarioJSON)

	out, err := execute(t, "", "table", "--dataset", path, "--format", "markdown", "--od", "0.2")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.Contains(out, "| 1 | 0.200 | 300 | < |") {
		t.Fatalf("unexpected table:\n%s", out)
	}

	out, err = execute(t, "", "table", "--dataset", path, "-f", "json")
	if err != nil {
		t.Fatalf("table json: %v", err)
	}
	if !strings.Contains(out, `"points":[[0.1,100],[0.2,300]]`) {
		t.Fatalf("unexpected json table %s", out)
	}

	if _, err := execute(t, "", "table", "--dataset", path, "-f", "csv"); err == nil {
		t.Fatalf("expected unknown format to fail")
	}
}

func TestWatchCommand_FlushesLastReadingAtEOF(t *testing.T) {
	path := testsupport.WriteDatasetFile(t, "scenario.json", testsupport.ScenarioJSON)

	out, err := execute(t, "0.1\n0.12\n0.15\n", "watch", "--dataset", path, "--debounce", "1h")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if out != "0.15 = 200 cells/mL\n" {
		t.Fatalf("expected only the settled reading, got %q", out)
	}
}

func TestWatch_ZeroDelayEvaluatesEveryLine(t *testing.T) {
	builder := model.NewBuilder(testsupport.ScenarioDataset(t))

	var out bytes.Buffer
	if err := watch(context.Background(), strings.NewReader("0.1\n0.2\n"), &out, builder, 0); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if out.String() != "0.1 = 100 cells/mL\n0.2 = 300 cells/mL\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	builder := model.NewBuilder(testsupport.ScenarioDataset(t))
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watch(ctx, reader, io.Discard, builder, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watch did not stop on cancel")
	}
}
