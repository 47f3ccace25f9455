package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/BenKalegin/clouddiagram-sub004/internal/testutils"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = `
name: pair
steps:
  - {op: vertex, id: a, x: 10, y: 10, width: 20, height: 20}
  - {op: vertex, id: b, x: 100, y: 10, width: 20, height: 20}
  - {op: edge, id: ab, source: a, target: b}
  - {op: select, cells: [b]}
`

func TestRun_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := Options{ScriptPath: testutils.WriteFile(t, "script.yaml", script), JSON: true, Out: &out, Err: &bytes.Buffer{}}
	require.NoError(t, Run(context.Background(), opts))

	var d Dump
	require.NoError(t, json.Unmarshal(out.Bytes(), &d))
	assert.Equal(t, "pair", d.Name)
	assert.Equal(t, []string{"b"}, d.Selection)
	assert.Equal(t, 5, d.Document.Count())
	assert.Equal(t, 4, d.History.Edits)
	assert.True(t, d.History.CanUndo)
	require.Contains(t, d.States, "ab")
	assert.Len(t, d.States["ab"].Points, 2)
	assert.Equal(t, 20.0, d.States["a"].Bounds.Width)
}

func TestRun_SummaryAndMetrics(t *testing.T) {
	var out bytes.Buffer
	opts := Options{ScriptPath: testutils.WriteFile(t, "script.yaml", script), Metrics: true, Out: &out, Err: &bytes.Buffer{}}
	require.NoError(t, Run(context.Background(), opts))

	assert.Contains(t, out.String(), ">>> pair: 4 steps, 5 cells")
	assert.Contains(t, out.String(), ">>> selection: 1 cells")
	assert.Contains(t, out.String(), "clouddiagram_edits_total 4")
}

func TestRun_FailingStepStillReports(t *testing.T) {
	var out, errOut bytes.Buffer
	path := testutils.WriteFile(t, "script.yaml", "steps:\n  - {op: vertex, id: a}\n  - {op: remove, id: ghost}\n")
	err := Run(context.Background(), Options{ScriptPath: path, Out: &out, Err: &errOut})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2 (remove)")
	assert.Contains(t, out.String(), "3 cells")
}

func TestRun_ConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("history_size: 1\nid_prefix: n\nlog_level: error\n"), 0o644))

	var out bytes.Buffer
	path := testutils.WriteFile(t, "script.yaml", "steps:\n  - {op: vertex}\n  - {op: vertex}\n")
	require.NoError(t, Run(context.Background(), Options{ScriptPath: path, ConfigPath: cfg, JSON: true, Out: &out}))

	var d Dump
	require.NoError(t, json.Unmarshal(out.Bytes(), &d))
	assert.Equal(t, 1, d.History.Edits)
	assert.Contains(t, d.States, "n2")
	assert.Contains(t, d.States, "n3")
}

func TestGraph(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Graph(Options{ScriptPath: testutils.WriteFile(t, "script.yaml", script), Out: &out}))
	assert.Contains(t, out.String(), "a --> b")
	assert.Contains(t, out.String(), "class b selected;")
}

func TestInspect(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Inspect(Options{ScriptPath: testutils.WriteFile(t, "script.yaml", script), Out: &out}, false))
	assert.Contains(t, out.String(), "# Session")
	assert.Contains(t, out.String(), "| `ab` | edge |")
}

func TestRunWatch_ReplaysOnChange(t *testing.T) {
	path := testutils.WriteFile(t, "script.yaml", script)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan error, 4)
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, Options{ScriptPath: path, Out: &out, Err: &bytes.Buffer{}}, func(err error) { runs <- err })
	}()

	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - {op: remove, id: ghost}\n"), 0o644))
	select {
	case err := <-runs:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("change was not picked up")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWithInterrupt_CapturesSignal(t *testing.T) {
	ctx, stop := WithInterrupt(context.Background())
	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled by the signal")
	}
	sig := stop()
	assert.Equal(t, syscall.SIGTERM, sig)

	var out bytes.Buffer
	ReportInterrupt(&out, sig)
	assert.Equal(t, ">>> Stopped by terminated.\n", out.String())
}

func TestWithInterrupt_ParentCancelled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := WithInterrupt(parent)
	cancel()
	<-ctx.Done()

	sig := stop()
	assert.Nil(t, sig)

	var out bytes.Buffer
	ReportInterrupt(&out, sig)
	assert.Empty(t, out.String())
}
