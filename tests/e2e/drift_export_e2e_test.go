package main_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestE2E_CheckDrift_QuiescentDataset(t *testing.T) {
	dir := fsFixture(t)

	out, code := runTmv(t, "--fs", dir, "--check-drift", "--drift-interval", "50ms")
	if code != 0 {
		t.Fatalf("quiescent --check-drift exited %d\n%s", code, out)
	}
	if !strings.Contains(out, "no drift") {
		t.Errorf("summary = %q, want no drift", strings.TrimSpace(out))
	}
}

// startDriftCheck launches a drift check with a long interval so the
// test can mutate the dataset between the two builds.
func startDriftCheck(t *testing.T, stdout *bytes.Buffer, args ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(tmvBinary(t), args...)
	cmd.Env = append(os.Environ(), "TMV_TEST=1")
	cmd.Stdout = stdout
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting tmv: %v", err)
	}
	return cmd
}

func waitExitCode(t *testing.T, cmd *exec.Cmd) int {
	t.Helper()
	err := cmd.Wait()
	if err == nil {
		return 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("waiting for tmv: %v", err)
	}
	return exitErr.ExitCode()
}

func TestE2E_CheckDrift_CriticalOnMajorRemoval(t *testing.T) {
	dir := fsFixture(t)

	var stdout bytes.Buffer
	cmd := startDriftCheck(t, &stdout, "--fs", dir, "--check-drift", "--drift-interval", "3s")

	// Mutate well inside the interval: after the first build, before
	// the second. data.bin carries over half the total weight, so its
	// removal is critical drift, not just a warning.
	time.Sleep(time.Second)
	if err := os.Remove(filepath.Join(dir, "data.bin")); err != nil {
		t.Fatal(err)
	}

	if code := waitExitCode(t, cmd); code != 1 {
		t.Fatalf("drift check exited %d, want 1 (critical)\n%s", code, stdout.String())
	}
	summary := strings.TrimSpace(stdout.String())
	if !strings.Contains(summary, "−1") || !strings.Contains(summary, "15360 → 7168") {
		t.Errorf("summary = %q, want one removal and the weight drop", summary)
	}
}

func TestE2E_RobotDrift_ReportsRemoval(t *testing.T) {
	dir := fsFixture(t)

	var stdout bytes.Buffer
	cmd := startDriftCheck(t, &stdout, "--fs", dir, "--robot-drift", "--drift-interval", "3s")

	time.Sleep(time.Second)
	if err := os.Remove(filepath.Join(dir, "docs", "readme.md")); err != nil {
		t.Fatal(err)
	}

	code := waitExitCode(t, cmd)

	var out struct {
		GeneratedAt string `json:"generated_at"`
		Drift       struct {
			HasDrift    bool  `json:"has_drift"`
			Removed     int   `json:"removed"`
			TotalBefore int64 `json:"total_before"`
			TotalAfter  int64 `json:"total_after"`
		} `json:"drift"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decoding --robot-drift output: %v\n%s", err, stdout.String())
	}
	if code != 2 {
		t.Errorf("robot drift exited %d, want 2", code)
	}
	if !out.Drift.HasDrift || out.Drift.Removed != 1 {
		t.Errorf("drift = %+v, want one removal", out.Drift)
	}
	if out.Drift.TotalAfter != out.Drift.TotalBefore-1024 {
		t.Errorf("totals %d → %d, want a 1024-byte drop", out.Drift.TotalBefore, out.Drift.TotalAfter)
	}
}

func TestE2E_ExportsFanOut(t *testing.T) {
	dir := fsFixture(t)
	outDir := t.TempDir()
	svgPath := filepath.Join(outDir, "map.svg")
	pngPath := filepath.Join(outDir, "map.png")
	mdPath := filepath.Join(outDir, "report.md")

	out, code := runTmv(t, "--fs", dir,
		"--export-svg", svgPath,
		"--export-png", pngPath,
		"--export-md", mdPath,
	)
	if code != 0 {
		t.Fatalf("export run exited %d\n%s", code, out)
	}

	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("reading svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("main.go")) {
		t.Errorf("svg output missing expected content")
	}

	png, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatalf("reading png: %v", err)
	}
	if len(png) < 8 || !bytes.Equal(png[1:4], []byte("PNG")) {
		t.Errorf("png output missing magic bytes")
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("reading markdown: %v", err)
	}
	if !bytes.Contains(md, []byte("# Treemap report")) || !bytes.Contains(md, []byte("data.bin")) {
		t.Errorf("markdown report missing expected content")
	}
}

func TestE2E_ExportSVGDeterministic(t *testing.T) {
	dir := fsFixture(t)
	outDir := t.TempDir()
	first := filepath.Join(outDir, "a.svg")
	second := filepath.Join(outDir, "b.svg")

	if _, code := runTmv(t, "--fs", dir, "--export-svg", first); code != 0 {
		t.Fatalf("first export exited %d", code)
	}
	if _, code := runTmv(t, "--fs", dir, "--export-svg", second); code != 0 {
		t.Fatalf("second export exited %d", code)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("identical dataset produced different SVGs")
	}
}
