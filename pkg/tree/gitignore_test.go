package tree

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGitignorePatterns(t *testing.T) {
	dir := t.TempDir()
	content := `# build artifacts
node_modules/
*.log

!keep.log
build/output
dist
/anchored
`
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := GitignorePatterns(dir)
	want := []string{"node_modules", "*.log", "dist"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GitignorePatterns() = %v, want %v", got, want)
	}
}

func TestGitignorePatternsMissingFile(t *testing.T) {
	if got := GitignorePatterns(t.TempDir()); got != nil {
		t.Errorf("GitignorePatterns() on empty dir = %v, want nil", got)
	}
}

func TestBuildFSWithGitignorePatterns(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("node_modules/\n*.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "node_modules/leftpad/index.js", 100)
	writeFile(t, dir, "debug.log", 50)
	writeFile(t, dir, "main.go", 10)

	root, err := BuildFS(dir, WithIgnore(GitignorePatterns(dir)...))
	if err != nil {
		t.Fatalf("BuildFS() error = %v", err)
	}
	names := childNames(root)
	for _, name := range names {
		if name == "node_modules" || name == "debug.log" {
			t.Errorf("ignored entry %q was scanned", name)
		}
	}
	found := false
	for _, name := range names {
		if name == "main.go" {
			found = true
		}
	}
	if !found {
		t.Errorf("regular file missing from tree: %v", names)
	}
}
