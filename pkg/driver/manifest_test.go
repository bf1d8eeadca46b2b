package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifestBasic(t *testing.T) {
	path := writeManifest(t, `
name: demo-app
version: "0.1.0"
targets:
  main: src/main.yml
  bench-loop:
    main: bench/loop.yml
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if got, want := manifest.Name, "demo_app"; got != want {
		t.Fatalf("Name = %q, want %q", got, want)
	}
	if got := manifest.Version; got != "0.1.0" {
		t.Fatalf("Version = %q, want 0.1.0", got)
	}
	if got, want := strings.Join(manifest.TargetOrder, ","), "main,bench_loop"; got != want {
		t.Fatalf("TargetOrder = %q, want %q", got, want)
	}
	dir := filepath.Dir(path)
	if got, want := manifest.Targets["main"].Main, filepath.Join(dir, "src", "main.yml"); got != want {
		t.Fatalf("main target Main = %q, want %q", got, want)
	}

	target, ok := manifest.FindTarget("bench-loop")
	if !ok {
		t.Fatalf("FindTarget(bench-loop) missing")
	}
	if got, want := target.Main, filepath.Join(dir, "bench", "loop.yml"); got != want {
		t.Fatalf("bench target Main = %q, want %q", got, want)
	}

	def, err := manifest.DefaultTarget()
	if err != nil {
		t.Fatalf("DefaultTarget returned error: %v", err)
	}
	if def.Name != "main" {
		t.Fatalf("DefaultTarget = %q, want main", def.Name)
	}
}

func TestManifestDefaultTargetOverride(t *testing.T) {
	path := writeManifest(t, `
name: demo
default: second
targets:
  first: a.yml
  second: b.yml
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	target, err := manifest.DefaultTarget()
	if err != nil {
		t.Fatalf("DefaultTarget returned error: %v", err)
	}
	if target.Name != "second" {
		t.Fatalf("DefaultTarget = %q, want second", target.Name)
	}
}

func TestManifestWithoutTargets(t *testing.T) {
	path := writeManifest(t, "name: empty\n")
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if _, err := manifest.DefaultTarget(); !errors.Is(err, ErrNoTargets) {
		t.Fatalf("DefaultTarget error = %v, want ErrNoTargets", err)
	}
}

func TestManifestValidationErrors(t *testing.T) {
	path := writeManifest(t, `
default: missing
targets:
  run-me: {}
  run_me: other.yml
`)
	_, err := LoadManifest(path)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"name must be provided",
		`target "run-me" requires a main entrypoint`,
		`targets "run-me" and "run_me" collide after sanitization`,
		`default target "missing" is not defined`,
	}
	if len(valErr.Issues) != len(want) {
		t.Fatalf("issues = %#v, want %d entries", valErr.Issues, len(want))
	}
	for idx, issue := range want {
		if valErr.Issues[idx] != issue {
			t.Fatalf("issue %d = %q, want %q", idx, valErr.Issues[idx], issue)
		}
	}
}

func TestManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, `
name: demo
dependencies:
  stdlib: "1.0"
`)
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "dependencies") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestManifestEmptyFile(t *testing.T) {
	path := writeManifest(t, "")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	path := writeManifest(t, "name: demo\n")
	nested := filepath.Join(filepath.Dir(path), "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest returned error: %v", err)
	}
	if found != path {
		t.Fatalf("FindManifest = %q, want %q", found, path)
	}
}

func TestFindManifestMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindManifest(dir); !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("FindManifest error = %v, want ErrManifestNotFound", err)
	}
}

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(strings.TrimLeft(contents, "\n")), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}
