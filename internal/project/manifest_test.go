package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"spicy/internal/project"
)

func TestLoadDefaultsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	m, path, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Fatalf("no manifest expected, found %q", path)
	}
	if m.Diagnostics.Max != 100 || m.Diagnostics.Color != "auto" {
		t.Fatalf("defaults wrong: %+v", m.Diagnostics)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	content := `
[project]
name = "shapes"
entry = "shapes.spc"

[diagnostics]
max = 25
color = "off"
`
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, path, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatalf("manifest not found")
	}
	if m.Project.Name != "shapes" || m.Project.Entry != "shapes.spc" {
		t.Fatalf("project section: %+v", m.Project)
	}
	if m.Diagnostics.Max != 25 || m.Diagnostics.Color != "off" {
		t.Fatalf("diagnostics section: %+v", m.Diagnostics)
	}
}

func TestLoadManifestFromParent(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested", "deeper")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte("[diagnostics]\nmax = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, path, err := project.Load(sub)
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatalf("manifest in ancestor not found")
	}
	if m.Diagnostics.Max != 7 {
		t.Fatalf("max: got %d", m.Diagnostics.Max)
	}
}

func TestManifestCapsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte("[diagnostics]\nmax = 50000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, _, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Diagnostics.Max != 1000 {
		t.Fatalf("cap not applied: %d", m.Diagnostics.Max)
	}
}
