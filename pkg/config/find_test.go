package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func TestFindFile_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, "custom.yaml", "base_url: http://localhost:8080\n")

	found, err := FindFile(tmpDir, path)
	if err != nil {
		t.Fatalf("FindFile failed: %v", err)
	}
	if found != path {
		t.Errorf("expected %q, got %q", path, found)
	}

	_, err = FindFile(tmpDir, filepath.Join(tmpDir, "nonexistent"))
	if err == nil {
		t.Error("expected error for non-existent file")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("a missing explicit file must not fall back to defaults")
	}
}

func TestFindFile_TraverseUp(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	subdir2 := filepath.Join(tmpDir, "subdir1", "subdir2")
	if err := os.MkdirAll(subdir2, 0o700); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o700); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}

	path := writeConfig(t, tmpDir, ".smoketest.yml", "")

	found, err := FindFile(subdir2, "")
	if err != nil {
		t.Fatalf("FindFile failed: %v", err)
	}
	if found != path {
		t.Errorf("expected %q, got %q", path, found)
	}
}

func TestFindFile_PrefersYAMLExtension(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := writeConfig(t, tmpDir, ".smoketest.yaml", "")
	writeConfig(t, tmpDir, ".smoketest.yml", "")

	found, err := FindFile(tmpDir, "")
	if err != nil {
		t.Fatalf("FindFile failed: %v", err)
	}
	if found != yamlPath {
		t.Errorf("expected %q, got %q", yamlPath, found)
	}
}

func TestFindFile_StopAtGit(t *testing.T) {
	tmpDir := t.TempDir()

	projectDir := filepath.Join(tmpDir, "project")
	if err := os.MkdirAll(filepath.Join(projectDir, ".git"), 0o700); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}

	// outside the repository, must not be picked up
	writeConfig(t, tmpDir, ".smoketest.yaml", "")

	_, err := FindFile(projectDir, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindFile_StopAtHome(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	testDir := filepath.Join(homeDir, "work")
	if err := os.MkdirAll(testDir, 0o700); err != nil {
		t.Fatalf("failed to create test directory: %v", err)
	}

	_, err := FindFile(testDir, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o700); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}

	cfg, path, err := Resolve(tmpDir, "", func(string) string { return "" })
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config path, got %q", path)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
}

func TestResolve_FileAndEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, ".smoketest.yaml", "base_url: http://localhost:8080\ntimeout_seconds: 9\n")

	env := map[string]string{EnvTimeout: "2"}
	cfg, found, err := Resolve(tmpDir, "", func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if found != path {
		t.Errorf("found %q, want %q", found, path)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want file value", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 2 {
		t.Errorf("TimeoutSeconds = %d, want env override 2", cfg.TimeoutSeconds)
	}
}

func TestResolve_BadFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".smoketest.yaml", "suites: [\n")

	if _, _, err := Resolve(tmpDir, "", func(string) string { return "" }); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolve_BadEnv(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".smoketest.yaml", "")

	env := map[string]string{EnvPassThreshold: "many"}
	if _, _, err := Resolve(tmpDir, "", func(k string) string { return env[k] }); err == nil {
		t.Error("expected env error")
	}
}
