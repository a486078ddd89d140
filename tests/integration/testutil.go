// Package integration provides CLI integration tests for cafeteria.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// cafeteriaBin is the path to the built cafeteria binary.
	cafeteriaBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetCafeteriaBin sets the path to the cafeteria binary (called from TestMain).
func SetCafeteriaBin(path string) {
	cafeteriaBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config and
// data directory. The written config uses millisecond kitchen delays so
// watch-style tests finish quickly.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build cafeteria: %v", buildErr)
	}
	if cafeteriaBin == "" {
		t.Fatal("cafeteria binary not built (cafeteriaBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := fmt.Sprintf(
		"data_dir: %s\nsimulation:\n  min_delay_ms: 5\n  max_delay_ms: 20\n", dataDir)
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of a cafeteria command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunCafeteria executes the cafeteria CLI with the given arguments.
func (e *TestEnv) RunCafeteria(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(cafeteriaBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		e.t.Fatalf("failed to run cafeteria %v: %v", args, err)
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunCafeteria executes the CLI and fails the test on a non-zero exit.
func (e *TestEnv) MustRunCafeteria(args ...string) CmdResult {
	e.t.Helper()

	result := e.RunCafeteria(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("cafeteria %v exited %d\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON unmarshals a command's stdout into v.
func (e *TestEnv) ParseJSON(result CmdResult, v any) {
	e.t.Helper()

	if err := json.Unmarshal([]byte(result.Stdout), v); err != nil {
		e.t.Fatalf("failed to parse JSON output: %v\noutput: %s", err, result.Stdout)
	}
}
