package cli

import (
	"bytes"
	"os"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	return buf.String()
}

func withTempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "storycast-cli-test-*")
	if err != nil {
		t.Fatalf("temp dir: %v", err)
	}
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	return dir, func() {
		_ = os.Chdir(old)
		_ = os.RemoveAll(dir)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var err error
	out := captureStdout(t, func() {
		RootCmd.SetArgs(args)
		err = RootCmd.Execute()
	})
	return out, err
}

func initWorkspace(t *testing.T) {
	t.Helper()

	if _, err := runCommand(t, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
}
