package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runExtract(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(append([]string{"extract"}, args...))
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		includePattern = ""
		verbose = false
		rootCmd.PersistentFlags().Set("verbose", "false")
	}()
	require.NoError(t, rootCmd.Execute())
	return out.String(), errBuf.String()
}

func TestExtractCommand_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "main.py", "def main():\n    \"\"\"Entry point.\"\"\"\n    pass\n")

	stdout, _ := runExtract(t, file)
	assert.Contains(t, stdout, "# main.py [Python]")
	assert.Contains(t, stdout, "def main()")
	assert.Contains(t, stdout, `"""Entry point."""`)
}

func TestExtractCommand_DirectoryWalksSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def a():\n    pass\n")
	writeFile(t, dir, "b.go", "package b\n\nfunc B() {}\n")
	writeFile(t, dir, "notes.txt", "not source\n")

	stdout, _ := runExtract(t, dir)
	assert.Contains(t, stdout, "# a.py [Python]")
	assert.Contains(t, stdout, "# b.go [Go]")
	assert.NotContains(t, stdout, "notes.txt")
}

func TestExtractCommand_IncludeGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.py", "def keep():\n    pass\n")
	writeFile(t, dir, "skip.go", "package skip\n")

	stdout, _ := runExtract(t, dir, "--include", "*.py")
	assert.Contains(t, stdout, "keep.py")
	assert.NotContains(t, stdout, "skip.go")
}

func TestExtractCommand_UnsupportedFileWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, dir, "data.csv", "a,b\n")
	code := writeFile(t, dir, "ok.py", "def ok():\n    pass\n")

	stdout, stderr := runExtract(t, plain, code)
	assert.Contains(t, stderr, "no skeleton for")
	assert.Contains(t, stdout, "# ok.py [Python]")
}

func TestExtractCommand_VerboseFlag(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "doc.py", "def f():\n    \"\"\"Summary.\n\n    Detail paragraph.\n    \"\"\"\n")

	compact, _ := runExtract(t, file)
	assert.NotContains(t, compact, "Detail paragraph.")

	verboseOut, _ := runExtract(t, "--verbose", file)
	assert.Contains(t, verboseOut, "Detail paragraph.")
}

func TestExtractCommand_InvalidIncludePattern(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"extract", "--include", "[", "somefile.py"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		includePattern = ""
	}()
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --include pattern")
}
