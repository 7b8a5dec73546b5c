package bindingstest

import (
	_ "embed"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

//go:embed testdata/sine.c
var sineSource []byte

// BuildSharedSine compiles a C implementation of the sine model into a
// shared object under t.TempDir and returns its path. The source is built
// against runecoral/runecoral.h, so it also checks the header still
// describes the functions Load binds. The test is skipped when no C
// compiler is available; set CC to choose one.
func BuildSharedSine(t testing.TB) string {
	t.Helper()

	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}
	if _, err := exec.LookPath(cc); err != nil {
		t.Skipf("no C compiler: %v", err)
	}

	_, self, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("locate bindingstest sources")
	}
	include := filepath.Join(filepath.Dir(self), "..", "..", "..", "runecoral")

	dir := t.TempDir()
	src := filepath.Join(dir, "sine.c")
	if err := os.WriteFile(src, sineSource, 0o644); err != nil {
		t.Fatalf("write stub source: %v", err)
	}

	args := []string{"-shared", "-fPIC"}
	out := filepath.Join(dir, "librunecoral.so")
	if runtime.GOOS == "darwin" {
		args = []string{"-dynamiclib"}
		out = filepath.Join(dir, "librunecoral.dylib")
	}
	args = append(args, "-I", include, "-o", out, src, "-lm")

	cmd := exec.Command(cc, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("%s %v: %v\n%s", cc, args, err, output)
	}
	return out
}
