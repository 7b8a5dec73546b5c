package buildtool

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hotg-ai/runecoral-go/pkg/runecoral/logging"
)

// ErrUnsupportedTarget is returned for operating systems librunecoral has no
// build recipe for.
var ErrUnsupportedTarget = errors.New("target OS not supported")

// Builder produces a librunecoral dist directory, either by locating a
// prebuilt one or by driving the project's make/bazel build.
type Builder struct {
	cfg    Config
	runner Runner
	log    logging.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(b *Builder) {
		b.runner = r
	}
}

// WithLogger sets the logger used to report build steps.
func WithLogger(l logging.Logger) Option {
	return func(b *Builder) {
		b.log = l
	}
}

func NewBuilder(cfg Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:    cfg.withDefaults(),
		runner: ExecRunner{},
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the dist directory, compiling librunecoral first unless a
// prebuilt installation was configured.
func (b *Builder) Build(ctx context.Context) (*Dist, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	if b.cfg.Prebuilt() {
		b.log.Info(ctx, "using prebuilt librunecoral", "dist", b.cfg.DistDir)
		return Locate(b.cfg)
	}

	target := TargetOS(b.cfg.GOOS)
	b.log.Info(ctx, "building librunecoral",
		"os", target,
		"arch", TargetArch(b.cfg.GOARCH),
		"mode", string(b.cfg.Mode),
		"edgetpu", b.cfg.EdgeTPU,
		"gpu", b.cfg.GPU,
	)

	var err error
	switch target {
	case "windows":
		err = b.buildWindows(ctx)
	case "linux", "android", "macos", "ios":
		err = b.runner.Run(ctx, b.makeCommand())
	default:
		err = errors.Wrapf(ErrUnsupportedTarget, "%s", target)
	}
	if err != nil {
		return nil, errors.Wrap(err, "build librunecoral")
	}

	if err := b.installHeader(); err != nil {
		return nil, err
	}
	return Locate(b.cfg)
}

func (b *Builder) makeCommand() Command {
	c := b.cfg
	args := []string{
		"librunecoral-" + TargetOS(c.GOOS) + "-" + TargetArch(c.GOARCH),
		"PREFIX=" + c.OutDir,
		"COMPILATION_MODE=" + string(c.Mode),
		"BAZEL=" + c.Bazel + " --batch --output_user_root=" + c.BazelCacheDir(),
	}
	if c.EdgeTPU {
		args = append(args, "EDGETPU_ACCELERATION=true")
	}
	if c.GPU {
		args = append(args, "GPU_ACCELERATION=true")
	}
	return Command{Name: c.Make, Args: args, Dir: c.ProjectRoot}
}

func (b *Builder) bazelWindowsCommand() Command {
	c := b.cfg
	args := []string{
		"--batch",
		"--output_user_root", c.BazelCacheDir(),
		"build",
		"-c", string(c.Mode),
		"--config", "windows",
		"//runecoral:runecoral",
	}
	if c.EdgeTPU {
		args = append(args, "--define", "edgetpu_acceleration=true")
	}
	if c.GPU {
		args = append(args, "--define", "gpu_acceleration=true")
	}
	return Command{Name: c.Bazel, Args: args, Dir: c.ProjectRoot}
}

// buildWindows does the job of make, which is unavailable there.
func (b *Builder) buildWindows(ctx context.Context) error {
	libDir := b.cfg.LibDir()
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		return errors.Wrap(err, "create library directory")
	}
	if err := b.runner.Run(ctx, b.bazelWindowsCommand()); err != nil {
		return err
	}
	src := filepath.Join(b.cfg.ProjectRoot, "bazel-bin", "runecoral", "runecoral.lib")
	return copyFile(src, filepath.Join(libDir, "runecoral.lib"))
}

func (b *Builder) installHeader() error {
	src := filepath.Join(b.cfg.ProjectRoot, "runecoral", headerName)
	dst := filepath.Join(b.cfg.IncludeDir(), headerName)
	if err := os.MkdirAll(b.cfg.IncludeDir(), 0o755); err != nil {
		return errors.Wrap(err, "create include directory")
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- paths are derived from the build configuration
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst) // #nosec G304 -- paths are derived from the build configuration
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copy %s", src)
	}
	return errors.Wrapf(out.Close(), "close %s", dst)
}
