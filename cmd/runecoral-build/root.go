package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hotg-ai/runecoral-go/internal/buildtool"
	"github.com/hotg-ai/runecoral-go/pkg/runecoral/logging"
)

const envPrefix = "RUNECORAL"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "runecoral-build",
		Short:         "Build librunecoral and generate its Go bindings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("project-root", ".", "librunecoral checkout containing the Makefile and runecoral/runecoral.h")
	flags.String("out-dir", ".", "directory receiving dist/ and the bazel cache")
	flags.String("dist-dir", "", "prebuilt dist directory; when set nothing is compiled")
	flags.String("goos", "", "target operating system (default: host)")
	flags.String("goarch", "", "target architecture (default: host)")
	flags.String("profile", "debug", `build profile; "release" compiles with -c opt`)
	flags.Bool("edgetpu", false, "enable EdgeTPU acceleration")
	flags.Bool("gpu", false, "enable GPU acceleration")
	flags.String("make", "make", "make executable")
	flags.String("bazel", "bazel", "bazel executable")
	flags.BoolP("verbose", "v", false, "log build steps")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		newBuildCmd(v),
		newEnvCmd(v),
		newBindgenCmd(),
	)
	return root
}

func configFromViper(v *viper.Viper) (buildtool.Config, error) {
	cfg := buildtool.Config{
		ProjectRoot: v.GetString("project-root"),
		OutDir:      v.GetString("out-dir"),
		DistDir:     v.GetString("dist-dir"),
		GOOS:        v.GetString("goos"),
		GOARCH:      v.GetString("goarch"),
		Mode:        buildtool.ModeForProfile(v.GetString("profile")),
		EdgeTPU:     v.GetBool("edgetpu"),
		GPU:         v.GetBool("gpu"),
		Make:        v.GetString("make"),
		Bazel:       v.GetString("bazel"),
	}

	// make runs in the project root, so PREFIX must not be relative.
	for _, p := range []*string{&cfg.ProjectRoot, &cfg.OutDir, &cfg.DistDir} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return buildtool.Config{}, fmt.Errorf("resolve %s: %w", *p, err)
		}
		*p = abs
	}
	return cfg, nil
}

func newLogger(v *viper.Viper) logging.Logger {
	if !v.GetBool("verbose") {
		return logging.Nop()
	}
	return logging.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func newBuildCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Locate or compile librunecoral and print the cgo flags for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromViper(v)
			if err != nil {
				return err
			}

			b := buildtool.NewBuilder(cfg, buildtool.WithLogger(newLogger(v)))
			d, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), buildtool.NewLinkFlags(cfg, d).Exports())
			return err
		},
	}
}

func newEnvCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print CGO_CFLAGS and CGO_LDFLAGS for an existing dist directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromViper(v)
			if err != nil {
				return err
			}

			d, err := buildtool.Locate(cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), buildtool.NewLinkFlags(cfg, d).Exports())
			return err
		},
	}
}

func newBindgenCmd() *cobra.Command {
	var header, out, pkg string

	cmd := &cobra.Command{
		Use:   "bindgen",
		Short: "Generate Go constants and the symbol list from runecoral.h",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := os.ReadFile(header) // #nosec G304 -- header path is supplied by the developer
			if err != nil {
				return err
			}

			h, err := buildtool.ParseHeader(src)
			if err != nil {
				return fmt.Errorf("parse %s: %w", header, err)
			}

			code, err := buildtool.Generate(h, buildtool.GenerateOptions{
				Package: pkg,
				Source:  filepath.Base(header),
			})
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(code)
				return err
			}
			return os.WriteFile(out, code, 0o644) // #nosec G306 -- generated source is world readable
		},
	}

	cmd.Flags().StringVar(&header, "header", "runecoral/runecoral.h", "C header to read")
	cmd.Flags().StringVar(&out, "out", "-", `output file, or "-" for stdout`)
	cmd.Flags().StringVar(&pkg, "package", "bindings", "package name of the generated file")
	return cmd
}
