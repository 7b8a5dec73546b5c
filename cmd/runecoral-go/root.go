package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hotg-ai/runecoral-go/pkg/runecoral"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("RUNECORAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "runecoral-go",
		Short:         "Run TensorFlow Lite models with librunecoral",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("library", "", "librunecoral shared object to load instead of the linked library")
	flags.String("backend", "none", `acceleration backend, e.g. "edgetpu|gpu"`)
	flags.BoolP("verbose", "v", false, "log debug output to stderr")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		newVersionCmd(),
		newBackendsCmd(v),
		newInspectCmd(v),
		newInferCmd(v),
	)
	return root
}

func openLibrary(v *viper.Viper, stderr io.Writer) (*runecoral.Library, error) {
	cfg := runecoral.Config{LibraryPath: v.GetString("library")}
	if v.GetBool("verbose") {
		cfg.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	lib, err := runecoral.Open(cfg)
	if errors.Is(err, runecoral.ErrNotBuilt) || errors.Is(err, runecoral.ErrCGONotEnabled) {
		return nil, fmt.Errorf("%w; pass --library or set RUNECORAL_LIBRARY", err)
	}
	return lib, err
}

// openModel opens the library and loads the model named by --model.
func openModel(v *viper.Viper, stderr io.Writer, modelPath string) (*runecoral.Library, *runecoral.InferenceContext, error) {
	backend, err := runecoral.ParseAccelerationBackend(v.GetString("backend"))
	if err != nil {
		return nil, nil, err
	}

	model, err := os.ReadFile(modelPath) // #nosec G304 -- model path is supplied by the operator
	if err != nil {
		return nil, nil, fmt.Errorf("read model: %w", err)
	}

	lib, err := openLibrary(v, stderr)
	if err != nil {
		return nil, nil, err
	}

	ctx, err := lib.NewInferenceContext(runecoral.MimeType(), model, backend)
	if err != nil {
		_ = lib.Close()
		return nil, nil, fmt.Errorf("load %s: %w", modelPath, err)
	}
	return lib, ctx, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wrapper and librunecoral versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "runecoral-go version: %s\nrunecoral upstream: %s (%s)\n",
				runecoral.WrapperVersion(), runecoral.UpstreamVersion(), runecoral.UpstreamDir)
			return err
		},
	}
}

func newBackendsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the acceleration backends librunecoral can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := openLibrary(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer lib.Close()

			backends, err := lib.AvailableAccelerationBackends()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), backends)
			return err
		},
	}
}

func newInspectCmd(v *viper.Viper) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a model's inputs, outputs and operator count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, ctx, err := openModel(v, cmd.ErrOrStderr(), modelPath)
			if err != nil {
				return err
			}
			defer lib.Close()
			defer ctx.Close()

			w := cmd.OutOrStdout()
			for i, d := range ctx.Inputs() {
				fmt.Fprintf(w, "input %d: %s\n", i, d)
			}
			for i, d := range ctx.Outputs() {
				fmt.Fprintf(w, "output %d: %s\n", i, d)
			}
			_, err = fmt.Fprintf(w, "operators: %d\n", ctx.OpCount())
			return err
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "TensorFlow Lite model file")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func newInferCmd(v *viper.Viper) *cobra.Command {
	var (
		modelPath string
		values    []float32
	)

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Run a float32 model on the given input values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, ctx, err := openModel(v, cmd.ErrOrStderr(), modelPath)
			if err != nil {
				return err
			}
			defer lib.Close()
			defer ctx.Close()

			inputs, err := splitInputs(ctx.Inputs(), values)
			if err != nil {
				return err
			}

			descriptors := ctx.Outputs()
			outputs := make([]runecoral.MutableTensor, len(descriptors))
			for i, d := range descriptors {
				if outputs[i], err = runecoral.NewOutputFor(d); err != nil {
					return err
				}
			}

			if err := ctx.Infer(cmd.Context(), inputs, outputs); err != nil {
				return err
			}
			return printOutputs(cmd.OutOrStdout(), outputs)
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "TensorFlow Lite model file")
	cmd.Flags().Float32SliceVar(&values, "input", nil, "input values, filling the model's inputs in order")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

// splitInputs distributes values over the model's inputs, which must all be
// float32.
func splitInputs(descriptors []runecoral.TensorDescriptor, values []float32) ([]runecoral.Tensor, error) {
	want := 0
	for i, d := range descriptors {
		if d.ElementType != runecoral.ElementFloat32 {
			return nil, fmt.Errorf("input %d is %s; only float32 inputs are supported", i, d)
		}
		want += d.NumElements()
	}
	if len(values) != want {
		return nil, fmt.Errorf("model takes %d input values, got %d", want, len(values))
	}

	inputs := make([]runecoral.Tensor, len(descriptors))
	for i, d := range descriptors {
		n := d.NumElements()
		t, err := runecoral.NewTensor(values[:n:n], d.Shape...)
		if err != nil {
			return nil, err
		}
		inputs[i] = t
		values = values[n:]
	}
	return inputs, nil
}

func printOutputs(w io.Writer, outputs []runecoral.MutableTensor) error {
	for i, out := range outputs {
		var err error
		if out.ElementType() == runecoral.ElementFloat32 {
			var data []float32
			if data, err = runecoral.TensorData[float32](out); err == nil {
				_, err = fmt.Fprintf(w, "output %d: %v\n", i, data)
			}
		} else {
			_, err = fmt.Fprintf(w, "output %d (%s): %x\n", i, out.Descriptor(), out.Bytes())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
