// Package logging provides a minimal logging facade for the runecoral wrapper.
//
// The Logger interface wraps the context-aware subset of log/slog. The
// default implementation forwards to a *slog.Logger:
//
//	logger := logging.New(nil) // slog.Default()
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	logger = logging.New(slog.New(handler))
//
// Nop returns a Logger that drops every record; it is what the library uses
// when no logger is configured.
//
// # Attributes
//
// Models and tensor buffers can be large, so the wrapper never logs their
// contents. ModelSize, Shape and Shapes produce compact attributes instead:
//
//	logger.Debug(ctx, "created inference context",
//	    logging.ModelSize(model),
//	    logging.Shapes("inputs", inputShapes),
//	)
package logging
