// Package logger builds *slog.Logger instances for formfeedback binaries and
// libraries: functional options for format, level and static attributes, a
// context handler that adds attributes carried by context.Context, and
// attribute helpers that keep key names consistent (field, fields, pass_id,
// epoch, rule, error).
//
// # Usage
//
//	log := logger.New(logger.WithEnvironment("development", "formcheck"))
//	ctx = logger.ContextWith(ctx, slog.String("document", path))
//	log.DebugContext(ctx, "validation pass",
//	    logger.PassID(pass.ID),
//	    logger.Fields(names),
//	)
//
// Libraries that accept an optional logger default to Discard so that they
// stay silent unless the host wires one in.
package logger
