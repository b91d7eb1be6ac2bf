package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formfeedback/pkg/feedback"
	"github.com/dmitrymomot/formfeedback/pkg/formspec"
	"github.com/dmitrymomot/formfeedback/pkg/logger"
)

var errFormsInvalid = errors.New("one or more forms are invalid")

type validateOptions struct {
	output  string
	jobs    int
	timeout time.Duration
	fields  []string
	set     []string
}

func newValidateCmd(a *app) *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Run a validation pass over each document and report shown feedback",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "text" && opts.output != "json" {
				return fmt.Errorf("unknown output %q: must be text or json", opts.output)
			}
			values, err := parseAssignments(opts.set)
			if err != nil {
				return err
			}

			reports, err := a.validateAll(cmd.Context(), args, values, opts)
			if err != nil {
				return err
			}

			if opts.output == "json" {
				err = writeJSON(cmd.OutOrStdout(), reports)
			} else {
				err = writeText(cmd.OutOrStdout(), reports)
			}
			if err != nil {
				return err
			}

			for _, r := range reports {
				if !r.Valid {
					return errFormsInvalid
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	f.IntVarP(&opts.jobs, "jobs", "j", 4, "documents validated concurrently")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "maximum wait for async checks per document")
	f.StringSliceVar(&opts.fields, "field", nil, "validate only these fields")
	f.StringArrayVar(&opts.set, "set", nil, "override a field value (name=value); repeatable")
	return cmd
}

func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", p)
		}
		out[name] = value
	}
	return out, nil
}

// validateAll checks documents concurrently; reports keep argument order.
func (a *app) validateAll(ctx context.Context, paths []string, values map[string]string, opts validateOptions) ([]report, error) {
	reports := make([]report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			dctx := logger.ContextWith(ctx, slog.String("document", path))
			r, err := a.validateDocument(dctx, path, values, opts)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				a.log.WarnContext(dctx, "document failed", logger.Error(err))
				r = failedReport(path, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (a *app) validateDocument(ctx context.Context, path string, values map[string]string, opts validateOptions) (report, error) {
	doc, err := formspec.Load(path)
	if err != nil {
		return report{}, err
	}
	for name, value := range values {
		if err := doc.SetValue(name, value); err != nil {
			a.log.DebugContext(ctx, "value override skipped", logger.Field(name), logger.Error(err))
		}
	}

	engine, err := feedback.NewFromConfig(a.cfg.Feedback, feedback.WithLogger(a.log))
	if err != nil {
		return report{}, err
	}
	defer engine.Close()

	if err := doc.Apply(engine); err != nil {
		return report{}, err
	}

	pass, err := engine.Validate(ctx, doc, opts.fields...)
	if pass == nil {
		return report{}, err
	}
	if err != nil {
		a.log.InfoContext(ctx, "validation pass reported errors", logger.PassID(pass.ID), logger.Error(err))
	}

	waitCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	if err := pass.Wait(waitCtx); err != nil {
		if ctx.Err() != nil {
			return report{}, ctx.Err()
		}
		a.log.InfoContext(ctx, "async checks did not settle cleanly", logger.PassID(pass.ID), logger.Error(err))
	}

	return newReport(path, doc.Form, pass.ID, engine.Fields()), nil
}
