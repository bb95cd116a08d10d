package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/kmx/internal/formatter"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Templates lists the registered template ids, or prints the source of the template given as an argument.
func (r *Runner) Templates(ctx context.Context, cmd *cli.Command) error {
	if id := cmd.StringArg("id"); id != "" {
		src, err := r.renderer.Element(id)
		if err != nil {
			return err
		}
		return r.writePlain("%s", src)
	}

	for _, id := range r.renderer.IDs() {
		if err := r.writePlain("%s\n", id); err != nil {
			return err
		}
	}
	return nil
}

// Size prints each byte count argument in human-readable form.
func (r *Runner) Size(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one byte count is required", shared.ErrMissingArgument)
	}

	for _, arg := range args {
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", shared.ErrInvalidArgument, arg)
		}

		if cmd.Bool("html") {
			markup, err := formatter.HumanFileSizeHTML(n)
			if err != nil {
				return err
			}
			r.writePlain("%s\n", markup)
			continue
		}
		r.writePlain("%s\t%s\n", arg, shared.HumanFileSize(n))
	}
	return nil
}

// Param prints a query-string parameter as JSON: null when absent, "" when present without a value.
func (r *Runner) Param(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrMissingArgument)
	}
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: url is required", shared.ErrMissingArgument)
	}

	value, ok, err := shared.ParameterByName(name, rawURL)
	if err != nil {
		return err
	}
	if !ok {
		return r.writeJSON(nil, false)
	}
	return r.writeJSON(value, false)
}
