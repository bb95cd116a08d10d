package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/kmx/internal/services"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/urfave/cli/v3"
)

func requirePath(cmd *cli.Command, name string) (string, error) {
	path := cmd.StringArg(name)
	if path == "" {
		return "", fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, name)
	}
	return path, nil
}

// Get fetches a path and prints the decoded JSON body.
func (r *Runner) Get(ctx context.Context, cmd *cli.Command) error {
	path, err := requirePath(cmd, "path")
	if err != nil {
		return err
	}

	r.logger.Debug("GET request", "path", path)

	var data any
	if err := r.client.Get(ctx, path, &data); err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return r.writeJSON(data, cmd.Bool("pretty"))
}

// Delete removes the resource at path.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	path, err := requirePath(cmd, "path")
	if err != nil {
		return err
	}

	r.logger.Debug("DELETE request", "path", path)

	var data any
	if err := r.client.Delete(ctx, path, &data); err != nil {
		return err
	}
	if data != nil {
		return r.writeJSON(data, true)
	}
	return r.writePlain("✓ Deleted %s\n", path)
}

// Post submits --field and --file values as a multipart form.
func (r *Runner) Post(ctx context.Context, cmd *cli.Command) error {
	path, err := requirePath(cmd, "path")
	if err != nil {
		return err
	}

	form, err := services.ParseForm(cmd.StringSlice("field"), cmd.StringSlice("file"))
	if err != nil {
		return err
	}

	r.logger.Debug("POST request", "path", path, "parts", form.Len())

	var data any
	if err := r.client.PostForm(ctx, path, form, &data); err != nil {
		return err
	}
	if data == nil {
		return r.writePlain("✓ Posted %s\n", path)
	}
	return r.writeJSON(data, cmd.Bool("pretty"))
}
