// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// getCommand performs an authenticated GET and prints the decoded JSON
func getCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "GET an API path and print the JSON response",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Get,
	}
}

// deleteCommand performs an authenticated DELETE
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"del", "rm"},
		Usage:   "DELETE an API path",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.Delete,
	}
}

// postCommand submits a multipart form
func postCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "POST a multipart form to an API path",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "field",
				Aliases: []string{"F"},
				Usage:   "Form field as name=value (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "file",
				Usage: "File upload as name=path (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Post,
	}
}

// listCommand aggregates a list resource and renders it
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Fetch an index resource and every item it names, then render the sorted list",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "index-path"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Template id for html output (default: derived from the index path, e.g. #tmpl-topics)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: html, json, csv, markdown, txt, yaml",
				Value:   "html",
			},
			&cli.StringSliceFlag{
				Name:  "column",
				Usage: "Column for csv and markdown output (repeatable, dot paths allowed)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Store the rendered output as a snapshot",
			},
		},
		Action: r.List,
	}
}

// exportCommand aggregates several lists into a directory
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export several list resources to files",
		ArgsUsage: "<index-path>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: html, json, csv, markdown, txt, yaml",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory (default: kmx_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Lists exported concurrently",
				Value: 3,
			},
		},
		Action: r.Export,
	}
}

// browseCommand returns the TUI command for interactive list browsing.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse a list resource interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "index-path", Value: "/api/topics.json"},
		},
		Action: r.Browse,
	}
}

// serveCommand starts the list preview server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve rendered lists over HTTP for browser preview",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to server.addr from config)",
			},
		},
		Action: r.Serve,
	}
}

// templatesCommand lists templates or prints one
func templatesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List template ids, or print the source of one",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Templates,
	}
}

// historyCommand manages stored snapshots
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect rendered list snapshots",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored snapshots, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "index",
						Usage: "Only snapshots of this index path",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Only snapshots in this format",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of snapshots",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Print a snapshot by id or sequence number",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "Print only the stored body",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:  "delete",
				Usage: "Delete a snapshot by id or sequence number",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
				},
				Action: r.HistoryDelete,
			},
		},
	}
}

// sizeCommand humanizes byte counts
func sizeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "size",
		Usage:     "Humanize byte counts (1024 based)",
		ArgsUsage: "<bytes>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "html",
				Usage: "Print the template helper markup",
			},
		},
		Action: r.Size,
	}
}

// paramCommand reads a query-string parameter
func paramCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "param",
		Usage: "Print a query-string parameter of a URL as JSON (null when absent)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
			&cli.StringArg{Name: "url"},
		},
		Action: r.Param,
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
