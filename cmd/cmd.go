// submodule cmd contains command definitions
package main

import (
	"fmt"

	"github.com/desertthunder/songtabs/internal/formatter"
	"github.com/desertthunder/songtabs/internal/tasks"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func outputFlags(prettyDefault bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: prettyDefault,
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Songs per page",
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "Number of songs to skip",
		},
		&cli.BoolFlag{
			Name:  "csv",
			Usage: "Output CSV (id, title, artist)",
		},
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Write a config.toml from the built-in template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles Google sign-in and the stored session
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with Google and store the backend session",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the browser callback",
						Value: defaultOAuthTimeout,
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the sign-in URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the signed-in user",
				Flags:  outputFlags(true),
				Action: r.AuthStatus,
			},
		},
	}
}

// songsCommand lists, searches and exports the user's songs
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Browse and export your songs",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List one page of your songs",
				Flags:   append(pageFlags(), outputFlags(false)...),
				Action:  r.SongsList,
			},
			{
				Name:  "search",
				Usage: "Search your songs by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  append(pageFlags(), outputFlags(false)...),
				Action: r.SongsSearch,
			},
			{
				Name:  "export",
				Usage: "Export every song's tab and videos to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Export format (%s)", formatter.FormatNames()),
						Value:   string(formatter.FormatText),
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: songtabs_export_<timestamp>)",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   fmt.Sprintf("Concurrent downloads (max %d)", tasks.MaxWorkers),
						Value:   tasks.DefaultWorkers,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: tasks.DefaultRateLimit,
					},
					&cli.IntFlag{
						Name:    "transpose",
						Aliases: []string{"t"},
						Usage:   "Semitones to transpose every tab by",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Only export songs matching a search",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Always fetch tabs from the backend",
					},
				},
				Action: r.SongsExport,
			},
		},
	}
}

// tabCommand prints a single tab
func tabCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tab",
		Usage: "Show tabs",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print a song's tab, optionally transposed",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "transpose",
						Aliases: []string{"t"},
						Usage:   "Semitones to transpose by",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Render with song details and videos (%s)", formatter.FormatNames()),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Always fetch the tab from the backend",
					},
				},
				Action: r.TabShow,
			},
		},
	}
}

// transposeCommand transposes local tab text
func transposeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transpose",
		Usage: "Transpose the chords in a tab file, or stdin",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "semitones",
				Aliases: []string{"s"},
				Usage:   "Semitones to transpose by (negative for down)",
			},
		},
		Action: r.Transpose,
	}
}

// videosCommand lists a song's reference videos
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "videos",
		Usage: "List a song's reference videos",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: append(outputFlags(false),
			&cli.IntFlag{
				Name:  "open",
				Usage: "Open the Nth video in the browser",
			},
		),
		Action: r.Videos,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive song browser",
		Action:  r.TUI,
	}
}

// apiCommand handles direct backend calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the tab backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the response",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// cacheCommand inspects and clears the local tab cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local tab cache",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show how many tabs are cached",
				Action: r.CacheStatus,
			},
			{
				Name:  "purge",
				Usage: "Remove cached tabs and expired sessions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Only remove the tab for this song ID",
					},
				},
				Action: r.CachePurge,
			},
		},
	}
}
