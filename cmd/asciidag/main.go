package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/go-asciidag/asciidag/actions"
	"github.com/go-asciidag/asciidag/auth"
	"github.com/go-asciidag/asciidag/deps"
	"github.com/go-asciidag/asciidag/graph"
)

func main() {
	colorFlag := &cli.StringFlag{
		Name:  "color",
		Usage: "colorize output: auto, always, or never",
		Value: "auto",
	}
	firstParentFlag := &cli.BoolFlag{
		Name:  "first-parent",
		Usage: "follow only the first parent of merge commits",
	}

	app := &cli.App{
		Version: "0.1.0",
		Usage:   "render commit history as an ASCII DAG",
		Commands: []*cli.Command{
			{
				Name:      "log",
				Usage:     "render the local repository's commit graph",
				ArgsUsage: "[ref...]",
				Flags: []cli.Flag{
					colorFlag,
					firstParentFlag,
					&cli.StringSliceFlag{
						Name:  "path",
						Usage: "only follow history touching this path (repeatable)",
					},
				},
				Action: actions.Log,
			},
			{
				Name:      "github",
				Usage:     "render a branch's commit graph from the GitHub API",
				ArgsUsage: "[branch]",
				Flags: []cli.Flag{
					colorFlag,
					firstParentFlag,
					&cli.IntFlag{
						Name:  "depth",
						Usage: "number of commits to fetch",
						Value: 50,
					},
				},
				Action: actions.GitHub,
			},
			{
				Name:   "login",
				Usage:  "authorize GitHub access",
				Action: actions.Login,
			},
			{
				Name:   "demo",
				Usage:  "render a synthetic graph demonstrating octopus merges and collapses",
				Flags:  []cli.Flag{colorFlag},
				Action: actions.Demo,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show verbose debug output",
			},
		},
		Before: func(c *cli.Context) error {
			d, err := makeDeps(c)
			if err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				// Don't go through ExitErrHandler because it requires deps.
				os.Exit(1)
			}
			c.Context = deps.ContextWithDeps(c.Context, d)
			return nil
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			d := deps.FromContext(c.Context)
			if err != nil {
				d.ErrorLog.Println(err.Error())
				var stackTracer interface {
					StackTrace() errors.StackTrace
				}
				if errors.As(err, &stackTracer) {
					d.DebugLog.Printf("%+v", stackTracer.StackTrace())
				}
				os.Exit(1)
			}
		},
	}
	_ = app.Run(os.Args)
}

func makeDeps(c *cli.Context) (*deps.Deps, error) {
	debugWriter := ioutil.Discard
	if c.Bool("verbose") {
		debugWriter = os.Stdout
	}
	a, err := auth.LoadFromKeyRing()
	if err != nil {
		return nil, errors.Wrap(err, "error accessing keychain")
	}
	return &deps.Deps{
		ErrorLog: log.New(os.Stderr, "", 0),
		InfoLog:  log.New(os.Stdout, "", 0),
		DebugLog: log.New(debugWriter, "[debug] ", log.Ldate|log.Lmicroseconds),
		Auth:     a,
		Palette:  graph.DefaultPalette(),
	}, nil
}
