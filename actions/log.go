package actions

import (
	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/go-asciidag/asciidag/deps"
	"github.com/go-asciidag/asciidag/graph"
	"github.com/go-asciidag/asciidag/source"
)

// Log renders the ASCII commit graph for the local repository in the
// current directory, the command-line equivalent of `git log --graph`
// generalized to asciidag's own renderer.
func Log(c *cli.Context) error {
	ctx := c.Context
	d := deps.FromContext(ctx)

	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return errors.WithStack(err)
	}

	tipRefs := c.Args().Slice()
	if len(tipRefs) == 0 {
		head, err := repo.Head()
		if err != nil {
			return errors.WithStack(err)
		}
		tipRefs = []string{head.Name().String()}
	}

	var pathFilter *source.PathFilterOptions
	if paths := c.StringSlice("path"); len(paths) > 0 {
		pathFilter = &source.PathFilterOptions{Patterns: paths}
	}

	tips, err := source.Local(ctx, repo, tipRefs, pathFilter)
	if err != nil {
		return err
	}

	out, useColor := resolveOutput(c)
	cfg := rendererConfig(useColor, c.Bool("first-parent"))
	if useColor {
		cfg.Palette = d.Palette
	}
	renderer := graph.NewRenderer(out, cfg)
	return renderer.Render(tips)
}
