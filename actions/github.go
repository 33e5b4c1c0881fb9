package actions

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/shurcooL/graphql"
	"github.com/urfave/cli/v2"

	"github.com/go-asciidag/asciidag/deps"
	"github.com/go-asciidag/asciidag/graph"
	"github.com/go-asciidag/asciidag/source"
)

// GitHub renders the ASCII commit graph for a branch of the GitHub
// remote configured for the current repository, authenticating with
// the token saved by Login.
func GitHub(c *cli.Context) error {
	ctx := c.Context
	d := deps.FromContext(ctx)

	token := d.Auth.Token()
	if token == "" {
		return errors.New("not logged in; run `asciidag login` first")
	}

	repo, err := source.OpenGitHubRepo(ctx, ".", token)
	if err != nil {
		return err
	}

	branch := c.Args().First()
	if branch == "" {
		branches, err := source.ListBranches(ctx, repo)
		if err != nil {
			return err
		}
		idx, err := selectTip("select a branch", branches)
		if err != nil {
			return err
		}
		branch = branches[idx]
	}

	graphqlClient := graphql.NewClient("https://api.github.com/graphql", &http.Client{
		Transport: &source.AuthTransport{Token: token},
	})
	pageSize := c.Int("depth")
	if pageSize <= 0 {
		pageSize = 50
	}
	tips, err := source.RemoteHistory(ctx, graphqlClient, repo.Owner(), repo.Name(), branch, pageSize)
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
