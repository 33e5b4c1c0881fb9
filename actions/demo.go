package actions

import (
	"github.com/urfave/cli/v2"

	"github.com/go-asciidag/asciidag/deps"
	"github.com/go-asciidag/asciidag/graph"
)

// Demo renders a fixed, synthetic family tree so users can see the
// renderer's octopus-merge and diamond-collapse handling without a
// real repository on hand. The shape is the same one the original
// asciidag package shipped as its own demo script.
func Demo(c *cli.Context) error {
	d := deps.FromContext(c.Context)

	root := graph.NewNode("root")
	grandpa := graph.NewNode("grandpa", root)
	greatgrandma := graph.NewNode("greatgrandma")
	grandma := graph.NewNode("grandma", greatgrandma)
	mom := graph.NewNode("mom", grandma, grandpa)
	bill := graph.NewNode("bill",
		graph.NewNode("martin"),
		graph.NewNode("james"),
		graph.NewNode("paul"),
		graph.NewNode("jon"),
	)
	dad := graph.NewNode("dad", bill)
	stepdad := graph.NewNode("stepdad", grandpa)
	child := graph.NewNode("child", mom, dad, stepdad)
	foo := graph.NewNode("foo", graph.NewNode("bar"))

	out, useColor := resolveOutput(c)
	cfg := rendererConfig(useColor, false)
	if useColor {
		cfg.Palette = d.Palette
	}
	renderer := graph.NewRenderer(out, cfg)
	return renderer.Render([]*graph.Node{child, foo})
}
