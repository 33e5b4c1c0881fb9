package actions

import (
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/go-asciidag/asciidag/graph"
)

// resolveOutput interprets the --color flag the way git does ("auto"
// enables color only when stdout is a real terminal) and returns a
// writer that renders ANSI sequences correctly on Windows consoles
// when color is on.
func resolveOutput(c *cli.Context) (out io.Writer, useColor bool) {
	switch c.String("color") {
	case "always":
		useColor = true
	case "never":
		useColor = false
	default:
		useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
	if useColor {
		return colorable.NewColorableStdout(), true
	}
	return colorable.NewNonColorable(os.Stdout), false
}

// selectTip prompts the user to choose one of several tips when a
// command's arguments don't name exactly one, the same interactive
// pattern the teacher's switch command uses for branch selection.
func selectTip(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to select from")
	}
	if len(options) == 1 {
		return 0, nil
	}
	answer := survey.OptionAnswer{}
	err := survey.AskOne(&survey.Select{Message: prompt, Options: options}, &answer)
	if errors.Is(err, terminal.InterruptErr) {
		return 0, errors.New("selection cancelled")
	}
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return answer.Index, nil
}

// confirmLogin asks for confirmation before kicking off the device
// flow, mirroring the teacher's preference for survey over bare
// fmt.Scanln prompts.
func confirmLogin(prompt string) (bool, error) {
	confirmed := false
	err := survey.AskOne(&survey.Confirm{Message: prompt, Default: true}, &confirmed)
	if errors.Is(err, terminal.InterruptErr) {
		return false, nil
	}
	if err != nil {
		return false, errors.WithStack(err)
	}
	return confirmed, nil
}

func rendererConfig(useColor bool, firstParentOnly bool) graph.Config {
	return graph.Config{
		UseColor:        useColor,
		FirstParentOnly: firstParentOnly,
	}
}
