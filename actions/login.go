package actions

import (
	"github.com/urfave/cli/v2"

	"github.com/go-asciidag/asciidag/auth"
	"github.com/go-asciidag/asciidag/deps"
)

// Login runs GitHub's device authorization flow and saves the
// resulting token to the platform keyring for use by the github
// command.
func Login(c *cli.Context) error {
	d := deps.FromContext(c.Context)

	if d.Auth.Token() != "" {
		ok, err := confirmLogin("already logged in; re-authenticate anyway?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	a, err := auth.Prompt()
	if err != nil {
		return err
	}
	if err := a.SaveToKeyRing(); err != nil {
		return err
	}
	d.InfoLog.Println("logged in")
	return nil
}
