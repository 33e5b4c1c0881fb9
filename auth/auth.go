// Package auth implements GitHub's OAuth device flow and persists the
// resulting token in the platform keyring, the way the teacher's own
// auth package persists its proprietary API token.
package auth

import (
	"fmt"
	"net/http"

	"github.com/cli/oauth/device"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "asciidag"
	keyringUser    = "github-token"

	// gitHubAppClientID identifies asciidag's own OAuth App
	// registration, used only to request device codes; it carries no
	// secret.
	gitHubAppClientID = "Iv1.b4d3f4f6a9c1e2d0"
)

// Auth holds a GitHub access token obtained via the device flow.
type Auth struct {
	token string
}

func (a *Auth) Token() string {
	if a == nil {
		return ""
	}
	return a.token
}

// LoadFromKeyRing returns the persisted token, or a nil Auth if none
// has been saved yet.
func LoadFromKeyRing() (*Auth, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	return &Auth{token: token}, nil
}

// Prompt runs the interactive device-code flow: it prints a one-time
// code, opens github.com in the user's browser, and polls until the
// user authorizes the device.
func Prompt() (*Auth, error) {
	httpClient := http.DefaultClient
	code, err := device.RequestCode(
		httpClient,
		"https://github.com/login/device/code",
		gitHubAppClientID,
		[]string{"repo"},
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	fmt.Printf("\033[33m!\033[m First copy your one-time code: \033[1m%s\033[m\n", code.UserCode)
	fmt.Println("Press Enter to open github.com in your browser...")
	fmt.Scanln()
	if err := browser.OpenURL(code.VerificationURI); err != nil {
		return nil, errors.WithStack(err)
	}
	accessToken, err := device.PollToken(
		httpClient,
		"https://github.com/login/oauth/access_token",
		gitHubAppClientID,
		code,
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Auth{token: accessToken.Token}, nil
}

// SaveToKeyRing persists the token for later invocations.
func (a *Auth) SaveToKeyRing() error {
	return errors.WithStack(keyring.Set(keyringService, keyringUser, a.token))
}
