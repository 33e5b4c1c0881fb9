package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	gitHTTP "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/google/go-github/v32/github"
	"github.com/pkg/errors"
)

// GitHubRepo composes a local clone of a repository with the GitHub
// API clients needed to resolve its remote branches, adapted from the
// teacher's own gitHubRepo wrapper with the review-specific fields
// trimmed.
type GitHubRepo struct {
	client  *github.Client
	gitRepo *git.Repository
	gitAuth transport.AuthMethod
	repo    *github.Repository
}

// OpenGitHubRepo opens the repository in dir (DetectDotGit) and looks
// up its GitHub metadata using authToken.
func OpenGitHubRepo(ctx context.Context, dir, authToken string) (*GitHubRepo, error) {
	httpClient := &http.Client{Transport: &AuthTransport{Token: authToken}}
	gitHubClient := github.NewClient(httpClient)

	gitRepo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	proto, owner, repoName, err := parseRemote(gitRepo)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var gitAuth transport.AuthMethod
	if proto == "https" {
		gitAuth = &gitHTTP.BasicAuth{Username: authToken}
	}
	ghRepo, _, err := gitHubClient.Repositories.Get(ctx, owner, repoName)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &GitHubRepo{
		client:  gitHubClient,
		gitRepo: gitRepo,
		gitAuth: gitAuth,
		repo:    ghRepo,
	}, nil
}

func (r *GitHubRepo) Client() *github.Client        { return r.client }
func (r *GitHubRepo) GitRepo() *git.Repository      { return r.gitRepo }
func (r *GitHubRepo) GitAuth() transport.AuthMethod { return r.gitAuth }
func (r *GitHubRepo) Owner() string                 { return r.repo.Owner.GetLogin() }
func (r *GitHubRepo) Name() string                  { return r.repo.GetName() }
func (r *GitHubRepo) DefaultBranch() string         { return r.repo.GetDefaultBranch() }

// AuthTransport adds a GitHub personal-access-token Authorization
// header to every outgoing request; it backs both the REST client used
// by OpenGitHubRepo and any caller-built GraphQL client.
type AuthTransport struct {
	http.Transport
	Token string
}

func (t *AuthTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.Token != "" {
		r.Header.Add("Authorization", "token "+t.Token)
	}
	return t.Transport.RoundTrip(r)
}

func parseRemote(repo *git.Repository) (proto, owner, repoName string, err error) {
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", "", "", err
	}
	remoteURL := remote.Config().URLs[0]
	path := ""
	switch {
	case strings.HasPrefix(remoteURL, "git@github.com:"):
		path = strings.TrimPrefix(remoteURL, "git@github.com:")
		proto = "ssh"
	case strings.HasPrefix(remoteURL, "https://github.com/"):
		path = strings.TrimPrefix(remoteURL, "https://github.com/")
		proto = "https"
	}
	pathFragments := strings.SplitN(path, "/", 2)
	if len(pathFragments) != 2 || proto == "" {
		return "", "", "", fmt.Errorf("remote url not well formed: %v", path)
	}
	owner = pathFragments[0]
	repoName = strings.TrimSuffix(pathFragments[1], ".git")
	return proto, owner, repoName, nil
}
