// Package source builds graph.Node arenas out of real commit
// histories, either a local on-disk repository (via go-git) or a
// remote GitHub repository (via the REST and GraphQL APIs).
package source

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/go-asciidag/asciidag/deps"
	"github.com/go-asciidag/asciidag/graph"
)

// CommitLabel is the label type attached to every graph.Node built
// from a local repository: enough of the commit to print a
// `git log --graph`-style one-line summary.
type CommitLabel struct {
	Hash    plumbing.Hash
	Summary string
}

func (l CommitLabel) String() string {
	return fmt.Sprintf("%s %s", l.Hash.String()[:8], l.Summary)
}

// Local turns a set of local branch tips into a graph.Node arena,
// memoized by commit hash so that two branches sharing history share
// the same *graph.Node, exactly as the renderer expects. Each tip is
// resolved with repo.ResolveRevision, so short branch or tag names,
// full reference names and HEAD are all accepted.
// Options, when non-nil, restricts the walk to commits whose patch
// touches a matching path.
func Local(ctx context.Context, repo *git.Repository, tipRefs []string, opts *PathFilterOptions) ([]*graph.Node, error) {
	d := deps.FromContext(ctx)

	arena := map[plumbing.Hash]*graph.Node{}
	var build func(commit *object.Commit) (*graph.Node, error)
	build = func(commit *object.Commit) (*graph.Node, error) {
		if n, ok := arena[commit.Hash]; ok {
			return n, nil
		}
		d.DebugLog.Printf("visiting commit %s", commit.Hash)
		node := graph.NewNode(CommitLabel{Hash: commit.Hash, Summary: summary(commit.Message)})
		arena[commit.Hash] = node

		parents, err := interestingParents(commit, opts)
		if err != nil {
			return nil, err
		}
		for _, parentHash := range parents {
			parentCommit, err := repo.CommitObject(parentHash)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			parentNode, err := build(parentCommit)
			if err != nil {
				return nil, err
			}
			node.Parents = append(node.Parents, parentNode)
		}
		return node, nil
	}

	tips := make([]*graph.Node, 0, len(tipRefs))
	for _, refName := range tipRefs {
		hash, err := repo.ResolveRevision(plumbing.Revision(refName))
		if err != nil {
			return nil, errors.Wrapf(err, "resolving ref %q", refName)
		}
		commit, err := repo.CommitObject(*hash)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		node, err := build(commit)
		if err != nil {
			return nil, err
		}
		tips = append(tips, node)
	}
	return tips, nil
}

func indexOf(commit *object.Commit, hash plumbing.Hash) int {
	for i, h := range commit.ParentHashes {
		if h == hash {
			return i
		}
	}
	return 0
}

func summary(message string) string {
	for i, r := range message {
		if r == '\n' {
			return message[:i]
		}
	}
	return message
}
