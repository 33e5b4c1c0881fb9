package source

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
	"github.com/shibumi/go-pathspec"
)

// PathFilterOptions restricts a history walk the way `git log -- <path>`
// does: a commit is only interesting if its diff against a parent
// touches a file matching one of Patterns (gitignore-style).
type PathFilterOptions struct {
	Patterns []string
}

// interestingParents returns, for a commit, the hashes of the parents
// that should remain directly linked in the rendered graph. With no
// filter every real parent is interesting. With a filter, a commit
// that doesn't touch a matching path is skipped over (its own parents
// become its children's parents instead), the same simplification git
// log applies by default.
func interestingParents(commit *object.Commit, opts *PathFilterOptions) ([]plumbing.Hash, error) {
	if opts == nil || len(opts.Patterns) == 0 {
		return commit.ParentHashes, nil
	}

	var hashes []plumbing.Hash
	for _, parentHash := range commit.ParentHashes {
		hash, err := nearestMatchingAncestor(commit, parentHash, opts)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

// nearestMatchingAncestor walks from parentHash up its own first-parent
// lineage until it finds a commit whose own patch against its single
// parent touches a path matching opts, splicing out commits that don't.
// A root or merge commit ends the walk and is kept as is.
func nearestMatchingAncestor(commit *object.Commit, parentHash plumbing.Hash, opts *PathFilterOptions) (plumbing.Hash, error) {
	candidateHash := parentHash
	from := commit
	for {
		candidate, err := from.Parent(indexOf(from, candidateHash))
		if err != nil {
			return plumbing.ZeroHash, errors.WithStack(err)
		}
		if len(candidate.ParentHashes) != 1 {
			return candidate.Hash, nil
		}
		grandparent, err := candidate.Parent(0)
		if err != nil {
			return plumbing.ZeroHash, errors.WithStack(err)
		}
		touches, err := touchesMatchingPath(candidate, grandparent, opts)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if touches {
			return candidate.Hash, nil
		}
		from = candidate
		candidateHash = candidate.ParentHashes[0]
	}
}

func touchesMatchingPath(commit, parent *object.Commit, opts *PathFilterOptions) (bool, error) {
	patch, err := parent.Patch(commit)
	if err != nil {
		return false, errors.WithStack(err)
	}
	for _, fileStat := range patch.Stats() {
		matched, err := pathspec.GitIgnore(opts.Patterns, fileStat.Name)
		if err != nil {
			return false, errors.WithStack(err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
