package source

import (
	"context"
	"fmt"

	"github.com/google/go-github/v32/github"
	"github.com/pkg/errors"
	"github.com/shurcooL/graphql"

	"github.com/go-asciidag/asciidag/deps"
	"github.com/go-asciidag/asciidag/graph"
)

// RemoteCommitLabel labels a graph.Node built from the GitHub GraphQL
// API: no working tree is ever fetched, so only what the API returns
// is available.
type RemoteCommitLabel struct {
	OID             string
	MessageHeadline string
}

func (l RemoteCommitLabel) String() string {
	oid := l.OID
	if len(oid) > 8 {
		oid = oid[:8]
	}
	return fmt.Sprintf("%s %s", oid, l.MessageHeadline)
}

// ListBranches lists a GitHub repository's branches using the REST
// API, paginating until exhausted.
func ListBranches(ctx context.Context, repo *GitHubRepo) ([]string, error) {
	var names []string
	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		branches, resp, err := repo.Client().Repositories.ListBranches(ctx, repo.Owner(), repo.Name(), opts)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		for _, b := range branches {
			names = append(names, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

type commitHistoryQuery struct {
	Repository struct {
		Ref struct {
			Target struct {
				Commit struct {
					History struct {
						Nodes []remoteCommitNode
					} `graphql:"history(first: $pageSize)"`
				} `graphql:"... on Commit"`
			} `graphql:"target"`
		} `graphql:"ref(qualifiedName: $branch)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

type remoteCommitNode struct {
	Oid             string
	MessageHeadline string
	Parents         struct {
		Nodes []struct {
			Oid string
		}
	} `graphql:"parents(first: 10)"`
}

// RemoteHistory queries the last pageSize commits reachable from
// branch, building a graph.Node arena keyed by commit OID the same
// way Local keys by plumbing.Hash.
func RemoteHistory(ctx context.Context, client *graphql.Client, owner, name, branch string, pageSize int) ([]*graph.Node, error) {
	d := deps.FromContext(ctx)
	d.DebugLog.Printf("fetching history for %s/%s@%s", owner, name, branch)

	var query commitHistoryQuery
	err := client.Query(ctx, &query, map[string]interface{}{
		"owner":    graphql.String(owner),
		"name":     graphql.String(name),
		"branch":   graphql.String(branch),
		"pageSize": graphql.Int(pageSize),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	nodesByOID := map[string]remoteCommitNode{}
	for _, n := range query.Repository.Ref.Target.Commit.History.Nodes {
		nodesByOID[n.Oid] = n
	}

	arena := map[string]*graph.Node{}
	var build func(oid string) *graph.Node
	build = func(oid string) *graph.Node {
		if n, ok := arena[oid]; ok {
			return n
		}
		raw, ok := nodesByOID[oid]
		label := RemoteCommitLabel{OID: oid}
		node := graph.NewNode(label)
		arena[oid] = node
		if !ok {
			// Parent lies outside the page we fetched; render it as a
			// leaf with only its OID known.
			return node
		}
		node.Label = RemoteCommitLabel{OID: oid, MessageHeadline: raw.MessageHeadline}
		for _, p := range raw.Parents.Nodes {
			node.Parents = append(node.Parents, build(p.Oid))
		}
		return node
	}

	history := query.Repository.Ref.Target.Commit.History.Nodes
	if len(history) == 0 {
		return nil, nil
	}
	return []*graph.Node{build(history[0].Oid)}, nil
}
