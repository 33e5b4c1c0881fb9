package deps

import (
	"context"
	"io/ioutil"
	"log"

	"github.com/go-asciidag/asciidag/auth"
)

type depsKeyType int

var depsKey depsKeyType

// Deps bundles the dependencies every action needs, threaded through
// context.Context the same way the CLI's Before hook wires up logging
// and credentials before any command body runs.
type Deps struct {
	ErrorLog *log.Logger
	InfoLog  *log.Logger
	DebugLog *log.Logger
	*auth.Auth

	// UseColor is not filled in by the CLI's Before hook and stays
	// false there; each action resolves its own --color flag with
	// resolveOutput instead.
	UseColor bool
	// Palette is the column palette actions hand to graph.Config when
	// their resolved --color setting enables color.
	Palette []string
}

func ContextWithDeps(ctx context.Context, deps *Deps) context.Context {
	return context.WithValue(ctx, depsKey, deps)
}

// discardLogger backs any Deps obtained outside the CLI's Before hook,
// so a caller that forgets to wire up logging gets a no-op logger
// instead of a nil-pointer panic on first use.
var discardLogger = log.New(ioutil.Discard, "", 0)

func FromContext(ctx context.Context) *Deps {
	d, _ := ctx.Value(depsKey).(*Deps)
	if d == nil {
		d = &Deps{}
	}
	if d.ErrorLog == nil {
		d.ErrorLog = discardLogger
	}
	if d.InfoLog == nil {
		d.InfoLog = discardLogger
	}
	if d.DebugLog == nil {
		d.DebugLog = discardLogger
	}
	return d
}
