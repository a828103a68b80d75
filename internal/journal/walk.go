package journal

import (
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of converting one eligible path.
type Result[T any] struct {
	Path  string
	Value T
	Err   error
}

// Walk traverses the tree rooted at root, applies the eligibility
// filter, and invokes convert on every surviving path using a worker
// pool sized to the host's CPU count. It blocks until every dispatched
// conversion has reported and returns one Result per eligible path.
//
// Results are unordered: concurrent scheduling decides arrival order,
// so callers must treat the returned slice as a set. convert must be
// safe to call concurrently.
func Walk[T any](root string, convert func(path string) (T, error)) []Result[T] {
	results := make(chan Result[T])
	collected := make(chan []Result[T])

	go func() {
		var out []Result[T]
		for r := range results {
			out = append(out, r)
		}
		collected <- out
	}()

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	walkTree(root, func(path string) {
		g.Go(func() error {
			v, err := convert(path)
			results <- Result[T]{Path: path, Value: v, Err: err}
			return nil
		})
	})

	// Every worker has sent before Wait returns, so closing here can
	// never race a send. A send after close is a broken invariant and
	// panics rather than dropping a result.
	_ = g.Wait()
	close(results)

	return <-collected
}

// walkTree recursively visits eligible files under path. Symbolic links
// are followed, including directory links; there is no cycle detection,
// so a link cycle on disk recurses without bound. Unreadable directories
// and entries that fail to stat are skipped silently.
func walkTree(path string, visit func(path string)) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if !info.IsDir() {
		if IsEligible(path) {
			visit(path)
		}
		return
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return
	}
	for _, de := range entries {
		walkTree(filepath.Join(path, de.Name()), visit)
	}
}
