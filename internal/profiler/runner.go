package profiler

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Result is the per-group outcome of a batch run.
type Result struct {
	GroupID string
	Profile *Profile
	Err     error
}

// OK reports whether a pattern was generated for the group.
func (r Result) OK() bool {
	return r.Err == nil && r.Profile != nil && r.Profile.Regex != ""
}

// Runner profiles many groups. Groups share no state, so they run in
// parallel up to the configured worker count.
type Runner struct {
	entropyLimit float64
	workers      int
	onStart      func(groupID string)
	onResult     func(Result)
	mu           sync.Mutex
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerEntropyLimit sets the entropy threshold applied to every group.
func WithRunnerEntropyLimit(limit float64) RunnerOption {
	return func(r *Runner) { r.entropyLimit = limit }
}

// WithWorkers caps how many groups are profiled at once. Values below one
// mean one.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	}
}

// WithProgress registers callbacks invoked when a group starts and when it
// finishes. Callbacks are serialized.
func WithProgress(onStart func(groupID string), onResult func(Result)) RunnerOption {
	return func(r *Runner) {
		r.onStart = onStart
		r.onResult = onResult
	}
}

// NewRunner creates a Runner with DefaultEntropyLimit and a single worker.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		entropyLimit: DefaultEntropyLimit,
		workers:      1,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run profiles every group in groups and returns one Result per group,
// ordered by group ID. A failing group does not stop the others; the only
// error returned is the context's.
func (r *Runner) Run(parent context.Context, groups map[string][]string) ([]Result, error) {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]Result, len(ids))

	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(r.workers)

	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.notifyStart(id)

			group := NewDomainGroup(id, groups[id], WithEntropyLimit(r.entropyLimit))
			profile, err := ProfileGroup(group)
			results[i] = Result{GroupID: id, Profile: profile, Err: err}

			r.notifyResult(results[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	// The errgroup context is always cancelled once Wait returns.
	return results, parent.Err()
}

func (r *Runner) notifyStart(id string) {
	if r.onStart == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onStart(id)
}

func (r *Runner) notifyResult(res Result) {
	if r.onResult == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onResult(res)
}

// Rules collects the generated pattern of every successful result, keyed by
// group ID.
func Rules(results []Result) map[string]string {
	rules := make(map[string]string)
	for _, res := range results {
		if res.OK() {
			rules[res.GroupID] = res.Profile.Regex
		}
	}
	return rules
}
