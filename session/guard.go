// ABOUTME: Mutation guard suppressing reconciliation of self-inflicted snapshots
// ABOUTME: Plain bool under single-threaded access; no lock needed
package session

// Guard is armed for the duration of a local write so the reconciler ignores
// the transient snapshot that write may produce before the authoritative one
// arrives. Access is strictly sequential (the bubbletea update loop), so a
// plain bool is sufficient.
type Guard struct {
	armed bool
}

// Run executes a guarded write. The flag is cleared when fn settles, success
// or failure, so a failed write can never leave it stuck.
func (g *Guard) Run(fn func() error) error {
	g.armed = true
	defer func() { g.armed = false }()
	return fn()
}

// Arm marks a write as outstanding. Use Run where possible; Arm/Disarm exist
// for async write flows where the write settles in a later event.
func (g *Guard) Arm() { g.armed = true }

// Disarm clears the flag once the write has settled.
func (g *Guard) Disarm() { g.armed = false }

// Armed reports whether a guarded write is outstanding.
func (g *Guard) Armed() bool { return g.armed }

// Consume reports whether the flag was set, clearing it in the same step.
// The reconciler calls this once per collection change: a guarded change is
// skipped exactly once.
func (g *Guard) Consume() bool {
	if !g.armed {
		return false
	}
	g.armed = false
	return true
}
