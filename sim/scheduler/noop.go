// Package scheduler provides reference Scheduler implementations: a no-op
// baseline and a naive round-robin heuristic, both built against the
// kernel's sim.Scheduler contract.
package scheduler

import "github.com/dpdp-sim/dpdp-sim/sim"

// NoopScheduler never proposes a route. It exists as the honest baseline
// every real scheduler should beat, selectable from the CLI. The kernel's
// own look-ahead fork uses the separate, package-local sim.noopScheduler,
// since package sim cannot import this package.
type NoopScheduler struct{}

func (NoopScheduler) Schedule(sim.SchedulerArgs) sim.Plan { return nil }
