// Package statemachine provides a small thread-safe finite state machine
// for modeling one-directional lifecycles (created → running → stopped and
// the like) without hand-rolled flag juggling.
//
// States and events are plain strings; transitions may carry an optional
// guard and an action executed after the state change:
//
//	const (
//		Running      statemachine.State = "running"
//		ShuttingDown statemachine.State = "shutting_down"
//		Terminated   statemachine.State = "terminated"
//	)
//
//	m := statemachine.New(Running)
//	_ = m.AddTransition(Running, ShuttingDown, "shutdown")
//	_ = m.AddTransition(ShuttingDown, Terminated, "drained")
//
//	if _, err := m.Fire("shutdown"); err != nil {
//		// already shutting down or terminated
//	}
//
// Fire is atomic: concurrent callers racing to fire the same event see
// exactly one success; the rest receive ErrNoTransition. This makes the
// machine a convenient idempotency gate for shutdown paths.
package statemachine
