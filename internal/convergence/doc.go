// Package convergence pairs provider state fetches with the predicates that
// decide when an asynchronous operation has finished.
//
// Each constructor returns a [Policy] bound to one operation kind; its
// Request method yields a poll.Request ready for poll.Until:
//
//	p := convergence.InstanceRunning(client, "i-123")
//	out := poll.Until(ctx, p.Request(), poll.WithName(p.Name))
package convergence
