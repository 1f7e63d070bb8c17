package singleton

import "github.com/simforge/server/internal/core/typegraph"

// FinalParentOf resolves the final singleton class for c: the topmost class
// in c's ancestry (root excluded) whose terminal predicate is true. Searching
// top-down lets an intermediate base that opted in claim the bucket for its
// whole subtree, so deep subclass chains all funnel into one slot.
//
// Returns nil when no ancestor opts in. That is an authoring error in the
// class hierarchy, not a runtime data error; callers surface it loudly.
//
// Resolution depends only on the class graph, never on instance state, so it
// is stable for a given class for the lifetime of the graph.
func FinalParentOf(c *typegraph.Class) *typegraph.Class {
	chain := c.Ancestry()
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].IsFinalParent() {
			return chain[i]
		}
	}
	return nil
}
