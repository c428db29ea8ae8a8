package graph

// Edge detection: turning a continuous 0/1 level into a one-shot event.
//
// Trigger-typed sockets carry levels (Threshold emits high for as long as
// its condition holds). Sinks that must act once per condition, such as
// event emission and audio hits, pass their resolved trigger level through
// risingEdge, which fires exactly on the low→high transition, refuses to
// re-fire while the level stays high, and re-arms when it drops.
//
// The previous level is persisted per (entity, consumer node) in the state
// store under a derived key, so detection state follows the same lifecycle
// as all other entity state: lazily created, dropped on entity release,
// cleared by reset.

// edgeKeySuffix derives the state-store node key holding a consumer's
// previous trigger level. '\x00' cannot appear in authored node ids, so
// derived keys never collide with node state.
const edgeKeySuffix = "\x00edge"

// risingEdge reports whether the consumer should fire for the given level,
// updating the stored previous level.
func (tc *tickContext) risingEdge(consumerNodeID string, high bool) bool {
	key := consumerNodeID + edgeKeySuffix

	prev, _ := tc.eng.state.Get(tc.EntityID, key)
	wasHigh := prev >= 1

	if high {
		if !wasHigh {
			tc.eng.state.Set(tc.EntityID, key, 1)
			return true
		}
		return false
	}

	if wasHigh {
		tc.eng.state.Set(tc.EntityID, key, 0)
	}
	return false
}
