package systems

import "github.com/pthm-cable/warren/components"

// Intent is one animal's wish to move from From to To. The priority
// counters are copied from the actor when the intent is collected.
type Intent struct {
	Slot           int32 // population index of the actor
	From           components.Position
	To             components.Position
	SinceReproduce int
	SinceEat       int // predators only
}

// Stays reports whether the intent targets the actor's own cell.
func (in Intent) Stays() bool {
	return in.From == in.To
}

// Beats reports whether a wins the destination over b.
//
// Order: more generations since reproduction, then (predators) fewer
// generations since eating, then the lower origin in row-major order.
// Origins are unique in a snapshot, so the order is total.
func Beats(kind components.Kind, a, b Intent) bool {
	if a.SinceReproduce != b.SinceReproduce {
		return a.SinceReproduce > b.SinceReproduce
	}
	if kind == components.KindPredator && a.SinceEat != b.SinceEat {
		return a.SinceEat < b.SinceEat
	}
	return a.From.Before(b.From)
}

// Resolve picks the winner among intents sharing a destination and
// reports false for an empty bucket. The result does not depend on the
// order of the bucket.
func Resolve(kind components.Kind, bucket []Intent) (winner Intent, ok bool) {
	if len(bucket) == 0 {
		return Intent{}, false
	}
	winner = bucket[0]
	for _, in := range bucket[1:] {
		if Beats(kind, in, winner) {
			winner = in
		}
	}
	return winner, true
}
