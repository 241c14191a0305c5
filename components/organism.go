package components

// Kind distinguishes the two animal species.
type Kind uint8

const (
	KindPrey     Kind = iota // rabbits
	KindPredator             // foxes
)

// Organism bundles identity and species.
type Organism struct {
	ID   uint32
	Kind Kind
}

// Life holds the per-individual counters shared by both species.
type Life struct {
	Age            int  // generations since birth
	SinceReproduce int  // generations since last reproduction
	Eaten          bool // tombstone set by a predator, removed at cleanup
}

// Hunger is carried by predators only.
type Hunger struct {
	SinceEat int
}
