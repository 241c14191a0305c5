package scenario

import (
	"math/rand"

	"github.com/pthm-cable/warren/components"
)

// Density is the fraction of cells seeded with each object kind.
type Density struct {
	Rock   float64 `yaml:"rock"`
	Rabbit float64 `yaml:"rabbit"`
	Fox    float64 `yaml:"fox"`
}

// Random builds a seeded world. Each cell independently becomes a rock,
// rabbit or fox with the given probabilities, so the same seed always
// yields the same setup.
func Random(seed int64, p Params, d Density) *Setup {
	rng := rand.New(rand.NewSource(seed))
	s := &Setup{Params: p}
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			x := rng.Float64()
			switch {
			case x < d.Rock:
				s.Objects = append(s.Objects, Object{Kind: components.ObjectRock, Row: r, Col: c})
			case x < d.Rock+d.Rabbit:
				s.Objects = append(s.Objects, Object{Kind: components.ObjectRabbit, Row: r, Col: c})
			case x < d.Rock+d.Rabbit+d.Fox:
				s.Objects = append(s.Objects, Object{Kind: components.ObjectFox, Row: r, Col: c})
			}
		}
	}
	return s
}
