// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"fmt"
	"math"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// Gain scales every sample by a fixed factor. It is stateless.
type Gain struct {
	db  float64
	lin float32
}

func NewGain(db float64) (*Gain, error) {
	lin, ok := gainFactor(db)
	if !ok {
		return nil, invalid("gain_db", db, "must be finite with a representable factor")
	}

	return &Gain{db: db, lin: lin}, nil
}

// gainFactor is the linear factor for db, false when db is not finite or
// the factor overflows float32 (above about 770 dB).
func gainFactor(db float64) (float32, bool) {
	if math.IsNaN(db) || math.IsInf(db, 0) {
		return 0, false
	}

	lin := float32(utils.DBToGain(db))
	return lin, !math.IsInf(float64(lin), 0)
}

func (g *Gain) DB() float64        { return g.db }
func (g *Gain) Category() Category { return CategoryGain }
func (g *Gain) Name() string       { return fmt.Sprintf("gain(%+.2fdB)", g.db) }

func (g *Gain) Process(c *audio.Chunk) error {
	for i := range c.Data {
		c.Data[i] *= g.lin
	}

	if !utils.Finite(c.Data) {
		return ErrNonFinite
	}

	return nil
}
