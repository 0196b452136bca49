// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"strings"

	"github.com/ik5/audfx/audio"
)

// Chain is an ordered, immutable list of stages. An empty chain passes
// audio through untouched.
type Chain struct {
	stages []Stage
}

// NewChain returns a chain running stages in the given order. Build is the
// usual way to get one; NewChain does not reorder.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: append([]Stage(nil), stages...)}
}

func (c *Chain) Len() int { return len(c.stages) }

// Stages returns a copy of the stage list.
func (c *Chain) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}

// Process runs every stage over chunk in place.
func (c *Chain) Process(chunk *audio.Chunk) error {
	for i, s := range c.stages {
		if err := s.Process(chunk); err != nil {
			return &StageError{Index: i, Stage: s, Err: err}
		}
	}

	return nil
}

func (c *Chain) String() string {
	if len(c.stages) == 0 {
		return "pass-through"
	}

	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name()
	}

	return strings.Join(names, " -> ")
}
