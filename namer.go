package autowire

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// DefaultParameterPrefix prefixes the names of parameters generated for literal hints.
const DefaultParameterPrefix = "autowiring.literal"

// ParameterNamer generates names for the parameters that hold literal hints.
// A namer is owned by a single resolution pass.
type ParameterNamer interface {
	Next(value any) string
}

// NamerFactory creates the [ParameterNamer] for one pass.
type NamerFactory func() ParameterNamer

// SequenceNamer yields "prefix_1", "prefix_2" and so on. Each pass starts at 1.
func SequenceNamer(prefix string) NamerFactory {
	return func() ParameterNamer {
		return &sequenceNamer{prefix: prefix}
	}
}

type sequenceNamer struct {
	prefix string
	n      int
}

func (s *sequenceNamer) Next(any) string {
	s.n++
	return s.prefix + "_" + strconv.Itoa(s.n)
}

// HashNamer yields "prefix_<uuid>" where the uuid is a name-based (SHA-1) hash of
// the seed, a per-pass counter and the literal value.
func HashNamer(prefix string, seed uuid.UUID) NamerFactory {
	return func() ParameterNamer {
		return &hashNamer{prefix: prefix, seed: seed}
	}
}

type hashNamer struct {
	prefix string
	seed   uuid.UUID
	n      int
}

func (h *hashNamer) Next(value any) string {
	h.n++
	id := uuid.NewSHA1(h.seed, []byte(fmt.Sprintf("%d:%#v", h.n, value)))
	return h.prefix + "_" + id.String()
}
