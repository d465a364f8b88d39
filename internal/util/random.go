package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// NewRand returns an independent PCG source for one shuffle operation.
// Callers never share the returned value across sessions.
func NewRand() *rand.Rand {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:])))
}

// NewSeededRand returns a deterministic source, for tests and reproducible exams.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
