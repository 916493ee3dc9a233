package wheel

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// RandomSource yields uniform values in [0,1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// RandomFunc adapts a plain function to RandomSource.
type RandomFunc func() float64

func (f RandomFunc) Float64() float64 {
	return f()
}

// CryptoSource draws from crypto/rand with 53 bits of precision.
type CryptoSource struct{}

func (CryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0.5
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// SeededSource is a deterministic stream of floats derived from
// HMAC-SHA256(serverSeed, "clientSeed:nonce:round"). Each float consumes four
// bytes of the current 32-byte round.
type SeededSource struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	round      uint64
	pos        int
	buf        [32]byte
}

// NewSeededSource creates a replayable source for the given seeds.
func NewSeededSource(serverSeed, clientSeed string, nonce uint64) *SeededSource {
	s := &SeededSource{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
	}
	s.fill()
	return s
}

func (s *SeededSource) Float64() float64 {
	var out float64
	div := 1.0
	for i := 0; i < 4; i++ {
		div *= 256
		out += float64(s.next()) / div
	}
	return out
}

func (s *SeededSource) next() byte {
	if s.pos >= len(s.buf) {
		s.round++
		s.fill()
	}
	b := s.buf[s.pos]
	s.pos++
	return b
}

func (s *SeededSource) fill() {
	h := hmac.New(sha256.New, []byte(s.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", s.clientSeed, s.nonce, s.round)
	copy(s.buf[:], h.Sum(nil))
	s.pos = 0
}
