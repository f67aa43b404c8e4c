package service

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	MaxIdentifierLength = 20

	identifierPrefixLength    = 2
	identifierOwnerLength     = 5
	identifierTimestampLength = 8
	identifierSuffixLength    = 5

	// 36^5
	suffixSpace = 60466176
)

type IdentifierGenerator interface {
	Generate(userID string) string
}

type identifierGenerator struct {
	prefix string
	now    func() time.Time
	seq    atomic.Uint64
}

// NewIdentifierGenerator builds identifiers of the form
// prefix(2) + owner(5) + base36 millis(8) + suffix(5).
func NewIdentifierGenerator(prefix string) IdentifierGenerator {
	if len(prefix) > identifierPrefixLength {
		prefix = prefix[:identifierPrefixLength]
	}

	g := &identifierGenerator{prefix: prefix, now: time.Now}

	var seed [8]byte
	if _, err := rand.Read(seed[:]); err == nil {
		g.seq.Store(binary.BigEndian.Uint64(seed[:]))
	}

	return g
}

func (g *identifierGenerator) Generate(userID string) string {
	var b strings.Builder
	b.Grow(MaxIdentifierLength)

	b.WriteString(g.prefix)
	b.WriteString(ownerFragment(userID))
	b.WriteString(fixedBase36(uint64(g.now().UnixMilli()), identifierTimestampLength))

	// The suffix walks a randomly seeded sequence, so identifiers from one
	// process never repeat inside the same millisecond.
	b.WriteString(fixedBase36(g.seq.Add(1)%suffixSpace, identifierSuffixLength))

	return b.String()
}

func ownerFragment(userID string) string {
	fragment := make([]byte, 0, identifierOwnerLength)
	for i := 0; i < len(userID) && len(fragment) < identifierOwnerLength; i++ {
		c := userID[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			fragment = append(fragment, c)
		case c >= 'A' && c <= 'Z':
			fragment = append(fragment, c+('a'-'A'))
		}
	}

	for len(fragment) < identifierOwnerLength {
		fragment = append(fragment, '0')
	}

	return string(fragment)
}

func fixedBase36(v uint64, width int) string {
	s := strconv.FormatUint(v, 36)
	if len(s) > width {
		return s[len(s)-width:]
	}

	return strings.Repeat("0", width-len(s)) + s
}
