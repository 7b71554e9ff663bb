/*
Package randx generates identifiers: UUID session ids and random guest
nicknames for connections that declare no name.
*/
package randx

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	// base62Chars is the character set for nickname suffixes.
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// GuestPrefix starts every generated guest nickname.
	GuestPrefix = "guest_"

	// guestSuffixLength is the number of random characters after the prefix.
	guestSuffixLength = 6
)

// SessionID returns a UUID v4 string identifying one session.
func SessionID() string {
	return uuid.New().String()
}

// GuestNickname returns a random display name of the form guest_XXXXXX.
func GuestNickname() string {
	suffix := make([]byte, guestSuffixLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			// rand.Reader failing means the platform's entropy source
			// is broken; uuid.New would panic on the same condition.
			suffix[i] = base62Chars[0]
			continue
		}
		suffix[i] = base62Chars[n.Int64()]
	}

	return GuestPrefix + string(suffix)
}
