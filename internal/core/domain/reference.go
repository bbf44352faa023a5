package domain

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Reference prefixes outside the credit/debit pair.
const ReferencePrefixPayment = "PAY"

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewReference returns PREFIX-<ULID>. The ULID encodes the millisecond timestamp
// followed by monotonic randomness, so references sort by creation time.
func NewReference(prefix string) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return prefix + "-" + id.String()
}
