package ports

import "time"

// Clock is the authoritative time source for deadline computation and
// expiry checks. Client-supplied timestamps are never consulted.
type Clock interface {
	Now() time.Time
}
