// README: Monthly extraction quota per caller, stored in Postgres.
package aiusage

import (
	"errors"
	"time"
)

// ErrInsufficientTokens is returned when a caller has no extractions left this month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of extractions granted per month.
const DefaultTokens = 100

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
