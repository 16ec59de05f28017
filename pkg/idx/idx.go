// Package idx mints the identifiers stored for users, todos and tags.
//
// IDs are ULIDs: 26 Crockford base32 characters whose first 48 bits are the
// creation time in milliseconds, so sorting by ID sorts by creation.
package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

var ErrInvalid = errors.New("idx: invalid ulid")

var source = struct {
	sync.Mutex
	entropy io.Reader
}{entropy: ulid.Monotonic(rand.Reader, 0)}

// New returns an ID stamped with the current time.
func New() ID {
	return NewAt(time.Now())
}

// NewAt returns an ID stamped with t. Calls within the same millisecond
// still produce increasing IDs.
func NewAt(t time.Time) ID {
	source.Lock()
	defer source.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), source.entropy).String())
}

// Parse accepts only canonical upper or lower case ULIDs.
func Parse(s string) (ID, error) {
	if _, err := ulid.ParseStrict(s); err != nil {
		return "", ErrInvalid
	}
	return ID(s), nil
}

// Valid is Parse without the value. Path parameters that fail it can never
// name a stored row.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func (id ID) String() string { return string(id) }

// Time is the creation instant embedded in id, or the zero time when id is
// not a ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
