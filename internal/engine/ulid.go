// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package engine

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// newTickID returns a ULID for a tick started at t. IDs from one process
// sort in tick order.
func newTickID(t time.Time) ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy)
}
