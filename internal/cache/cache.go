// Package cache stores rendered loan pages so repeated list and detail views
// skip the database until a mutation invalidates them.
package cache

import (
	"context"
	"strconv"
	"strings"
)

const keyPrefix = "loans:view:"

// Version is the cache generation a lookup observed. A page rendered after a
// miss must be stored under the version that miss returned: if a mutation
// lands in between, the version has moved on and the stale page is never
// served.
type Version int64

// ViewCache caches rendered list and detail pages. A miss is reported as
// (nil, version, false, nil); errors mean the backing store misbehaved and
// callers should treat them as a miss without writing the page back.
type ViewCache interface {
	GetList(ctx context.Context, query string) ([]byte, Version, bool, error)
	SetList(ctx context.Context, query string, version Version, page []byte) error
	GetDetail(ctx context.Context, loanID string) ([]byte, Version, bool, error)
	SetDetail(ctx context.Context, loanID string, version Version, page []byte) error
	// InvalidateLoans moves every list page plus the detail pages of the
	// given loans to a new version.
	InvalidateLoans(ctx context.Context, loanIDs ...string) error
}

// Pages are keyed by a generation number; bumping it orphans every entry
// written under the old one and TTL or eviction reclaims them.
func listKey(version Version, query string) string {
	return keyPrefix + "list:" + strconv.FormatInt(int64(version), 10) + ":" + query
}

func detailKey(version Version, loanID string) string {
	return keyPrefix + "detail:" + strconv.FormatInt(int64(version), 10) + ":" + normalizeID(loanID)
}

const listGenerationKey = keyPrefix + "list:gen"

func detailGenerationKey(loanID string) string {
	return keyPrefix + "detail:gen:" + normalizeID(loanID)
}

// UUIDs are case-insensitive; /loans/ABC and /loans/abc share one entry.
func normalizeID(loanID string) string {
	return strings.ToLower(loanID)
}

// Disabled is a ViewCache that stores nothing.
type Disabled struct{}

var _ ViewCache = Disabled{}

func (Disabled) GetList(context.Context, string) ([]byte, Version, bool, error) {
	return nil, 0, false, nil
}
func (Disabled) SetList(context.Context, string, Version, []byte) error { return nil }
func (Disabled) GetDetail(context.Context, string) ([]byte, Version, bool, error) {
	return nil, 0, false, nil
}
func (Disabled) SetDetail(context.Context, string, Version, []byte) error { return nil }
func (Disabled) InvalidateLoans(context.Context, ...string) error         { return nil }
