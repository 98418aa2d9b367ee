package gene

import "errors"

// Error taxonomy shared across the adapter, engine, and API layers. The API
// layer maps these to HTTP status codes; ErrStoreUnavailable never leaves the
// cache layer (fallback absorbs it).
var (
	ErrNotFound            = errors.New("gene not found")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrMalformedRecord     = errors.New("record missing mandatory identification")
	ErrStoreUnavailable    = errors.New("cache store unavailable")
)
