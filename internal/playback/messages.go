package playback

import "github.com/llehouerou/pixelpop/internal/resolver"

// ResolvedMsg carries a finished resolution back to the UI loop.
// Version ties it to the request that produced it.
type ResolvedMsg struct {
	Version int
	Query   string
	Index   int // queue index, -1 for ad-hoc queries
	Track   resolver.Track
}

// ResolveFailedMsg carries a resolution error back to the UI loop.
type ResolveFailedMsg struct {
	Version int
	Query   string
	Err     error
}
