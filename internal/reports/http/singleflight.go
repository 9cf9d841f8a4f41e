package reporthttp

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var reportGroup singleflight.Group

// collapse deduplicates concurrent identical report computations so a burst
// of dashboard refreshes runs one query set.
func collapse(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, error, bool) {
	resultChan := reportGroup.DoChan(key, fn)
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}
