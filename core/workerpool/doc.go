// Package workerpool bounds concurrent calls to an external provider.
//
// A Pool has a fixed number of workers reading job indices from a channel, an optional
// token-bucket rate limiter and a per-job timeout. Run fans a slice of jobs out over the
// pool and returns one Result per job, in job order, so callers get reproducible output
// regardless of completion order.
//
// # Usage
//
//	pool := workerpool.New("tsm", workerpool.Config{Workers: 16, TimeoutSeconds: 30}, m)
//	results := workerpool.Run(ctx, pool, realmIDs, fetchRealm)
//	for i, r := range results {
//	    if r.Err != nil {
//	        // skip realmIDs[i]
//	    }
//	}
package workerpool
