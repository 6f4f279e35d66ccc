package applications

import "context"

// Repo is the append-only record store. No implementation offers update or
// delete.
type Repo interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
}

// Pinger is implemented by repos that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
