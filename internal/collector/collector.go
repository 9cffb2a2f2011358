package collector

import "context"

type Result[T any] struct {
	Result T
	Err    error
}

// Collector yields discovered resources on a channel. The acquisition
// gateway (browser automation against the records portal) is one
// implementation; DirCollector replays its saved output.
type Collector[T any] interface {
	Collect(ctx context.Context) (<-chan Result[T], error)
}
