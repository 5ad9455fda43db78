// Package emit provides event emission and observability for stage
// shard assignment at construction and prefetch worker lifecycle.
package emit

import "context"

// Emitter receives Events describing what a stage is doing: constructed
// with a given shard assignment, starting or stopping a prefetch worker
// goroutine, or the prefetch worker hitting an upstream error.
//
// A pipeline built from several composed stages shares one Emitter across
// all of them, so Event.PipelineID and Event.StageID are how a consumer
// tells which stage in the composition an event came from.
type Emitter interface {
	// Emit records a single Event. Called synchronously from the stage
	// that produced it (construction, prefetch worker transitions), so
	// implementations must not block the caller for long: a stage's Next
	// call can be sitting behind this.
	//
	// Emit must not panic; an emitter that can fail should swallow the
	// failure and log it through its own channel, not the pipeline's.
	Emit(event Event)

	// EmitBatch records several Events at once, preserving their order.
	// The stages in package seq call only Emit; EmitBatch is for callers
	// with a burst of events, and lets an emitter backed by a network sink
	// coalesce them into one round trip instead of one per event.
	//
	// Returns an error only for a configuration-level failure of the
	// emitter itself (e.g. a closed exporter); a single bad event in the
	// batch should be dropped and logged, not surfaced here.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until every event accepted by Emit/EmitBatch has been
	// delivered to the underlying backend, or ctx is done. Call it at the
	// end of a training run so the last few checkpoint-capture events
	// aren't lost to process exit before a buffering emitter drains.
	//
	// Flush must be safe to call more than once.
	Flush(ctx context.Context) error
}
