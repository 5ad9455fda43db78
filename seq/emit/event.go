package emit

// Event represents an observability event emitted during pipeline
// execution.
//
// The stages in package seq emit:
//   - "shard_assigned" at ChunkedSource/InfinitePermutationSource construction
//   - "worker_start"/"worker_stop" when a Prefetch worker starts or stops
//   - "worker_error" when a Prefetch worker's upstream fails
//
// GetState/SetState calls and end-of-stream emit no events.
//
// Events are emitted to an Emitter which can log them, send them to
// OpenTelemetry, or buffer them for test assertions.
type Event struct {
	// PipelineID identifies the root stage's run, for correlating events
	// across a composed pipeline. Caller-supplied; empty if unused.
	PipelineID string

	// Seq is a caller-supplied event sequence number within this
	// pipeline's lifetime. The stages in package seq leave it zero.
	Seq int

	// StageID identifies which stage emitted the event (e.g. "Prefetch",
	// "BlockwiseShuffle"). Empty for pipeline-level events.
	StageID string

	// Msg is a human-readable description of the event.
	Msg string

	// Meta contains additional structured data specific to this event.
	// Keys set by the stages in package seq:
	//   - "error": error text, on "worker_error" events
	//   - "shard" (int rank) and "world" (int world size), on
	//     shard-assignment events, plus "size" (ChunkedSource) or
	//     "dataset_size" (InfinitePermutationSource)
	Meta map[string]interface{}
}
