package emit

import "context"

// NullEmitter discards every event. It is the default when no Option sets
// an emitter: zero overhead, safe for concurrent use.
type NullEmitter struct{}

func NewNullEmitter() NullEmitter { return NullEmitter{} }

func (NullEmitter) Emit(Event)                             {}
func (NullEmitter) EmitBatch(context.Context, []Event) error { return nil }
func (NullEmitter) Flush(context.Context) error             { return nil }
