// Package seq provides composable, checkpointable lazy sequences ("stages")
// for feeding training data into jobs that must resume after interruption
// and shard across parallel workers.
package seq

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Token is an opaque checkpoint snapshot of a Stage's position. Tokens have
// no identity of their own: two tokens that resume to the same continuation
// are equivalent, and a fresh Stage of the same configuration accepts a
// token captured from any other Stage of that configuration.
//
// Concrete token values are plain structs with exported, JSON-tagged
// fields. Composite stages nest their upstreams' Token values inside their
// own token struct, so a Token forms a tree whose leaves are primitives and
// whose internal nodes mirror the pipeline's shape.
//
// The reset sentinel is the literal Go nil: SetState(nil) always means
// "position at the beginning," for every stage.
type Token any

// decodeToken recovers a concrete token type S from a Token value.
//
// A token is either already the concrete type S (the common case: a token
// captured and restored within the same process), or it is the result of a
// round-trip through an external serialization format the caller chose
// (spec §6 — the library never serializes tokens itself), in which case it
// arrives as a JSON-decoded map[string]interface{}/[]interface{} tree. The
// second branch re-marshals and re-decodes it into S, which is cheap
// relative to whatever the caller's serialization step already cost.
func decodeToken[S any](tok Token) (S, error) {
	var out S
	if s, ok := tok.(S); ok {
		return s, nil
	}
	b, err := json.Marshal(tok)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

// TokenHash returns a stable, equality-comparable fingerprint of a token.
//
// Tokens may embed maps or nested structs produced by different code paths
// (a freshly captured struct vs. one round-tripped through JSON), so
// reflect.DeepEqual over two "equivalent" tokens is not reliable once a
// consumer's serialization format is in the mix. TokenHash normalizes by
// marshaling to JSON (whose object key ordering is fixed by struct field
// order, not map iteration order) and hashing the result, giving tests and
// callers a cheap way to assert P2 replay equality between tokens without
// depending on the concrete Go representation.
//
// Grounded on the teacher's idempotency-key technique (sha256 over
// canonically-ordered structured fields), repurposed from deduplicating
// checkpoint commits to fingerprinting tokens for equality.
func TokenHash(tok Token) (string, error) {
	b, err := json.Marshal(tok)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}
