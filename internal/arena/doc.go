// Package arena provides a generation-checked handle store.
//
// Entities that need to reference each other, or be referenced from values,
// hold a Ref instead of a pointer. A Ref names a slot and the generation the
// slot had when it was allocated. Freeing a slot bumps its generation, so a
// stale Ref is detected on lookup instead of silently aliasing the slot's next
// occupant.
//
// Slots live in fixed-size chunks that are never moved, so a pointer returned
// by Get stays valid until the slot is freed. Growing the arena never
// invalidates outstanding pointers and never requires back-patching.
//
// # Concurrency Model
//
// Alloc, Free and Get are safe for concurrent use. Mutating the *T returned
// by Get is the caller's responsibility to synchronize.
package arena
