// Package order contains the Order aggregate and its handoff state machine.
//
// The aggregate root Order owns an append-only ledger of Leg entities, one per
// rider segment. All lifecycle rules live here: the explicit transition table
// mapping (status, action) pairs to next states, the rider-presence invariant,
// and the strictly-increasing leg numbering. The package is pure domain logic:
// it performs no I/O and relies on the application layer to load authoritative
// state and serialize mutations through the per-order lock.
package order
