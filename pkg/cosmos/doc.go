// Package cosmos is a schema-validated entity/link/registry engine for
// modeling material objects. Callers declare entity kinds on a Registrar
// (dependencies first), create universes, and construct entities from
// keyword attribute bags; the engine resolves named cross-references,
// wraps raw values in unit-checked quantities and provenance-tagged
// strings, and keeps bidirectional link bookkeeping so that Unlink leaves
// no dangling references anywhere.
//
// The engine is synchronous and performs no internal locking; concurrent
// mutation of a Registrar, its universes, or its entities must be
// prevented by the caller.
package cosmos
