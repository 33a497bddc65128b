// Package memo provides the memoization backends for stopping times.
//
// Store is an in-process map guarded by a single RWMutex: readers never block
// readers, a writer excludes everyone. Inserts keep the first value stored for
// a key.
//
// PartialArray is a fixed-capacity array of counts living in a shared memory
// region, indexed by value. It has no lock: slot 0 means unknown and every
// non-zero slot holds the stopping time of its index. Two processes may store
// into the same slot concurrently; since a slot can only ever hold the one
// deterministic stopping time of its index, such writes store identical
// words.
package memo
