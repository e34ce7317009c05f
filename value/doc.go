// Package value defines the dynamic value model and the merge engine.
//
// A Value is a tagged union over null, bool, number, string, sequence and
// mapping: the in-memory shape of any parsed configuration fragment,
// independent of the format it was parsed from. Mappings preserve
// insertion order so merged trees serialize deterministically.
//
// # Merging
//
// Merge combines two values: mappings merge key-wise and recursively, while
// sequences and scalars are replaced wholesale by the overlay. MergeStrict
// additionally reports container/non-container type mismatches as a
// *ConflictError instead of overriding.
//
// Fold applies the same rules across an ordered sequence of Fragments, each
// anchored in the tree by its path segments. Fragment order is override
// order: later fragments win conflicts at the same path. Callers that
// discover fragments concurrently must sort them into a stable order before
// folding, otherwise results become order-dependent across runs.
//
// # Extraction
//
// Lookup navigates colon-separated paths ("database:host") and Decode
// extracts a subtree into a typed struct.
package value
