// Package protocols resolves the members of protocols declared in other files.
//
// A Cache maps protocol names to their declaring file and is read once from a JSON
// object (".protocols_cache.json" by default) maintained by an external build step.
// A Resolver uses it together with a decl.Parser to turn an inherited type name into
// the (name, kind) signatures of the protocol members declared in that file.
//
// Gaps in the data are never errors: an absent cache, a protocol missing from it, or a
// declaring file that cannot be parsed all resolve to no members.
package protocols
