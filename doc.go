// Package jsonbind is a schema-directed JSON parsing and serialization
// library. Instead of decoding into interface{} and walking the result,
// callers describe the shape of their Go type once — either via struct
// tags (BindStruct) or a small YAML description (BindYAML) — and jsonbind
// uses that description to drive a hand-written scanner directly over the
// input bytes, producing zero-copy views where the policy allows it.
//
// The parser is built from a small set of independently testable pieces:
// a bit-packed Policy that specializes scanning behavior, a Cursor that
// walks the input, primitive scanners for numbers/strings/literals, a
// class parser with out-of-order member recovery, an array parser with
// both eager and lazy iteration, a path navigator for jumping straight to
// a subtree, an event walker for SAX-style consumption, and a path
// locator that reconstructs a JSON-path stack for any byte offset (used
// for diagnostics).
package jsonbind
