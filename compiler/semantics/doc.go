// Package semantics holds the annotated object model that relgen compiles:
// classes, their members and the types those members are declared with.
//
// The model is built once, by the loader or by hand in tests, and is
// read-only afterwards. Attributes computed by compiler passes are not
// stored on the nodes themselves but in an Attrs side table keyed by node
// identity, so each pass can attach typed facts without every node kind
// carrying every field.
package semantics
