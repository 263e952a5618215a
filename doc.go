// Package relgen is an object-relational mapping schema compiler. It reads
// an annotated object model and derives, for each target database dialect,
// the relational schema of the model together with the SQL types and
// conversion expressions of every column.
//
// The compiler itself lives in compiler/gen; the dialect descriptors and
// type grammars live under dialect. This package holds the errors shared
// between them and their callers.
package relgen
