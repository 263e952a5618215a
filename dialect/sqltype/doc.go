// Package sqltype holds the dialect-neutral machinery for SQL type
// declarations: the structured Type, the lexer shared by the dialect
// grammars, custom override rules and the two-slot resolution cache.
package sqltype
