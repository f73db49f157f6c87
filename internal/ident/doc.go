// internal/ident/doc.go

/*
Package ident validates the free-form identifiers used to wire a graph:
plug ids, jack ids and vertex config keys.

An identifier is a non-empty run of letters, digits, underscores and
hyphens, e.g. `left`, `value`, `send-mode`.
*/
package ident
