// Package garage holds the declarative graph: the vertexes and edges a user
// assembles, in the exact JSON shape used for loading and saving.
//
// Nothing in this package evaluates anything. A Garage is turned into an
// executable form by the compiler package each time a session starts.
package garage
