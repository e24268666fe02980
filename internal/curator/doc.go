// Package curator contains the pure logic of the playlist generation
// pipeline: genre classification, prompt construction, response parsing,
// song string splitting, and cost estimation.
//
// Nothing in this package performs I/O; the services package owns the
// provider calls that consume and produce the strings handled here.
package curator
