// Package readmesync mirrors the README of a fixed list of remote module
// repositories into the documentation directory. A run fetches every README
// concurrently, waits for the whole batch, then rewrites each document with
// an ordered list of rules and writes it to a path derived from the module
// identifier.
package readmesync
