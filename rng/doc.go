// Package rng generates pseudorandom output from mixed system entropy.
//
// The engine aggregates bytes from the enabled entropy sources, compresses
// them into a fixed-width root digest with a cryptographic hash, and expands
// that digest into an output stream of the requested length with one of four
// expansion strategies. Security presets, pluggable locking and raw, hex and
// base64 output formatting are configured per call.
//
// The simple entry points Generate, GenerateUltra and GenerateThreadsafe run
// with sensible defaults; GenerateAdvanced takes a full Config.
package rng
