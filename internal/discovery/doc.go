// Package discovery derives short content keys from fingerprints.
//
// A key is a 32-bit polynomial hash over the canonical serialization of a
// fingerprint: items sorted by lowercase word, each rendered as
// "word:weight" with the weight at one decimal place, joined by "|". Two
// fingerprints that agree on that canonical set share a key regardless of
// item order or word case. Keys are not collision resistant and must only be
// used to spot regenerations of the same sense.
package discovery
