// Package evalforgetest provides test helpers for code that uses the
// evalforge SDK: a recording mock server and preconfigured clients bound
// to it. No real API calls are made.
package evalforgetest
