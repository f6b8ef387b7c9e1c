// Package keypad classifies raw keypad characters into the discrete key
// events the core understands: digits, commit (hash) and reset (star).
// Matrix scanning and debouncing are collaborator concerns.
package keypad
