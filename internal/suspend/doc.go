// Package suspend implements the user-operated suspension window: digit
// entry of a duration in minutes, timed and indefinite suspension modes,
// and polled expiry detection.
package suspend
