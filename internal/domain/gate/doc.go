// Package gate contains the core domain types of the gate alarm: the gate
// and alarm states, the suspension mode discriminant, the discrete input
// events, and the state snapshot consumed by the display renderer.
package gate
