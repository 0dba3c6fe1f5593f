// Package core holds small numeric helpers shared by the EQ packages:
// clamping, decibel conversion and the logarithmic frequency axis used by
// response curves.
package core
