//go:build eqdebug

package eq

// debugAssertions turns contract violations (such as an undefined slope)
// into panics.
const debugAssertions = true
