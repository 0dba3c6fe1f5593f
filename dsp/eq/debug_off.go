//go:build !eqdebug

package eq

const debugAssertions = false
