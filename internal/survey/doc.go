// Package survey lays out observation points and evaluates body sets over
// them.
//
// A [Profile] samples a straight line and a [Grid] a horizontal rectangle.
// [Run] evaluates several field components over the same points, one
// goroutine per component, and summarises each with the standard metrics.
package survey
