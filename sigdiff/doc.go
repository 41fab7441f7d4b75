// Package sigdiff finds connections that differ between two groups of nets.
package sigdiff
