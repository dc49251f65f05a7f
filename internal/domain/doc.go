// Package domain contains the core carousel entities, the invariants that hold
// across them (contiguous slide order, mandatory code word in the call to
// action), and the closed set of error kinds produced by the pipeline. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
