// Package matrix provides the dense numeric matrix used by the calculator.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe, non-panicking accessors.
//   - Ingestion from [][]float64 with rectangular-shape validation.
//   - Central validators (nil, shape, multiplication compatibility).
//   - Mul, the plain deterministic product used as a reference kernel.
//
// Every error is a package sentinel (see errors.go) possibly wrapped with
// operation context; match them with errors.Is.
//
// See the examples in this package for usage patterns.
package matrix
