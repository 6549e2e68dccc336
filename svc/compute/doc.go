// Package compute implements POST /api/compute, a pure numeric reduction
// (sum, mean, max, min, population std) over a JSON array.
package compute
