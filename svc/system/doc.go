// Package system serves the index banner and the liveness probe.
package system
