// Package environment names the deployment environments the worker runs in.
package environment

import "strings"

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse normalizes common spellings ("prod", "stage", "dev") to an Environment.
// Unknown or empty values fall back to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// UnmarshalText lets config structs declare an Environment field directly.
func (e *Environment) UnmarshalText(text []byte) error {
	*e = Parse(string(text))
	return nil
}

func (e Environment) IsProduction() bool { return e == Production }

func (e Environment) IsDevelopment() bool { return e == Development }

func (e Environment) String() string { return string(e) }
