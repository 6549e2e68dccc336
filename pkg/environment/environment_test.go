package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]environment.Environment{
		"production": environment.Production,
		"PROD":       environment.Production,
		" stage ":    environment.Staging,
		"staging":    environment.Staging,
		"dev":        environment.Development,
		"":           environment.Development,
		"something":  environment.Development,
	}

	for in, want := range tests {
		assert.Equal(t, want, environment.Parse(in), "input %q", in)
	}
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var env environment.Environment
	require.NoError(t, env.UnmarshalText([]byte("prod")))
	assert.True(t, env.IsProduction())
	assert.False(t, env.IsDevelopment())
	assert.Equal(t, "production", env.String())
}
