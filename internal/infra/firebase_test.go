package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallerVerifier_EmptyProjectIsAnonymous(t *testing.T) {
	verifier, err := NewCallerVerifier(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, verifier)
}
