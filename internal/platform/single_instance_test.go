package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstanceRejectsSecondHolder(t *testing.T) {
	name := "eyebreak-test-" + t.Name()

	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)

	_, err = AcquireSingleInstance(name)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("EyeBreak")
	assert.Equal(t, port, portFromName("EyeBreak"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}
