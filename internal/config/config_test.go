package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsFromEnvironment(t *testing.T) {
	t.Setenv("CONTACTEX_DEMO", "true")
	t.Setenv("CONTACTEX_ADAPTER", "hci1")
	t.Setenv("CONTACTEX_CLIENT_ID", "abc.apps.example.com")
	t.Setenv("CONTACTEX_DEBUG", "not-a-bool")

	opts := Defaults()

	assert.True(t, opts.Demo)
	assert.Equal(t, "hci1", opts.Adapter)
	assert.Equal(t, "abc.apps.example.com", opts.ClientID)
	assert.False(t, opts.Debug, "unparseable bools fall back to the default")
}

func TestDefaultAddressBookUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "contacts"), DefaultAddressBook())
}

func TestAdapterLabelEmptyByDefault(t *testing.T) {
	t.Setenv("CONTACTEX_ADAPTER", "")
	require.NoError(t, os.Unsetenv("CONTACTEX_ADAPTER"))

	assert.Empty(t, Defaults().Adapter)
}
