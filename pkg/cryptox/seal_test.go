package cryptox_test

import (
	"testing"

	"github.com/smetchik/backend/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	cryptox.SetMasterKey("test-master-key-for-sealing-12345")
	t.Cleanup(func() { cryptox.SetMasterKey("") })

	sealed, err := cryptox.Seal("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	require.NotContains(t, sealed, "JBSWY3DPEHPK3PXP")

	opened, err := cryptox.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "JBSWY3DPEHPK3PXP", opened)
}

func TestSealUsesFreshNonce(t *testing.T) {
	cryptox.SetMasterKey("test-master-key-multiple-times-xyz")
	t.Cleanup(func() { cryptox.SetMasterKey("") })

	first, err := cryptox.Seal("same")
	require.NoError(t, err)
	second, err := cryptox.Seal("same")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, s := range []string{first, second} {
		opened, err := cryptox.Open(s)
		require.NoError(t, err)
		require.Equal(t, "same", opened)
	}
}

func TestOpenWithOtherKeyFails(t *testing.T) {
	cryptox.SetMasterKey("key-one")
	t.Cleanup(func() { cryptox.SetMasterKey("") })

	sealed, err := cryptox.Seal("secret")
	require.NoError(t, err)

	cryptox.SetMasterKey("key-two")
	_, err = cryptox.Open(sealed)
	require.Error(t, err)
}

func TestOpenMalformed(t *testing.T) {
	cryptox.SetMasterKey("malformed-key")
	t.Cleanup(func() { cryptox.SetMasterKey("") })

	_, err := cryptox.Open("!!not base64!!")
	require.ErrorIs(t, err, cryptox.ErrSealedMalformed)

	_, err = cryptox.Open("c2hvcnQ")
	require.ErrorIs(t, err, cryptox.ErrSealedMalformed)
}

func TestRandomMasterKeyRoundTrips(t *testing.T) {
	cryptox.SetMasterKey("")

	sealed, err := cryptox.Seal("ephemeral")
	require.NoError(t, err)
	opened, err := cryptox.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "ephemeral", opened)
}
