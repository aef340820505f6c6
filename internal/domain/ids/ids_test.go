package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewULIDIsValid(t *testing.T) {
	value, err := NewULID()
	require.NoError(t, err)
	require.Len(t, value, 26)
	require.True(t, IsULID(value))
}

func TestValidateULID(t *testing.T) {
	require.NoError(t, ValidateULID("01HYX3KQW7ERTV9XNBM2P8QJZF"))
	require.NoError(t, ValidateULID("01hyx3kqw7ertv9xnbm2p8qjzf"))

	require.ErrorIs(t, ValidateULID(""), ErrInvalidULID)
	require.ErrorIs(t, ValidateULID("not-a-ulid"), ErrInvalidULID)
	require.ErrorIs(t, ValidateULID("01HYX3KQW7ERTV9XNBM2P8QJZ"), ErrInvalidULID)
	// I, L, O, U are not in Crockford Base32.
	require.ErrorIs(t, ValidateULID("01HYX3KQW7ERTV9XNBM2P8QJZI"), ErrInvalidULID)
}
