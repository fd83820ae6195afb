package csrf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SignVerify(t *testing.T) {
	m := NewManager("secret-one", time.Hour)
	raw := NewToken()
	require.Len(t, raw, 64)

	signed, err := m.Sign(raw)
	require.NoError(t, err)
	assert.NotEqual(t, raw, signed)

	assert.NoError(t, m.Verify(signed, raw))
	assert.ErrorIs(t, m.Verify("", raw), ErrMissing)
	assert.ErrorIs(t, m.Verify(signed, NewToken()), ErrInvalid)
	assert.ErrorIs(t, m.Verify(signed, ""), ErrInvalid)
	assert.ErrorIs(t, m.Verify("garbage", raw), ErrInvalid)

	other := NewManager("secret-two", time.Hour)
	assert.ErrorIs(t, other.Verify(signed, raw), ErrInvalid)

	got, err := m.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, time.Hour, m.TimeLimit())
}

func TestNewToken_Unique(t *testing.T) {
	assert.NotEqual(t, NewToken(), NewToken())
}
