package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitMsg(t *testing.T) {
	msg, err := ParseInitMsg([]byte(`{"count": 100}`))
	require.NoError(t, err)
	assert.Equal(t, int32(100), msg.Count)

	for _, payload := range []string{
		`{}`,
		`{"count": "100"}`,
		`{"count": 1, "owner": "x"}`,
		`{"count": 4294967296}`,
		`{"count": 1} {"count": 2}`,
		`not json`,
	} {
		_, err := ParseInitMsg([]byte(payload))
		assert.ErrorIs(t, err, ErrInvalidMessage, payload)
	}
}

func TestParseExecuteMsg(t *testing.T) {
	msg, err := ParseExecuteMsg([]byte(`{"increment": {}}`))
	require.NoError(t, err)
	assert.NotNil(t, msg.Increment)
	assert.Nil(t, msg.Reset)

	msg, err = ParseExecuteMsg([]byte(`{"reset": {"count": -7}}`))
	require.NoError(t, err)
	require.NotNil(t, msg.Reset)
	assert.Equal(t, int32(-7), msg.Reset.Count)

	for _, payload := range []string{
		`{}`,
		`{"increment": null}`,
		`{"reset": {}}`,
		`{"increment": {}, "reset": {"count": 1}}`,
		`{"decrement": {}}`,
		`{"increment": {"by": 2}}`,
	} {
		_, err := ParseExecuteMsg([]byte(payload))
		assert.ErrorIs(t, err, ErrInvalidMessage, payload)
	}
}

func TestParseQueryMsg(t *testing.T) {
	msg, err := ParseQueryMsg([]byte(`{"get_count": {}}`))
	require.NoError(t, err)
	assert.NotNil(t, msg.GetCount)

	_, err = ParseQueryMsg([]byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = ParseQueryMsg([]byte(`{"get_owner": {}}`))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}
