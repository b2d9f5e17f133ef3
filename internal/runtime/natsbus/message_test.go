package natsbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceivedMessage(t *testing.T) {
	acked := false
	msg := NewReceivedMessage([]byte("payload"), func() { acked = true })

	assert.Equal(t, []byte("payload"), msg.Data)
	msg.Ack()
	assert.True(t, acked)
}

func TestNewReceivedMessageNilAck(t *testing.T) {
	msg := NewReceivedMessage([]byte("payload"), nil)

	// The default ack must be an invokable no-op, not nil.
	require.NotNil(t, msg.Ack)
	assert.NotPanics(t, func() { msg.Ack() })
}
