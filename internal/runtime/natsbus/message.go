package natsbus

// AckFunc signals successful processing of one message back to the
// transport. It takes no arguments and returns nothing; acknowledgement
// failures are logged inside the closure and never surfaced.
type AckFunc func()

func noopAck() {}

// ReceivedMessage is the transport-agnostic unit handed to application code:
// the raw bytes as received plus a deferred acknowledgement action. For
// delivery modes without a per-message acknowledgement the action is a no-op,
// so every code path can invoke it uniformly.
type ReceivedMessage struct {
	Data []byte
	Ack  AckFunc
}

// NewReceivedMessage wraps raw bytes and an acknowledgement action. A nil ack
// is normalized to a no-op.
func NewReceivedMessage(data []byte, ack AckFunc) *ReceivedMessage {
	if ack == nil {
		ack = noopAck
	}
	return &ReceivedMessage{Data: data, Ack: ack}
}
