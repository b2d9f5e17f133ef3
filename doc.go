// Package rfbus is the shared messaging and data-record layer for a
// distributed RF recording pipeline. Edge nodes describe IQ recordings with
// an immutable MetadataRecord, wrap it in an Envelope carrying a fresh
// transport identity, and publish the JSON form over NATS; downstream
// consumers fetch or receive the bytes, rebuild the envelope and record, and
// verify the record's content checksum against an independently computed
// digest of the referenced capture file.
//
// # Lifecycle
//
// A Consumer or Producer exclusively owns one connection. Connect moves it
// from Disconnected to Connected; Close is terminal and idempotent, so a
// closed instance is replaced rather than reconnected. A JetStream context is
// derived lazily from the live connection when a durable pull-subscription or
// durable publish needs one.
//
// # Delivery modes
//
// JetStreamSubscribe binds a durable pull-subscription and hands back a fetch
// function: each call performs one bounded-time pull and returns either a
// ReceivedMessage whose Ack closes over the native acknowledgement, or nil
// when no message arrived within the timeout. CoreSubscribe registers a
// push handler with a no-op Ack; handler errors and panics are logged per
// message and never terminate the subscription.
//
// # Integrity
//
// Record checksums are MD5 digests computed in bounded chunks. Parsing and
// integrity failures surface as typed errors (MetadataParseError,
// EnvelopeParseError, ChecksumMismatchError) carrying the offending field or
// both digest values; steady-state delivery failures (acks, push handlers)
// are logged and absorbed to keep the consumer loop alive.
//
// Logging is a capability injected at construction time, and Prometheus
// instrumentation of the bus operations is optional through the Metrics
// interface.
package rfbus
