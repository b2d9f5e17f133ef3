package natsbus

import (
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// fakeJetStream satisfies nats.JetStreamContext by embedding the interface;
// only the methods exercised by tests are implemented.
type fakeJetStream struct {
	nats.JetStreamContext

	mu         sync.Mutex
	published  map[string][][]byte
	publishErr error

	pullSubject string
	pullDurable string
	pullErr     error
}

func (f *fakeJetStream) Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.publishErr != nil {
		return nil, f.publishErr
	}
	if f.published == nil {
		f.published = make(map[string][][]byte)
	}
	f.published[subj] = append(f.published[subj], data)
	return &nats.PubAck{Stream: "RF_RECORDINGS"}, nil
}

func (f *fakeJetStream) PullSubscribe(subj, durable string, opts ...nats.SubOpt) (*nats.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pullErr != nil {
		return nil, f.pullErr
	}
	f.pullSubject = subj
	f.pullDurable = durable
	return &nats.Subscription{}, nil
}

func (f *fakeJetStream) publishedTo(subj string) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published[subj]
}

// fakeFetcher scripts the outcome of successive pull fetches; once the
// script runs out it times out.
type fakeFetcher struct {
	results []fetchResult
	calls   int
}

type fetchResult struct {
	msgs []*nats.Msg
	err  error
}

func (f *fakeFetcher) Fetch(batch int, opts ...nats.PullOpt) ([]*nats.Msg, error) {
	f.calls++
	if f.calls > len(f.results) {
		return nil, nats.ErrTimeout
	}
	result := f.results[f.calls-1]
	return result.msgs, result.err
}

// recordingMetrics counts calls per metric for assertions. Tests invoke the
// code under test synchronously, so plain counters suffice.
type recordingMetrics struct {
	published      int
	publishErrors  int
	fetched        int
	fetchTimeouts  int
	fetchErrors    int
	acked          int
	ackErrors      int
	handlerErrors  int
	latencySamples int
}

func (m *recordingMetrics) IncPublished(string)                         { m.published++ }
func (m *recordingMetrics) IncPublishError(string)                      { m.publishErrors++ }
func (m *recordingMetrics) ObservePublishLatency(string, time.Duration) { m.latencySamples++ }
func (m *recordingMetrics) IncFetched(string)                           { m.fetched++ }
func (m *recordingMetrics) IncFetchTimeout(string)                      { m.fetchTimeouts++ }
func (m *recordingMetrics) IncFetchError(string)                        { m.fetchErrors++ }
func (m *recordingMetrics) IncAcked(string)                             { m.acked++ }
func (m *recordingMetrics) IncAckError(string)                          { m.ackErrors++ }
func (m *recordingMetrics) IncHandlerError(string)                      { m.handlerErrors++ }
