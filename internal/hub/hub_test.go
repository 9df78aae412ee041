package hub

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora/pkg/logger"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, data)
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func newTestClient(userID int) *Client {
	return NewClient(&fakeConn{}, userID)
}

// recvEnvelope pops the next queued frame or fails the test.
func recvEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw, ok := <-c.send:
		require.True(t, ok, "send queue closed")
		var e Envelope
		require.NoError(t, json.Unmarshal(raw, &e))
		return e
	default:
		t.Fatal("no frame queued")
		return Envelope{}
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected frame: %s", raw)
	default:
	}
}

func TestGroupNameOrderIndependent(t *testing.T) {
	assert.Equal(t, "3-7", GroupName(3, 7))
	assert.Equal(t, "3-7", GroupName(7, 3))
	assert.Equal(t, GroupName(1, 2), GroupName(2, 1))
}

func TestRegisterUnregister(t *testing.T) {
	h := New(logger.NewNop())
	c := newTestClient(1)

	h.Register(c)
	assert.Equal(t, 1, h.Len())
	got, ok := h.Client(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)

	h.Unregister(c)
	assert.Equal(t, 0, h.Len())
	_, ok = h.Client(c.ID)
	assert.False(t, ok)

	// send queue is closed so the write loop terminates
	_, open := <-c.send
	assert.False(t, open)

	// second unregister of the same client is a no-op
	h.Unregister(c)
}

func TestSendToGroup(t *testing.T) {
	h := New(logger.NewNop())
	a := newTestClient(1)
	b := newTestClient(2)
	outsider := newTestClient(3)
	for _, c := range []*Client{a, b, outsider} {
		h.Register(c)
	}
	h.JoinGroup(GroupName(1, 2), a)
	h.JoinGroup(GroupName(1, 2), b)

	h.SendToGroup(GroupName(1, 2), Envelope{Event: EventNewMessage, Data: "hi"})

	for _, member := range []*Client{a, b} {
		e := recvEnvelope(t, member)
		assert.Equal(t, EventNewMessage, e.Event)
		assert.Equal(t, "hi", e.Data)
	}
	assertNoFrame(t, outsider)
}

func TestSendToGroupAfterUnregister(t *testing.T) {
	h := New(logger.NewNop())
	a := newTestClient(1)
	b := newTestClient(2)
	h.Register(a)
	h.Register(b)
	h.JoinGroup(GroupName(1, 2), a)
	h.JoinGroup(GroupName(1, 2), b)

	h.Unregister(a)
	h.SendToGroup(GroupName(1, 2), Envelope{Event: EventNewMessage})

	e := recvEnvelope(t, b)
	assert.Equal(t, EventNewMessage, e.Event)
}

func TestSendToConnections(t *testing.T) {
	h := New(logger.NewNop())
	a := newTestClient(1)
	b := newTestClient(1)
	h.Register(a)
	h.Register(b)

	h.SendToConnections([]string{a.ID, "unknown"}, Envelope{Event: EventUpdateFriend})

	e := recvEnvelope(t, a)
	assert.Equal(t, EventUpdateFriend, e.Event)
	assertNoFrame(t, b)
}

func TestSendAfterUnregisterIsDropped(t *testing.T) {
	h := New(logger.NewNop())
	c := newTestClient(1)
	h.Register(c)
	h.Unregister(c)

	// must not panic on the closed queue
	c.Send(Envelope{Event: EventNewMessage})
}

func TestConcurrentUnregisterAndSend(t *testing.T) {
	// A fan-out snapshots its targets before delivering, so a target can be
	// unregistered between the snapshot and the send. The delivery must be
	// dropped, never panic.
	for i := 0; i < 1000; i++ {
		h := New(logger.NewNop())
		c := newTestClient(1)
		h.Register(c)

		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			h.SendToConnections([]string{c.ID}, Envelope{Event: EventUpdateFriend})
		}()
		go func() {
			defer wg.Done()
			<-start
			h.Unregister(c)
		}()
		close(start)
		wg.Wait()
	}
}

func TestSendDropsWhenQueueFull(t *testing.T) {
	c := newTestClient(1)
	for i := 0; i < cap(c.send)+10; i++ {
		c.Send(Envelope{Event: EventNewMessage, Data: i})
	}
	assert.Len(t, c.send, cap(c.send))
}

type fakeReadConn struct {
	deadlines []time.Time
	pong      func(string) error
}

func (f *fakeReadConn) SetReadDeadline(t time.Time) error {
	f.deadlines = append(f.deadlines, t)
	return nil
}

func (f *fakeReadConn) SetPongHandler(h func(string) error) { f.pong = h }

func TestArmReadDeadlineExtendsOnPong(t *testing.T) {
	f := &fakeReadConn{}
	before := time.Now()

	armReadDeadline(f)

	require.Len(t, f.deadlines, 1)
	assert.False(t, f.deadlines[0].Before(before.Add(readTimeout)))

	require.NotNil(t, f.pong)
	require.NoError(t, f.pong(""))
	require.Len(t, f.deadlines, 2)
	assert.False(t, f.deadlines[1].Before(f.deadlines[0]))
}
