package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	failNext bool
	closed   bool
}

func (c *fakeClient) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNext {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.messages...)
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHubBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	good := &fakeClient{}
	broken := &fakeClient{failNext: true}
	require.True(t, hub.Join(good))
	require.True(t, hub.Join(broken))
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 5*time.Millisecond)

	hub.Publish(Event{Type: "stock_update", Action: "product_created", Message: "created"})

	require.Eventually(t, func() bool { return len(good.received()) == 1 }, time.Second, 5*time.Millisecond)
	var ev Event
	require.NoError(t, json.Unmarshal(good.received()[0], &ev))
	assert.Equal(t, "product_created", ev.Action)

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, broken.isClosed(), "failing client is dropped")

	hub.Leave(good)
	require.Eventually(t, good.isClosed, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, hub.Count())

	cancel()
	<-done
}

func TestHubRunClosesClientsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &fakeClient{}
	hub.Register <- c
	cancel()
	<-done

	assert.True(t, c.isClosed())
	assert.Equal(t, 0, hub.Count())
}

func TestHubJoinAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	returned := make(chan bool, 1)
	go func() {
		c := &fakeClient{}
		joined := hub.Join(c)
		hub.Leave(c)
		hub.Publish(Event{Type: "stock_update", Action: "product_deleted"})
		returned <- joined
	}()

	select {
	case joined := <-returned:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("Join or Leave blocked after the hub stopped")
	}
	assert.Equal(t, 0, hub.Count())
}
