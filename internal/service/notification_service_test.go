package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuedDispatcherPersistsBatch(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewQueuedDispatcher(repo)
	d.Start()

	d.Send([]uint{1, 2}, "Payment received", "You are enrolled.", "payment_succeeded", nil)
	d.Stop() // drains the queue before returning

	require.Len(t, repo.created, 2)
	assert.Equal(t, uint(1), repo.created[0].UserID)
	assert.Equal(t, "payment_succeeded", repo.created[0].Type)
}

func TestQueuedDispatcherSendAfterStop(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewQueuedDispatcher(repo)
	d.Start()

	d.Send([]uint{1}, "t", "b", "payment_succeeded", nil)
	d.Stop()

	// The server keeps handling requests while workers shut down; a late
	// send is dropped instead of panicking on the closed queue.
	d.Send([]uint{2}, "t", "b", "payment_succeeded", nil)
	d.Stop() // second stop is a no-op

	assert.Len(t, repo.created, 1)
}
