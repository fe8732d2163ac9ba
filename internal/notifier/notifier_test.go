package notifier

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent map[int64][]string
	fail map[int64]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[int64][]string), fail: make(map[int64]bool)}
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[chatID] {
		return errors.New("send failed")
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func TestSubscribeToggles(t *testing.T) {
	subs := NewSubscribers()

	assert.True(t, subs.Subscribe(1), "first subscribe adds")
	assert.False(t, subs.Subscribe(1), "second subscribe is a no-op")

	assert.True(t, subs.Unsubscribe(1), "unsubscribe removes")
	assert.False(t, subs.Unsubscribe(1), "second unsubscribe is a no-op")
	assert.False(t, subs.Unsubscribe(2), "unknown user is not subscribed")
}

func TestSubscribersConcurrentAccess(t *testing.T) {
	subs := NewSubscribers()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			subs.Subscribe(id)
			subs.IDs()
			if id%2 == 0 {
				subs.Unsubscribe(id)
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Len(t, subs.IDs(), 25)
}

func TestJobNotifiesAllSubscribers(t *testing.T) {
	subs := NewSubscribers()
	subs.Subscribe(1)
	subs.Subscribe(2)
	subs.Subscribe(3)
	subs.Unsubscribe(2)

	sender := newFakeSender()
	s := New(subs, sender, "12:00")
	s.job()

	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{ReminderText}, sender.sent[1])
	assert.Equal(t, []string{ReminderText}, sender.sent[3])
	assert.Empty(t, sender.sent[2])
}

func TestJobContinuesAfterFailedSend(t *testing.T) {
	subs := NewSubscribers()
	subs.Subscribe(1)
	subs.Subscribe(2)

	sender := newFakeSender()
	sender.fail[1] = true

	s := New(subs, sender, "12:00")
	s.job()

	assert.Equal(t, []string{ReminderText}, sender.sent[2], "one failed send must not block the rest")
}

func TestSchedulerStartStop(t *testing.T) {
	s := New(NewSubscribers(), newFakeSender(), "12:00")
	require.NoError(t, s.Start())
	s.Stop()
}

func TestSchedulerRejectsBadTime(t *testing.T) {
	s := New(NewSubscribers(), newFakeSender(), "not-a-time")
	assert.Error(t, s.Start())
}
