package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"metro-ticketing/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	failures int // 前 N 次呼叫回傳錯誤
	sent     []*queue.Notification
}

func (s *recordingSender) Send(ctx context.Context, notification *queue.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("gateway unavailable")
	}
	s.sent = append(s.sent, notification)
	return nil
}

func (s *recordingSender) delivered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestNotificationWorker_DeliversPublishedNotifications(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewNotificationQueue(10)
	sender := &recordingSender{}
	worker := NewNotificationWorker(sender, q)

	require.NoError(t, worker.Start(ctx))

	notification := &queue.Notification{Recipient: "rider@example.com", Subject: "s", Body: "b"}
	require.NoError(t, q.PublishNotification(ctx, notification))

	assert.Eventually(t, func() bool {
		return sender.delivered() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationWorker_RetriesAfterSendFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewNotificationQueue(10)
	sender := &recordingSender{failures: 2}
	worker := NewNotificationWorker(sender, q)

	require.NoError(t, worker.Start(ctx))

	require.NoError(t, q.PublishNotification(ctx, &queue.Notification{Recipient: "rider@example.com"}))

	// 失敗兩次後第三次送達
	assert.Eventually(t, func() bool {
		return sender.delivered() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
