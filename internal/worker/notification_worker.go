package worker

import (
	"context"
	"metro-ticketing/internal/queue"
	"metro-ticketing/pkg/logger"

	"go.uber.org/zap"
)

// Sender 把通知送到乘客手上。實際的郵件/簡訊閘道不在本服務範圍，
// 預設實作只寫結構化日誌。
type Sender interface {
	Send(ctx context.Context, notification *queue.Notification) error
}

type LogSender struct{}

func NewLogSender() Sender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, notification *queue.Notification) error {
	logger.WithComponent("mailer").Info("notification delivered",
		zap.String("recipient", notification.Recipient),
		zap.String("subject", notification.Subject),
	)
	return nil
}

type NotificationWorker interface {
	// 訂閱通知隊列
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	sender Sender
	queue  queue.NotificationQueue
}

func NewNotificationWorker(sender Sender, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		sender: sender,
		queue:  queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeNotifications(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := w.sender.Send(ctx, msg.Data); err != nil {
				// 寄送閘道暫時有問題就重試
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
