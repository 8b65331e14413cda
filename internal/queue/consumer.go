package queue

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/sirupsen/logrus"
)

// Receiver is the consumer-side view of SQSClient.
type Receiver interface {
	ReceiveMessages(ctx context.Context, queueURL string, maxMessages, waitSeconds int32) ([]types.Message, error)
	DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error
}

// HandlerFunc processes one message body. Returning an error keeps the
// message on the queue for redelivery.
type HandlerFunc func(ctx context.Context, body []byte) error

// Consumer long-polls one queue and hands each message to a handler.
type Consumer struct {
	receiver    Receiver
	queueURL    string
	handler     HandlerFunc
	logger      *logrus.Logger
	maxMessages int32
	waitSeconds int32
	retryDelay  time.Duration
}

type ConsumerOption func(*Consumer)

func WithBatch(maxMessages, waitSeconds int32) ConsumerOption {
	return func(c *Consumer) {
		c.maxMessages = maxMessages
		c.waitSeconds = waitSeconds
	}
}

func WithRetryDelay(d time.Duration) ConsumerOption {
	return func(c *Consumer) { c.retryDelay = d }
}

func NewConsumer(receiver Receiver, queueURL string, handler HandlerFunc, logger *logrus.Logger, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		receiver:    receiver,
		queueURL:    queueURL,
		handler:     handler,
		logger:      logger,
		maxMessages: 10,
		waitSeconds: 20,
		retryDelay:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run polls until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.WithField("queue", c.queueURL).Info("Consumer started")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Consumer stopping")
			return
		default:
		}

		msgs, err := c.receiver.ReceiveMessages(ctx, c.queueURL, c.maxMessages, c.waitSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.WithError(err).Warn("Error receiving messages")
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}
		c.handleBatch(ctx, msgs)
	}
}

func (c *Consumer) handleBatch(ctx context.Context, msgs []types.Message) {
	for _, msg := range msgs {
		body := ""
		if msg.Body != nil {
			body = *msg.Body
		}
		if err := c.handler(ctx, []byte(body)); err != nil {
			c.logger.WithError(err).Error("Failed to process message")
			continue
		}
		if err := c.receiver.DeleteMessage(ctx, c.queueURL, msg.ReceiptHandle); err != nil {
			c.logger.WithError(err).Warn("Failed to delete message")
		}
	}
}
