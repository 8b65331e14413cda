package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go/middleware"
	"github.com/stretchr/testify/assert"
)

// Mock middleware to return specific output or error
func mockSQSMiddleware(output interface{}, err error) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Finalize.Add(
			middleware.FinalizeMiddlewareFunc("MockMiddleware", func(context.Context, middleware.FinalizeInput, middleware.FinalizeHandler) (middleware.FinalizeOutput, middleware.Metadata, error) {
				return middleware.FinalizeOutput{
					Result: output,
				}, middleware.Metadata{}, err
			}),
			middleware.Before,
		)
	}
}

func newStubClient(output interface{}, err error) *SQSClient {
	client := sqs.NewFromConfig(aws.Config{Region: "us-east-1"}, func(o *sqs.Options) {
		o.APIOptions = append(o.APIOptions, mockSQSMiddleware(output, err))
	})
	return NewSQSClient(client)
}

func TestSQSClient_SendMessage(t *testing.T) {
	repo := newStubClient(&sqs.SendMessageOutput{}, nil)
	err := repo.SendMessage(context.TODO(), "queue-url", map[string]string{"key": "value"})
	assert.NoError(t, err)

	repoErr := newStubClient(nil, errors.New("aws error"))
	err = repoErr.SendMessage(context.TODO(), "queue-url", map[string]string{"key": "value"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send message")
}

func TestSQSClient_SendMessage_MarshalError(t *testing.T) {
	repo := newStubClient(&sqs.SendMessageOutput{}, nil)

	// Channel cannot be marshaled to JSON
	msg := map[string]interface{}{
		"key": make(chan int),
	}

	err := repo.SendMessage(context.TODO(), "queue-url", msg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal message")
}

func TestSQSClient_ReceiveMessages(t *testing.T) {
	output := &sqs.ReceiveMessageOutput{
		Messages: []types.Message{
			{Body: aws.String(`{"key":"value"}`), ReceiptHandle: aws.String("handle")},
		},
	}
	repo := newStubClient(output, nil)
	msgs, err := repo.ReceiveMessages(context.TODO(), "queue-url", 10, 20)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(msgs))

	repoErr := newStubClient(nil, errors.New("aws error"))
	_, err = repoErr.ReceiveMessages(context.TODO(), "queue-url", 10, 20)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to receive messages")
}

func TestSQSClient_DeleteMessage(t *testing.T) {
	handle := "receipt-handle"

	repo := newStubClient(&sqs.DeleteMessageOutput{}, nil)
	assert.NoError(t, repo.DeleteMessage(context.TODO(), "queue-url", &handle))

	repoErr := newStubClient(nil, errors.New("aws error"))
	err := repoErr.DeleteMessage(context.TODO(), "queue-url", &handle)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete message")
}

func TestSQSClient_DeleteMessages(t *testing.T) {
	msgs := []types.Message{
		{MessageId: aws.String("1"), ReceiptHandle: aws.String("h1")},
		{ReceiptHandle: aws.String("h2")},
	}

	repo := newStubClient(&sqs.DeleteMessageBatchOutput{}, nil)
	assert.NoError(t, repo.DeleteMessages(context.TODO(), "queue-url", msgs))
	assert.NoError(t, repo.DeleteMessages(context.TODO(), "queue-url", nil))

	partial := newStubClient(&sqs.DeleteMessageBatchOutput{
		Failed: []types.BatchResultErrorEntry{{Id: aws.String("1")}},
	}, nil)
	err := partial.DeleteMessages(context.TODO(), "queue-url", msgs)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete 1 of 2 messages")
}
