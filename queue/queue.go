package queue

import (
	"context"
	"fmt"

	"dlist/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_queue.go -package=mocks dlist/queue Queue

// Queue carries serialized list commands between clients and the server.
type Queue interface {
	Receive(ctx context.Context, maxMessages, waitSeconds int64) ([]*sqs.Message, error)
	Delete(ctx context.Context, receiptHandle *string) error
	Send(ctx context.Context, groupID string, body string) error
}

type SQSQueue struct {
	api sqsiface.SQSAPI
	url string
}

func NewSession(conf *config.AWSsqsConfig) (*session.Session, error) {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(conf.Region),
		Credentials: credentials.NewStaticCredentials(conf.ClientId, conf.ClientSecret, conf.ClientToken),
	}))

	if _, err := sess.Config.Credentials.Get(); err != nil {
		return nil, fmt.Errorf("cannot assign session with credentials: %w", err)
	}

	return sess, nil
}

func New(conf *config.AWSsqsConfig) (*SQSQueue, error) {
	sess, err := NewSession(conf)
	if err != nil {
		return nil, err
	}

	return NewWithAPI(sqs.New(sess), conf.QueueUrl), nil
}

func NewWithAPI(api sqsiface.SQSAPI, queueUrl string) *SQSQueue {
	return &SQSQueue{api: api, url: queueUrl}
}

func (q *SQSQueue) Receive(ctx context.Context, maxMessages, waitSeconds int64) ([]*sqs.Message, error) {
	msgResult, err := q.api.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		AttributeNames: []*string{
			aws.String(sqs.MessageSystemAttributeNameSentTimestamp),
		},
		MessageAttributeNames: []*string{
			aws.String(sqs.QueueAttributeNameAll),
		},
		QueueUrl:            aws.String(q.url),
		MaxNumberOfMessages: aws.Int64(maxMessages),
		WaitTimeSeconds:     aws.Int64(waitSeconds),
	})
	if err != nil {
		return nil, err
	}

	return msgResult.Messages, nil
}

func (q *SQSQueue) Delete(ctx context.Context, receiptHandle *string) error {
	_, err := q.api.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.url),
		ReceiptHandle: receiptHandle,
	})
	return err
}

// Send publishes body on a FIFO queue. Messages sharing groupID are
// delivered in the order they were sent.
func (q *SQSQueue) Send(ctx context.Context, groupID string, body string) error {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	_, err = q.api.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		DelaySeconds:           aws.Int64(0),
		MessageBody:            aws.String(body),
		QueueUrl:               aws.String(q.url),
		MessageGroupId:         aws.String(groupID),
		MessageDeduplicationId: aws.String(id.String()),
	})
	return err
}
