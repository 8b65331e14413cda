package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"social-scraper/workers/scraper/domain"
)

type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// RunStatusStore records run lifecycle in a DynamoDB table keyed by run_id.
type RunStatusStore struct {
	client    DynamoDBAPI
	tableName string
}

func NewRunStatusStore(client DynamoDBAPI, tableName string) *RunStatusStore {
	return &RunStatusStore{client: client, tableName: tableName}
}

func (d *RunStatusStore) StartRun(ctx context.Context, runID, command string, startedAt time.Time) error {
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item: map[string]types.AttributeValue{
			"run_id":     &types.AttributeValueMemberS{Value: runID},
			"command":    &types.AttributeValueMemberS{Value: command},
			"status":     &types.AttributeValueMemberS{Value: domain.StatusRunning},
			"started_at": &types.AttributeValueMemberS{Value: startedAt.UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create run %s in DynamoDB: %w", runID, err)
	}
	return nil
}

// CompleteRun marks the run COMPLETED and stores per-platform record counts.
func (d *RunStatusStore) CompleteRun(ctx context.Context, runID string, counts map[string]int, completedAt time.Time) error {
	countAttrs := make(map[string]types.AttributeValue, len(counts))
	for platform, n := range counts {
		countAttrs[platform] = &types.AttributeValueMemberN{Value: strconv.Itoa(n)}
	}

	_, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"run_id": &types.AttributeValueMemberS{Value: runID},
		},
		UpdateExpression: aws.String("SET #s = :status, completed_at = :cat, record_counts = :counts"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: domain.StatusCompleted},
			":cat":    &types.AttributeValueMemberS{Value: completedAt.UTC().Format(time.RFC3339)},
			":counts": &types.AttributeValueMemberM{Value: countAttrs},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to complete run %s in DynamoDB: %w", runID, err)
	}
	return nil
}
