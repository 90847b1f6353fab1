package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/daeseda/laundry-api/internal/domain"
)

// NoticeRepo stores per-user notices created on order status changes.
type NoticeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNoticeRepo(client *dynamodb.Client, tableName string) *NoticeRepo {
	return &NoticeRepo{client: client, tableName: tableName}
}

func (r *NoticeRepo) Put(ctx context.Context, n *domain.OrderNotice) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListUnread returns the unread notices for a user, newest first.
func (r *NoticeRepo) ListUnread(ctx context.Context, userID string) ([]domain.OrderNotice, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-created_at-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		FilterExpression:       aws.String("#r = :unread"),
		ExpressionAttributeNames: map[string]string{
			"#r": "read",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid":    &types.AttributeValueMemberS{Value: userID},
			":unread": &types.AttributeValueMemberBOOL{Value: false},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var notices []domain.OrderNotice
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}
