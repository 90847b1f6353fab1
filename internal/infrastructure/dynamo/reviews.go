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

// ReviewRepo provides typed DynamoDB operations for the reviews table.
type ReviewRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewReviewRepo(client *dynamodb.Client, tableName string) *ReviewRepo {
	return &ReviewRepo{client: client, tableName: tableName}
}

func (r *ReviewRepo) Put(ctx context.Context, rev *domain.Review) error {
	item, err := attributevalue.MarshalMap(rev)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ReviewRepo) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("review_id", reviewID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, domain.ErrNotFound)
	}
	var rev domain.Review
	if err := attributevalue.UnmarshalMap(out.Item, &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

// GetByOrder looks up the review attached to an order, if any. Reviews are
// one-per-order, enforced by the review service before Put.
func (r *ReviewRepo) GetByOrder(ctx context.Context, orderID string) (*domain.Review, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("order_id-index"),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("review for order %s: %w", orderID, domain.ErrNotFound)
	}
	var rev domain.Review
	if err := attributevalue.UnmarshalMap(out.Items[0], &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListAll returns every review, newest first. ULID review ids sort by
// creation time, so sorting happens client-side on the id.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]domain.Review, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	var reviews []domain.Review
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		var batch []domain.Review
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &batch); err != nil {
			return nil, err
		}
		reviews = append(reviews, batch...)
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return reviews, nil
}
