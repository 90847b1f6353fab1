package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/daeseda/laundry-api/internal/domain"
)

// Catalog rows share one table, discriminated by the kind attribute.
const (
	kindCategory = "category"
	kindCloth    = "cloth"
)

// catalogRow reads just the discriminator attributes of a catalog item.
type catalogRow struct {
	ItemID string `dynamodbav:"item_id"`
	Kind   string `dynamodbav:"kind"`
}

// CatalogRepo stores the order-form reference data: service categories and
// priced clothing items.
type CatalogRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCatalogRepo(client *dynamodb.Client, tableName string) *CatalogRepo {
	return &CatalogRepo{client: client, tableName: tableName}
}

func (r *CatalogRepo) PutCategory(ctx context.Context, c *domain.ServiceCategory) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal category: %w", err)
	}
	item["item_id"] = mustMarshal(c.CategoryID)
	item["kind"] = mustMarshal(kindCategory)
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CatalogRepo) PutCloth(ctx context.Context, c *domain.Cloth) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal cloth: %w", err)
	}
	item["item_id"] = mustMarshal(c.ClothID)
	item["kind"] = mustMarshal(kindCloth)
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Load reads the full catalog in one scan and splits it by kind.
func (r *CatalogRepo) Load(ctx context.Context) (*domain.OrderForm, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	form := &domain.OrderForm{}
	for _, raw := range out.Items {
		var row catalogRow
		if err := attributevalue.UnmarshalMap(raw, &row); err != nil {
			return nil, err
		}
		switch row.Kind {
		case kindCategory:
			var c domain.ServiceCategory
			if err := attributevalue.UnmarshalMap(raw, &c); err != nil {
				return nil, err
			}
			form.Categories = append(form.Categories, c)
		case kindCloth:
			var c domain.Cloth
			if err := attributevalue.UnmarshalMap(raw, &c); err != nil {
				return nil, err
			}
			form.Clothes = append(form.Clothes, c)
		}
	}
	return form, nil
}

// GetCloth fetches a single clothing item by id.
func (r *CatalogRepo) GetCloth(ctx context.Context, clothID string) (*domain.Cloth, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("item_id", clothID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("cloth %s: %w", clothID, domain.ErrNotFound)
	}
	var c domain.Cloth
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
