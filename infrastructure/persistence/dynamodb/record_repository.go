package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"inventory-backend/application/ports"
	"inventory-backend/domain/inventory"
	apperrors "inventory-backend/pkg/errors"
	"inventory-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// DBClient is the subset of the DynamoDB API the repository calls.
// *dynamodb.Client satisfies it; tests substitute a stub.
type DBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// RecordRepository implements ports.RecordRepository on a DynamoDB table
// keyed by id with a secondary index on inventory_id.
type RecordRepository struct {
	client    DBClient
	tableName string
	indexName string
	logger    *zap.Logger
	tracer    *observability.Tracer
	metrics   *observability.Collector
}

var _ ports.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(
	client DBClient,
	tableName string,
	indexName string,
	logger *zap.Logger,
	tracer *observability.Tracer,
	metrics *observability.Collector,
) *RecordRepository {
	return &RecordRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
		tracer:    tracer,
		metrics:   metrics,
	}
}

// Create puts the record under its identifier
func (r *RecordRepository) Create(ctx context.Context, record inventory.Record) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	err = r.trace(ctx, "PutItem", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		})
		return err
	})
	if err != nil {
		return r.storeError("put", err, zap.String("id", record.ID))
	}

	r.logger.Debug("Record saved", zap.String("id", record.ID))
	return nil
}

// Get fetches a single record by identifier
func (r *RecordRepository) Get(ctx context.Context, id string) (*inventory.Record, error) {
	var out *dynamodb.GetItemOutput
	err := r.trace(ctx, "GetItem", func(ctx context.Context) error {
		var err error
		out, err = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key:       recordKey(id),
		})
		return err
	})
	if err != nil {
		return nil, r.storeError("get", err, zap.String("id", id))
	}

	if out == nil || len(out.Item) == 0 {
		return nil, apperrors.NewNotFoundError("record")
	}

	var record inventory.Record
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &record, nil
}

// Update sets the fields carried by update on an existing record and
// returns the full record after the write.
func (r *RecordRepository) Update(ctx context.Context, id string, update inventory.RecordUpdate) (*inventory.Record, error) {
	fields := update.Fields()
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("update contains no mutable fields")
	}

	var updateExpr expression.UpdateBuilder
	for _, field := range fields {
		updateExpr = updateExpr.Set(expression.Name(field.Name), expression.Value(field.Value))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(updateExpr).
		WithCondition(expression.Name(inventory.AttrID).AttributeExists()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	var out *dynamodb.UpdateItemOutput
	err = r.trace(ctx, "UpdateItem", func(ctx context.Context) error {
		var err error
		out, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(r.tableName),
			Key:                       recordKey(id),
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ReturnValues:              types.ReturnValueAllNew,
		})
		return err
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, apperrors.NewNotFoundError("record")
		}
		return nil, r.storeError("update", err, zap.String("id", id))
	}

	var record inventory.Record
	if out != nil {
		if err := attributevalue.UnmarshalMap(out.Attributes, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
	}

	r.logger.Debug("Record updated", zap.String("id", id), zap.Int("fields", len(fields)))
	return &record, nil
}

// Delete removes the record with the given identifier
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name(inventory.AttrID).AttributeExists()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build condition expression: %w", err)
	}

	err = r.trace(ctx, "DeleteItem", func(ctx context.Context) error {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                aws.String(r.tableName),
			Key:                      recordKey(id),
			ConditionExpression:      expr.Condition(),
			ExpressionAttributeNames: expr.Names(),
		})
		return err
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return apperrors.NewNotFoundError("record")
		}
		return r.storeError("delete", err, zap.String("id", id))
	}

	r.logger.Debug("Record deleted", zap.String("id", id))
	return nil
}

// QueryByInventoryID reads every page of the inventory_id index for the value
func (r *RecordRepository) QueryByInventoryID(ctx context.Context, inventoryID float64) ([]inventory.Record, error) {
	keyExpr := expression.Key(inventory.AttrInventoryID).Equal(expression.Value(inventoryID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build key condition: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	records := make([]inventory.Record, 0)
	err = r.trace(ctx, "Query", func(ctx context.Context) error {
		paginator := dynamodb.NewQueryPaginator(r.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}
			var items []inventory.Record
			if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
				return fmt.Errorf("failed to unmarshal records: %w", err)
			}
			records = append(records, items...)
		}
		return nil
	})
	if err != nil {
		return nil, r.storeError("query", err, zap.Float64("inventoryID", inventoryID))
	}

	return records, nil
}

// Scan reads every page of the table
func (r *RecordRepository) Scan(ctx context.Context) ([]inventory.Record, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	records := make([]inventory.Record, 0)
	err := r.trace(ctx, "Scan", func(ctx context.Context) error {
		paginator := dynamodb.NewScanPaginator(r.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}
			var items []inventory.Record
			if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
				return fmt.Errorf("failed to unmarshal records: %w", err)
			}
			records = append(records, items...)
		}
		return nil
	})
	if err != nil {
		return nil, r.storeError("scan", err)
	}

	return records, nil
}

func (r *RecordRepository) trace(ctx context.Context, operation string, fn func(context.Context) error) error {
	err := r.tracer.TraceFunction(ctx, "dynamodb."+operation, func(ctx context.Context) error {
		r.tracer.AddAnnotation(ctx, "table", r.tableName)
		r.tracer.AddAnnotation(ctx, "operation", operation)
		return fn(ctx)
	})
	r.metrics.ObserveStoreOperation(operation, err)
	return err
}

// storeError logs the failure with the AWS error code when there is one and
// wraps it as a database error.
func (r *RecordRepository) storeError(operation string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.String("errorCode", apiErr.ErrorCode()))
	}

	r.logger.Error("DynamoDB operation failed", fields...)
	return apperrors.NewDatabaseError(operation, err)
}

func recordKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		inventory.AttrID: &types.AttributeValueMemberS{Value: id},
	}
}
