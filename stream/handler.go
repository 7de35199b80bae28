// Package stream provides DynamoDB Streams handlers for cascade restores.
package stream

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lazarus/dynamostore"
	"github.com/jacentio/lazarus/restore"
)

// Handler processes DynamoDB stream events for cascade restores.
//
// When wiring a Lambda around it, build the store with a nil bus: recursion
// is already emergent through the stream, because each child restore removes
// its own delete marker and produces its own MODIFY event.
type Handler struct {
	store  *dynamostore.Store
	engine *restore.Engine
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(store *dynamostore.Store, engine *restore.Engine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// HandleCascadeRestore processes DynamoDB stream events, cascading each
// observed restore to the restored record's declared relationships.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleCascadeRestore(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	// Only process MODIFY events where the delete marker was cleared
	if record.EventName != "MODIFY" {
		return nil
	}

	oldDeleted := getNumberAttr(record.Change.OldImage, "deleted_at")
	newDeleted := getNumberAttr(record.Change.NewImage, "deleted_at")

	// Only process when the marker was present and is now gone
	if oldDeleted == 0 || newDeleted != 0 {
		return nil
	}

	entityRef := getStringAttr(record.Change.NewImage, "entity_ref")
	entityType := getStringAttr(record.Change.NewImage, "entity_type")
	if entityType == "" {
		entityType = typeFromRef(entityRef)
	}
	table := tableFromARN(record.EventSourceArn)

	h.logger.Info("processing cascade restore",
		"entityRef", entityRef,
		"table", table,
		"deletedAt", oldDeleted,
	)

	// The item's marker is already gone; the cascade compares children
	// against the marker as of the restoring moment, taken from the old image.
	deletedAt := time.Unix(oldDeleted, 0).UTC()
	rec := h.store.NewRecord(table, ConvertStreamKey(record.Change.Keys), entityType, entityRef, &deletedAt)

	if err := h.engine.OnRestoring(ctx, rec); err != nil {
		return err
	}

	h.logger.Info("cascade restore completed", "entityRef", entityRef)
	return nil
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok {
		return v.String()
	}
	return ""
}

// getNumberAttr extracts a number attribute from a DynamoDB stream image.
func getNumberAttr(image map[string]events.DynamoDBAttributeValue, key string) int64 {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeNumber {
			n, _ := strconv.ParseInt(v.Number(), 10, 64)
			return n
		}
	}
	return 0
}

// typeFromRef derives the entity type from a type-qualified reference
// ("posts#p1" -> "posts").
func typeFromRef(ref string) string {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i]
	}
	return ref
}

// tableFromARN extracts the table name from a stream event source ARN
// (arn:aws:dynamodb:region:account:table/NAME/stream/LABEL).
func tableFromARN(arn string) string {
	parts := strings.Split(arn, "/")
	if len(parts) >= 2 && strings.HasSuffix(parts[0], ":table") {
		return parts[1]
	}
	return ""
}

// ConvertStreamKey converts a DynamoDB stream key to a dynamostore.PK.
// Use this when you need to convert keys from stream records to store
// operations.
func ConvertStreamKey(streamKey map[string]events.DynamoDBAttributeValue) dynamostore.PK {
	result := make(dynamostore.PK)
	for k, v := range streamKey {
		switch v.DataType() {
		case events.DataTypeString:
			result[k] = &types.AttributeValueMemberS{Value: v.String()}
		case events.DataTypeNumber:
			result[k] = &types.AttributeValueMemberN{Value: v.Number()}
		case events.DataTypeBinary:
			result[k] = &types.AttributeValueMemberB{Value: v.Binary()}
		}
	}
	return result
}
