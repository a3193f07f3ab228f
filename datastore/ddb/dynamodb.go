/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/entityseed/datastore"
	"github.com/suparena/entityseed/errors"
	"github.com/suparena/entityseed/registry"
)

// EntityTypeAttribute is the attribute holding the entity name on every stored item.
const EntityTypeAttribute = "EntityType"

// PutItemAPI is the subset of the DynamoDB client used for seeding.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
}

// Options configures a DynamoDB connection.
type Options struct {
	Region    string
	AccessKey string
	SecretKey string
	Table     string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// Connection implements datastore.Connection on a single DynamoDB table.
type Connection struct {
	client    PutItemAPI
	tableName string
	indexMaps registry.IndexMaps
	logger    *zap.Logger
}

var (
	_ datastore.Connection        = (*Connection)(nil)
	_ datastore.IndexMapRegistrar = (*Connection)(nil)
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// New wraps an existing client.
func New(client PutItemAPI, tableName string, logger *zap.Logger) *Connection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connection{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, opts Options) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// Open creates a client from opts and returns a connection on opts.Table.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Connection, error) {
	if opts.Table == "" {
		return nil, errors.NewValidationError("table", "dynamodb table name is required")
	}
	client, err := NewDynamoDBClient(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	conn := New(client, opts.Table, logger)
	conn.logger.Info("DynamoDB client initialized",
		zap.String("table", opts.Table), zap.String("region", opts.Region))
	return conn, nil
}

func (d *Connection) Name() string { return "dynamodb" }

func (d *Connection) EntityManager() datastore.EntityManager { return d }

// Close is a no-op; the SDK client holds no connection state.
func (d *Connection) Close() error { return nil }

// RegisterIndexMap sets the key templates used when saving entity.
func (d *Connection) RegisterIndexMap(entity string, indexMap map[string]string) {
	d.indexMaps.RegisterIndexMap(entity, indexMap)
}

// IndexMaps exposes the connection's index map registry.
func (d *Connection) IndexMaps() *registry.IndexMaps {
	return &d.indexMaps
}

// Save stores v with its key attributes expanded from the entity's index map.
func (d *Connection) Save(ctx context.Context, entity string, v any) error {
	indexMap, ok := d.indexMaps.GetIndexMap(entity)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrNoIndexMap, entity)
	}

	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: entity}

	for k, expanded := range expandMacros(indexMap, av) {
		av[k] = &types.AttributeValueMemberS{Value: expanded}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.Debug("item stored", zap.String("entity", entity), zap.String("table", d.tableName))
	return nil
}

// expandMacros replaces every {field} in the index map templates with the
// string form of the matching attribute. Unknown or non-scalar attributes expand to "".
func expandMacros(indexMap map[string]string, av map[string]types.AttributeValue) map[string]string {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
	}

	return res
}
