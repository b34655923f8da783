package db

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/pkg/errors"
)

const (
	DefaultDynamoEndpoint = "http://localhost:8000"
	DefaultDynamoTable    = "musixbooth-settings"
)

// DynamoStore keeps the tempo in a table keyed by a string attribute "PK",
// the same layout DynamoDB Local is usually seeded with.
type DynamoStore struct {
	client *dynamodb.DynamoDB
	table  string
}

func NewDynamoStore(endpoint, region, table string) (*DynamoStore, error) {
	if endpoint == "" {
		endpoint = DefaultDynamoEndpoint
	}
	if region == "" {
		region = "localhost"
	}
	if table == "" {
		table = DefaultDynamoTable
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating DynamoDB session")
	}
	return &DynamoStore{client: dynamodb.New(sess), table: table}, nil
}

func (s *DynamoStore) key() map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(TempoKey)},
	}
}

func (s *DynamoStore) SaveTempo(ctx context.Context, bpm int) error {
	item := s.key()
	item["BPM"] = &dynamodb.AttributeValue{N: aws.String(strconv.Itoa(bpm))}
	_, err := s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrap(err, "saving tempo to DynamoDB")
}

func (s *DynamoStore) LoadTempo(ctx context.Context) (int, error) {
	res, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(),
	})
	if err != nil {
		return 0, errors.Wrap(err, "loading tempo from DynamoDB")
	}
	v, ok := res.Item["BPM"]
	if !ok || v.N == nil {
		return 0, ErrNoTempo
	}
	bpm, err := strconv.Atoi(*v.N)
	if err != nil {
		return 0, errors.Wrapf(err, "stored tempo %q", *v.N)
	}
	return bpm, nil
}

func (s *DynamoStore) Close() error {
	return nil
}
