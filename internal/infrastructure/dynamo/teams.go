package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/search-team-api/internal/domain"
)

// TeamRepo provides typed DynamoDB operations for the teams table.
// PK: team_id. Owner and member names are stored denormalized.
type TeamRepo struct {
	client    API
	tableName string
}

func NewTeamRepo(client API, tableName string) *TeamRepo {
	return &TeamRepo{client: client, tableName: tableName}
}

func (r *TeamRepo) Create(ctx context.Context, t *domain.Team) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal team: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(" + attrTeamID + ")"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("team %s exists: %w", t.TeamID, domain.ErrConflict)
	}
	return err
}

func (r *TeamRepo) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(attrTeamID, teamID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("team not found: %w", domain.ErrNotFound)
	}
	var t domain.Team
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// All returns every team in creation order (ULID order).
func (r *TeamRepo) All(ctx context.Context) ([]domain.Team, error) {
	teams := []domain.Team{}
	if err := scanAll(ctx, r.client, r.tableName, &teams); err != nil {
		return nil, err
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].TeamID < teams[j].TeamID })
	return teams, nil
}

// Update applies a partial update to an existing team. updates is not
// modified.
func (r *TeamRepo) Update(ctx context.Context, teamID string, updates map[string]interface{}) error {
	err := updateExisting(ctx, r.client, r.tableName, attrTeamID, teamID, updates)
	if isConditionFailed(err) {
		return fmt.Errorf("team not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *TeamRepo) Delete(ctx context.Context, teamID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(attrTeamID, teamID),
	})
	return err
}
