package domain

import "time"

// Stored team attribute names. Partial updates key on these.
const (
	TeamFieldName        = "name"
	TeamFieldDescription = "description"
	TeamFieldOwner       = "owner"
	TeamFieldType        = "team_type"
	TeamFieldCompleted   = "completed"
	TeamFieldMembers     = "members"
)

type TeamOwner struct {
	UserID   string `json:"id" dynamodbav:"user_id"`
	FullName string `json:"full_name" dynamodbav:"full_name"`
}

type TeamType struct {
	Name string `json:"name" dynamodbav:"name"`
}

type TeamMember struct {
	UserID string `json:"id" dynamodbav:"user_id"`
	Name   string `json:"name" dynamodbav:"name"`
}

type Team struct {
	TeamID      string       `json:"id" dynamodbav:"team_id"`
	Name        string       `json:"name" dynamodbav:"name"`
	Description string       `json:"description" dynamodbav:"description"`
	Owner       TeamOwner    `json:"owner" dynamodbav:"owner"`
	Type        TeamType     `json:"team_type" dynamodbav:"team_type"`
	Completed   bool         `json:"completed" dynamodbav:"completed"`
	Members     []TeamMember `json:"members" dynamodbav:"members"`
	CreatedAt   time.Time    `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time    `json:"updated" dynamodbav:"updated_at"`
}

// TeamSummary is the projection returned by team search.
type TeamSummary struct {
	TeamID string    `json:"id"`
	Name   string    `json:"name"`
	Owner  TeamOwner `json:"owner"`
}

type CreateTeamRequest struct {
	Name        string   `json:"name" validate:"required,max=128"`
	Description string   `json:"description"`
	OwnerID     string   `json:"owner_id" validate:"required"`
	TypeName    string   `json:"team_type" validate:"required"`
	Completed   bool     `json:"completed"`
	MemberIDs   []string `json:"member_ids"`
}

// UpdateTeamRequest replaces a team's editable fields. The creation time
// is kept.
type UpdateTeamRequest struct {
	Name        string   `json:"name" validate:"required,max=128"`
	Description string   `json:"description"`
	OwnerID     string   `json:"owner_id" validate:"required"`
	TypeName    string   `json:"team_type" validate:"required"`
	Completed   bool     `json:"completed"`
	MemberIDs   []string `json:"member_ids"`
}

// TeamSearchRequest carries the optional team criteria. A nil pointer or
// an empty list imposes no constraint.
type TeamSearchRequest struct {
	Start     *time.Time `json:"start"`
	Finish    *time.Time `json:"finish"`
	Completed *bool      `json:"completed"`
	Name      *string    `json:"name"`
	Users     []string   `json:"users"`
	TeamTypes []string   `json:"team_types"`
	Members   []string   `json:"members"`
}
