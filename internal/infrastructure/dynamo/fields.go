package dynamo

import "github.com/search-team-api/internal/domain"

// DynamoDB attribute and index names shared by the repos and Bootstrap.
const (
	attrUserID     = "user_id"
	attrLogin      = domain.UserFieldLogin
	attrEmail      = domain.UserFieldEmail
	attrTeamID     = "team_id"
	attrSubjectKey = "subject_key"
	attrPurpose    = "purpose"
	attrVersion    = "version"
	attrPurgeAt    = "purge_at"
	attrUpdatedAt  = "updated_at"

	fieldPasswordHash  = domain.UserFieldPasswordHash
	fieldEmailVerified = domain.UserFieldEmailVerified

	indexLogin = "login-index"
	indexEmail = "email-index"
)
