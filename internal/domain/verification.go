package domain

import "time"

// Purpose scopes a verification code to one workflow. Codes never cross purposes.
type Purpose string

const (
	PurposePasswordReset     Purpose = "PASSWORD_RESET"
	PurposeEmailConfirmation Purpose = "EMAIL_CONFIRMATION"
)

// CodeState is the derived lifecycle state of a verification code.
type CodeState string

const (
	StatePending   CodeState = "PENDING"
	StateDelivered CodeState = "DELIVERED"
	StateRedeemed  CodeState = "REDEEMED"
	StateExpired   CodeState = "EXPIRED"
)

// VerificationCode is the single record slot for a (subject_key, purpose) pair.
// PK: subject_key, SK: purpose. PurgeAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	SubjectKey  string     `json:"subject_key" dynamodbav:"subject_key"`
	Purpose     Purpose    `json:"purpose" dynamodbav:"purpose"`
	Code        string     `json:"-" dynamodbav:"code"`
	IssuedAt    time.Time  `json:"issued_at" dynamodbav:"issued_at"`
	ExpiresAt   time.Time  `json:"expires_at" dynamodbav:"expires_at"`
	Consumed    bool       `json:"consumed" dynamodbav:"consumed"`
	ConsumedAt  *time.Time `json:"consumed_at,omitempty" dynamodbav:"consumed_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" dynamodbav:"delivered_at"`
	Version     int64      `json:"version" dynamodbav:"version"`
	PurgeAt     int64      `json:"-" dynamodbav:"purge_at"` // TTL (Unix seconds)
}

// Expired reports whether now is past the expiry instant. A code is still
// valid at exactly ExpiresAt.
func (c *VerificationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

func (c *VerificationCode) State(now time.Time) CodeState {
	switch {
	case c.Consumed:
		return StateRedeemed
	case c.Expired(now):
		return StateExpired
	case c.DeliveredAt != nil:
		return StateDelivered
	}
	return StatePending
}
