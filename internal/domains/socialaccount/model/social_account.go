package model

import "errors"

const ProviderGitHub = "github"

var ErrSocialAccountNotFound = errors.New("social account not found")

// SocialAccount links a user to an identity at an external login provider.
// ExtraData is the provider's free-form attribute store.
type SocialAccount struct {
	ID        int64                  `json:"id" db:"id"`
	UserID    int64                  `json:"user_id" db:"user_id"`
	Provider  string                 `json:"provider" db:"provider"`
	UID       string                 `json:"uid" db:"uid"`
	ExtraData map[string]interface{} `json:"extra_data" db:"extra_data"`
}
