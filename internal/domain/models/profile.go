package models

// Profile is the 1:1 extension of a user account.
type Profile struct {
	UserID    int64  `json:"userId"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Website   string `json:"website,omitempty"`
	Location  string `json:"location,omitempty"`
}
