package domain

import "strings"

// Role is the closed set of account roles. Routes declare their own
// explicit allow-lists; no role implies another.
type Role string

const (
	RoleUser   Role = "USER"
	RoleEditor Role = "EDITOR"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole accepts any casing on input but canonicalizes to upper-case.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleEditor:
		return RoleEditor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// PostStatuses enumerates the allowed post lifecycle states.
var PostStatuses = []string{"DRAFT", "PUBLISHED", "ARCHIVED"}

const PostPublished = "PUBLISHED"

// CommentStatuses enumerates the allowed comment moderation states.
var CommentStatuses = []string{"ACTIVE", "INACTIVE", "FLAGGED"}

const CommentActive = "ACTIVE"
