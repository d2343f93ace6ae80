package services

import "git.solsynth.dev/hypernet/journal/pkg/internal/models"

type DenyReason int

const (
	DenyNone DenyReason = iota
	DenyAnonymous
	DenyNotOwner
	DenySelfFollow
)

func (v DenyReason) String() string {
	switch v {
	case DenyAnonymous:
		return "anonymous"
	case DenyNotOwner:
		return "not owner"
	case DenySelfFollow:
		return "self follow"
	default:
		return "none"
	}
}

// Decision is the outcome of every authorization check in journal.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into the error the request boundary understands.
func (v Decision) Err() error {
	if v.Allowed {
		return nil
	}
	switch v.Reason {
	case DenyAnonymous:
		return ErrAuthenticationRequired
	default:
		return ErrPermissionDenied
	}
}

func CanAccess(user *models.Account) Decision {
	if user == nil {
		return deny(DenyAnonymous)
	}
	return allow()
}

func CanCreatePost(user *models.Account) Decision {
	return CanAccess(user)
}

func CanEditPost(user *models.Account, post models.Post) Decision {
	if user == nil {
		return deny(DenyAnonymous)
	}
	if post.AuthorID != user.ID {
		return deny(DenyNotOwner)
	}
	return allow()
}

func CanComment(user *models.Account) Decision {
	return CanAccess(user)
}

func CanFollow(user *models.Account, author models.Account) Decision {
	if user == nil {
		return deny(DenyAnonymous)
	}
	if user.ID == author.ID {
		return deny(DenySelfFollow)
	}
	return allow()
}
