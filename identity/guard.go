package identity

import (
	"errors"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// Guard decision sentinels. Handlers translate these into responses;
// nothing here writes to the connection.
var (
	ErrSignInRequired = errors.New("sign in required")
	ErrNotOwner       = errors.New("comment not owned by requester")
)

// CanComment authorizes comment creation. Accounts and session identities
// may comment; anonymous requests may not.
func CanComment(id Identity) error {
	if id.Anonymous() {
		return ErrSignInRequired
	}
	return nil
}

// SetAuthor stamps the owner fields on a new comment from the resolved
// identity. Account identities populate the account reference and leave
// the free-text author empty; session identities do the reverse. The two
// fields are mutually exclusive by construction.
func SetAuthor(comment *models.Comment, id Identity) {
	switch id.Kind {
	case KindAccount:
		accountID := id.AccountID
		comment.AccountID = &accountID
		comment.AuthorName = ""
	case KindSession:
		comment.AccountID = nil
		comment.AuthorName = id.DisplayName
	}
}

// CanModify authorizes update/delete of an existing comment.
//
// Only account-based ownership counts: the requester must be an account
// whose ID matches the comment's stored account reference, or an admin
// account. Session identities can create comments but can never modify
// them afterwards, even their own — a comment created via a session
// identity stores no account reference, so nothing short of an admin can
// touch it. That asymmetry is deliberate and matched by the tests; do not
// "fix" it here.
func CanModify(id Identity, comment models.Comment) error {
	if !id.Account() {
		return ErrNotOwner
	}
	if id.Admin {
		return nil
	}
	if comment.AccountID == nil || *comment.AccountID != id.AccountID {
		return ErrNotOwner
	}
	return nil
}
