package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Session keys written by the sign-in flows. The oauth2 callback sets
// SessionEmailKey and SessionNameKey; the guest sign-in sets
// SessionAuthorNameKey.
const (
	SessionEmailKey      = "user_email"
	SessionNameKey       = "user_name"
	SessionAuthorNameKey = "author_name"
)

// Kind distinguishes the three identity states a request can resolve to.
type Kind int

const (
	// KindAnonymous is a request with no account auth and no session identity.
	KindAnonymous Kind = iota
	// KindSession is a provisional identity derived from session fields set
	// by an external sign-in flow, not backed by the account system.
	KindSession
	// KindAccount is a fully authenticated, system-issued identity.
	KindAccount
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindSession:
		return "session"
	default:
		return "anonymous"
	}
}

// AuthState is what the authentication collaborator knows about the
// current request: whether a signed-in account is present, its identifier,
// and whether that account carries the admin claim.
type AuthState struct {
	Authenticated bool
	AccountID     uuid.UUID
	Admin         bool
}

// SessionReader is the capability the resolver needs from the session
// store. *scs.SessionManager satisfies it.
type SessionReader interface {
	GetString(ctx context.Context, key string) string
}

// Identity is the resolved identity of a request. Exactly one of the three
// kinds applies; AccountID is meaningful only for KindAccount and
// DisplayName only for KindSession.
type Identity struct {
	Kind        Kind
	AccountID   uuid.UUID
	Admin       bool
	DisplayName string
}

// Account reports whether the identity is a signed-in account.
func (id Identity) Account() bool { return id.Kind == KindAccount }

// Anonymous reports whether the request carried no usable identity.
func (id Identity) Anonymous() bool { return id.Kind == KindAnonymous }

// Resolve classifies a request into exactly one identity state.
//
// An authenticated account always wins; session fields are not consulted
// at all in that case. Otherwise, if any of user_email, user_name or
// author_name is present in the session, the request resolves to a
// session identity whose display name is the first non-empty value of
// user_name, author_name, user_email in that order. With nothing set the
// request is anonymous. Whitespace-only session values count as absent.
func Resolve(ctx context.Context, auth AuthState, sessions SessionReader) Identity {
	if auth.Authenticated {
		return Identity{Kind: KindAccount, AccountID: auth.AccountID, Admin: auth.Admin}
	}

	email := strings.TrimSpace(sessions.GetString(ctx, SessionEmailKey))
	name := strings.TrimSpace(sessions.GetString(ctx, SessionNameKey))
	authorName := strings.TrimSpace(sessions.GetString(ctx, SessionAuthorNameKey))

	display := name
	if display == "" {
		display = authorName
	}
	if display == "" {
		display = email
	}

	if display == "" {
		return Identity{Kind: KindAnonymous}
	}
	return Identity{Kind: KindSession, DisplayName: display}
}
