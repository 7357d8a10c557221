package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// mapSession is a SessionReader over a plain map
type mapSession map[string]string

func (m mapSession) GetString(_ context.Context, key string) string {
	return m[key]
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	tests := []struct {
		name    string
		auth    AuthState
		session mapSession
		want    Identity
	}{
		{
			name:    "authenticated account with no session fields",
			auth:    AuthState{Authenticated: true, AccountID: accountID},
			session: mapSession{},
			want:    Identity{Kind: KindAccount, AccountID: accountID},
		},
		{
			name: "account wins over fully populated session",
			auth: AuthState{Authenticated: true, AccountID: accountID},
			session: mapSession{
				SessionEmailKey:      "visitor@example.com",
				SessionNameKey:       "Visitor",
				SessionAuthorNameKey: "Old Name",
			},
			want: Identity{Kind: KindAccount, AccountID: accountID},
		},
		{
			name:    "admin claim carried through",
			auth:    AuthState{Authenticated: true, AccountID: accountID, Admin: true},
			session: mapSession{},
			want:    Identity{Kind: KindAccount, AccountID: accountID, Admin: true},
		},
		{
			name: "user_name beats author_name and user_email",
			auth: AuthState{},
			session: mapSession{
				SessionEmailKey:      "visitor@example.com",
				SessionNameKey:       "Visitor",
				SessionAuthorNameKey: "Old Name",
			},
			want: Identity{Kind: KindSession, DisplayName: "Visitor"},
		},
		{
			name: "author_name beats user_email",
			auth: AuthState{},
			session: mapSession{
				SessionEmailKey:      "visitor@example.com",
				SessionAuthorNameKey: "Old Name",
			},
			want: Identity{Kind: KindSession, DisplayName: "Old Name"},
		},
		{
			name:    "email only falls back to email as display name",
			auth:    AuthState{},
			session: mapSession{SessionEmailKey: "a@x.com"},
			want:    Identity{Kind: KindSession, DisplayName: "a@x.com"},
		},
		{
			name:    "no auth and no session fields is anonymous",
			auth:    AuthState{},
			session: mapSession{},
			want:    Identity{Kind: KindAnonymous},
		},
		{
			name: "empty-string session fields count as absent",
			auth: AuthState{},
			session: mapSession{
				SessionEmailKey:      "",
				SessionNameKey:       "",
				SessionAuthorNameKey: "",
			},
			want: Identity{Kind: KindAnonymous},
		},
		{
			name: "whitespace-only session fields count as absent",
			auth: AuthState{},
			session: mapSession{
				SessionEmailKey: "   ",
				SessionNameKey:  "\t",
			},
			want: Identity{Kind: KindAnonymous},
		},
		{
			name: "whitespace user_name falls through to email",
			auth: AuthState{},
			session: mapSession{
				SessionNameKey:  "  ",
				SessionEmailKey: "a@x.com",
			},
			want: Identity{Kind: KindSession, DisplayName: "a@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(ctx, tt.auth, tt.session)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "account", KindAccount.String())
	assert.Equal(t, "session", KindSession.String())
	assert.Equal(t, "anonymous", KindAnonymous.String())
}
