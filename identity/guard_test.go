package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanComment(t *testing.T) {
	assert.NoError(t, CanComment(Identity{Kind: KindAccount, AccountID: uuid.New()}))
	assert.NoError(t, CanComment(Identity{Kind: KindSession, DisplayName: "Visitor"}))
	assert.ErrorIs(t, CanComment(Identity{Kind: KindAnonymous}), ErrSignInRequired)
}

func TestSetAuthor(t *testing.T) {
	accountID := uuid.New()

	t.Run("account populates reference and clears free-text author", func(t *testing.T) {
		comment := models.Comment{AuthorName: "stale"}
		SetAuthor(&comment, Identity{Kind: KindAccount, AccountID: accountID})

		require.NotNil(t, comment.AccountID)
		assert.Equal(t, accountID, *comment.AccountID)
		assert.Empty(t, comment.AuthorName)
	})

	t.Run("session populates free-text author and clears reference", func(t *testing.T) {
		stale := uuid.New()
		comment := models.Comment{AccountID: &stale}
		SetAuthor(&comment, Identity{Kind: KindSession, DisplayName: "a@x.com"})

		assert.Nil(t, comment.AccountID)
		assert.Equal(t, "a@x.com", comment.AuthorName)
	})
}

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	accountComment := models.Comment{ID: uuid.New(), AccountID: &owner}
	sessionComment := models.Comment{ID: uuid.New(), AuthorName: "a@x.com"}

	tests := []struct {
		name    string
		id      Identity
		comment models.Comment
		wantErr error
	}{
		{
			name:    "owning account may modify",
			id:      Identity{Kind: KindAccount, AccountID: owner},
			comment: accountComment,
			wantErr: nil,
		},
		{
			name:    "different account is denied",
			id:      Identity{Kind: KindAccount, AccountID: other},
			comment: accountComment,
			wantErr: ErrNotOwner,
		},
		{
			name:    "session identity is denied even for its own comment",
			id:      Identity{Kind: KindSession, DisplayName: "a@x.com"},
			comment: sessionComment,
			wantErr: ErrNotOwner,
		},
		{
			name:    "anonymous is denied",
			id:      Identity{Kind: KindAnonymous},
			comment: accountComment,
			wantErr: ErrNotOwner,
		},
		{
			name:    "account is denied for session-authored comment",
			id:      Identity{Kind: KindAccount, AccountID: owner},
			comment: sessionComment,
			wantErr: ErrNotOwner,
		},
		{
			name:    "admin account may modify any comment",
			id:      Identity{Kind: KindAccount, AccountID: other, Admin: true},
			comment: accountComment,
			wantErr: nil,
		},
		{
			name:    "admin account may modify session-authored comment",
			id:      Identity{Kind: KindAccount, AccountID: other, Admin: true},
			comment: sessionComment,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanModify(tt.id, tt.comment)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
