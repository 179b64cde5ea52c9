package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

type mockProfileStore struct {
	mock.Mock
}

func (m *mockProfileStore) ByIDs(ctx context.Context, ids []string) ([]dbmysql.Profile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dbmysql.Profile), args.Error(1)
}

type mockAccountLookup struct {
	mock.Mock
}

func (m *mockAccountLookup) FindByForumUIDs(ctx context.Context, uids []string) ([]common.Account, error) {
	args := m.Called(ctx, uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]common.Account), args.Error(1)
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("profiles cover every id", func(t *testing.T) {
		profiles := new(mockProfileStore)
		accounts := new(mockAccountLookup)
		profiles.On("ByIDs", ctx, []string{"a", "b"}).Return([]dbmysql.Profile{
			{ID: "a", Username: "sana", CurrentCity: "Lahore"},
			{ID: "b", Username: "ali"},
		}, nil)

		got, err := NewResolver(profiles, accounts).Resolve(ctx, []string{"a", "b", "a", ""})
		require.NoError(t, err)
		assert.Equal(t, map[string]Identity{
			"a": {Username: "sana", City: "Lahore"},
			"b": {Username: "ali"},
		}, got)
		accounts.AssertNotCalled(t, "FindByForumUIDs", mock.Anything, mock.Anything)
	})

	t.Run("falls back for missing ids only", func(t *testing.T) {
		profiles := new(mockProfileStore)
		accounts := new(mockAccountLookup)
		profiles.On("ByIDs", ctx, []string{"a", "b", "c"}).Return([]dbmysql.Profile{{ID: "a", Username: "sana"}}, nil)
		accounts.On("FindByForumUIDs", ctx, []string{"b", "c"}).Return([]common.Account{
			{ID: "64f1", Username: "hina", CurrentCity: "Karachi", ForumUID: "b"},
		}, nil)

		got, err := NewResolver(profiles, accounts).Resolve(ctx, []string{"a", "b", "c"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, Identity{Username: "hina", City: "Karachi"}, got["b"])
		_, ok := got["c"]
		assert.False(t, ok)
		accounts.AssertExpectations(t)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		profiles := new(mockProfileStore)
		profiles.On("ByIDs", ctx, []string{"a"}).Return(nil, errors.New("connection reset"))

		_, err := NewResolver(profiles, new(mockAccountLookup)).Resolve(ctx, []string{"a"})
		assert.Error(t, err)
	})

	t.Run("fallback failure propagates", func(t *testing.T) {
		profiles := new(mockProfileStore)
		accounts := new(mockAccountLookup)
		profiles.On("ByIDs", ctx, []string{"a"}).Return([]dbmysql.Profile{}, nil)
		accounts.On("FindByForumUIDs", ctx, []string{"a"}).Return(nil, errors.New("mongo down"))

		_, err := NewResolver(profiles, accounts).Resolve(ctx, []string{"a"})
		assert.Error(t, err)
	})

	t.Run("no ids means no queries", func(t *testing.T) {
		got, err := NewResolver(new(mockProfileStore), new(mockAccountLookup)).Resolve(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDisplayName(t *testing.T) {
	ids := map[string]Identity{"a": {Username: "sana"}, "b": {}}
	assert.Equal(t, "sana", DisplayName(ids, "a", "Unknown"))
	assert.Equal(t, "Unknown", DisplayName(ids, "b", "Unknown"))
	assert.Equal(t, "Anonymous", DisplayName(ids, "z", "Anonymous"))
}
