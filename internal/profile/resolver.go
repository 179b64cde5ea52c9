// Package profile resolves forum user ids to display identities.
package profile

import (
	"context"
	"fmt"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

// Identity is what the forum shows for an author.
type Identity struct {
	Username string
	City     string
}

// ProfileStore is the forum-side mirror of user identities.
type ProfileStore interface {
	ByIDs(ctx context.Context, ids []string) ([]dbmysql.Profile, error)
}

// AccountLookup is the authoritative fallback for ids missing from the mirror.
type AccountLookup interface {
	FindByForumUIDs(ctx context.Context, uids []string) ([]common.Account, error)
}

type Resolver struct {
	profiles ProfileStore
	accounts AccountLookup
}

func NewResolver(profiles ProfileStore, accounts AccountLookup) *Resolver {
	return &Resolver{profiles: profiles, accounts: accounts}
}

// Resolve returns identities for the given ids in at most two batch queries.
// Ids known to neither store are absent from the result.
func (r *Resolver) Resolve(ctx context.Context, ids []string) (map[string]Identity, error) {
	unique := dedupe(ids)
	out := make(map[string]Identity, len(unique))
	if len(unique) == 0 {
		return out, nil
	}

	profiles, err := r.profiles.ByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve profiles: %w", err)
	}
	for _, p := range profiles {
		out[p.ID] = Identity{Username: p.Username, City: p.CurrentCity}
	}

	var missing []string
	for _, id := range unique {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	accounts, err := r.accounts.FindByForumUIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("resolve accounts: %w", err)
	}
	for _, a := range accounts {
		out[a.ForumUID] = Identity{Username: a.Username, City: a.CurrentCity}
	}

	return out, nil
}

// DisplayName returns the resolved username, or fallback when the id was not
// resolved or has no username.
func DisplayName(identities map[string]Identity, id, fallback string) string {
	if ident, ok := identities[id]; ok && ident.Username != "" {
		return ident.Username
	}
	return fallback
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
