package common

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AuthMiddleware resolves the bearer token into a Viewer:
//   - verify the token and load the account it names
//   - give the account a forum uid on its first visit
//   - mirror username and city into the forum profile table (best effort)
func AuthMiddleware(verifier *TokenVerifier, accounts AccountStore, profiles ProfileSyncer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer") {
				WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token"})
				return
			}

			parts := strings.Fields(header)
			if len(parts) != 2 {
				WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
				return
			}

			accountID, err := verifier.Verify(parts[1])
			if errors.Is(err, ErrInvalidTokenStructure) {
				WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token structure"})
				return
			}
			if err != nil {
				log.Printf("Auth error: %v", err)
				WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
				return
			}

			ctx := r.Context()
			account, err := accounts.FindByID(ctx, accountID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "User not found"})
					return
				}
				log.Printf("Auth error: %v", err)
				WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
				return
			}

			if account.ForumUID == "" {
				if err := ensureForumUID(ctx, accounts, account); err != nil {
					log.Printf("Forum uid assignment failed for %s: %v", account.ID, err)
					WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to sync with forum"})
					return
				}
			}

			username := account.Username
			if username == "" {
				username = "Anonymous User"
			}
			if err := profiles.SyncProfile(ctx, account.ForumUID, username, account.CurrentCity); err != nil {
				log.Printf("Profile sync error: %v", err)
			}

			viewer := Viewer{
				ID:        account.ForumUID,
				AccountID: account.ID,
				Username:  account.Username,
				City:      strings.TrimSpace(account.CurrentCity),
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(ctx, viewer)))
		})
	}
}

// ensureForumUID links a fresh uid to the account. When a concurrent request
// won the race the stored uid is reloaded instead.
func ensureForumUID(ctx context.Context, accounts AccountStore, account *Account) error {
	uid := uuid.NewString()
	err := accounts.AssignForumUID(ctx, account.ID, uid)
	if err == nil {
		account.ForumUID = uid
		return nil
	}
	if !errors.Is(err, ErrConflict) {
		return err
	}

	fresh, err := accounts.FindByID(ctx, account.ID)
	if err != nil {
		return err
	}
	if fresh.ForumUID == "" {
		return errors.New("forum uid missing after conflict")
	}
	account.ForumUID = fresh.ForumUID
	return nil
}

// RequireViewer is used by handlers that sit behind AuthMiddleware.
func RequireViewer(w http.ResponseWriter, r *http.Request) (Viewer, bool) {
	v, ok := ViewerFrom(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token"})
	}
	return v, ok
}
