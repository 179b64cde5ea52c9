package dbmongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parentforum/internal/common"
)

// forumUIDField is the field existing user records already carry the forum
// link in. Renaming it would orphan every linked account.
const forumUIDField = "supabase_uid"

// userDocument is the subset of the users collection the forum reads.
type userDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Username    string             `bson:"username,omitempty"`
	CurrentCity string             `bson:"current_city,omitempty"`
	ForumUID    string             `bson:"supabase_uid,omitempty"`
}

func (d userDocument) account() common.Account {
	return common.Account{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		CurrentCity: d.CurrentCity,
		ForumUID:    d.ForumUID,
	}
}

var accountProjection = bson.M{"_id": 1, "username": 1, "current_city": 1, forumUIDField: 1}

type AccountStore struct {
	users *mongo.Collection
}

func NewAccountStore(mc *MongoClient) *AccountStore {
	return &AccountStore{users: mc.Users}
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*common.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	var doc userDocument
	err = s.users.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(accountProjection)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	account := doc.account()
	return &account, nil
}

// FindByForumUIDs loads every account linked to one of uids. Unknown uids are skipped.
func (s *AccountStore) FindByForumUIDs(ctx context.Context, uids []string) ([]common.Account, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	cursor, err := s.users.Find(ctx,
		bson.M{forumUIDField: bson.M{"$in": uids}},
		options.Find().SetProjection(accountProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}

	accounts := make([]common.Account, 0, len(docs))
	for _, d := range docs {
		accounts = append(accounts, d.account())
	}
	return accounts, nil
}

// AssignForumUID links uid to the account unless it already has one, in which
// case common.ErrConflict is returned and the caller should reload.
func (s *AccountStore) AssignForumUID(ctx context.Context, id, uid string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrNotFound
	}

	filter := bson.M{
		"_id": oid,
		"$or": bson.A{
			bson.M{forumUIDField: bson.M{"$exists": false}},
			bson.M{forumUIDField: ""},
		},
	}
	res, err := s.users.UpdateOne(ctx, filter, bson.M{"$set": bson.M{forumUIDField: uid}})
	if err != nil {
		return fmt.Errorf("failed to assign forum uid: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrConflict
	}
	return nil
}
