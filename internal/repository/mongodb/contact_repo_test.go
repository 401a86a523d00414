package mongodb

import (
	"context"
	"testing"

	"contacts-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func contactDoc(oid primitive.ObjectID, first string) bson.D {
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "firstName", Value: first},
		{Key: "lastName", Value: "Perez"},
		{Key: "email", Value: "juan@x.com"},
		{Key: "favoriteColor", Value: "azul"},
		{Key: "birthday", Value: "1990-05-15"},
	}
}

var input = domain.ContactInput{
	FirstName:     "Juan",
	LastName:      "Perez",
	Email:         "juan@x.com",
	FavoriteColor: "azul",
	Birthday:      "1990-05-15",
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestContactRepoList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns every document", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		a, b := primitive.NewObjectID(), primitive.NewObjectID()

		first := mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch, contactDoc(a, "Juan"))
		second := mtest.CreateCursorResponse(1, namespace(mt), mtest.NextBatch, contactDoc(b, "Ana"))
		done := mtest.CreateCursorResponse(0, namespace(mt), mtest.NextBatch)
		mt.AddMockResponses(first, second, done)

		contacts, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, a.Hex(), contacts[0].ID)
		assert.Equal(t, "Juan", contacts[0].FirstName)
		assert.Equal(t, b.Hex(), contacts[1].ID)
	})

	mt.Run("empty collection yields empty slice", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		contacts, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)
	})

	mt.Run("driver failure is a storage error", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Message: "connection reset",
			Name:    "InternalError",
		}))

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestContactRepoGetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, contactDoc(oid, "Juan")))

		got, err := repo.GetByID(context.Background(), oid.Hex())
		require.NoError(t, err)
		assert.Equal(t, oid.Hex(), got.ID)
		assert.Equal(t, "1990-05-15", got.Birthday)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, domain.ErrContactNotFound)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)

		_, err := repo.GetByID(context.Background(), "abc")
		assert.ErrorIs(t, err, domain.ErrInvalidContactID)
	})
}

func TestContactRepoCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns a fresh id", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		id1, err := repo.Create(context.Background(), input)
		require.NoError(t, err)
		id2, err := repo.Create(context.Background(), input)
		require.NoError(t, err)

		assert.Len(t, id1, 24)
		assert.NotEqual(t, id1, id2)
	})

	mt.Run("write error", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	})
}

func TestContactRepoUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("matched", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(t, repo.Update(context.Background(), primitive.NewObjectID().Hex(), input))
	})

	mt.Run("nothing matched", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), input)
		assert.ErrorIs(t, err, domain.ErrContactNotFound)
	})
}

func TestContactRepoDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(t, repo.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, domain.ErrContactNotFound)
	})
}

func TestContactRepoPing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok", func(mt *mtest.T) {
		repo := NewContactRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(t, repo.Ping(context.Background()))
	})
}
