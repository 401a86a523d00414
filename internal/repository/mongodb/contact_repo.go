package mongodb

import (
	"context"
	"errors"

	"contacts-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// contactDocument is the stored shape; _id is the ObjectID the driver assigns.
type contactDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	Email         string             `bson:"email"`
	FavoriteColor string             `bson:"favoriteColor"`
	Birthday      string             `bson:"birthday"`
}

func (d contactDocument) toDomain() domain.Contact {
	return domain.Contact{
		ID:            d.ID.Hex(),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		FavoriteColor: d.FavoriteColor,
		Birthday:      d.Birthday,
	}
}

func fieldsOf(in domain.ContactInput) bson.M {
	return bson.M{
		"firstName":     in.FirstName,
		"lastName":      in.LastName,
		"email":         in.Email,
		"favoriteColor": in.FavoriteColor,
		"birthday":      in.Birthday,
	}
}

type contactRepo struct {
	coll *mongo.Collection
}

func NewContactRepository(coll *mongo.Collection) domain.ContactRepository {
	return &contactRepo{coll: coll}
}

func (r *contactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	defer cur.Close(ctx)

	var docs []contactDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.StorageError(err)
	}

	contacts := make([]domain.Contact, 0, len(docs))
	for _, d := range docs {
		contacts = append(contacts, d.toDomain())
	}
	return contacts, nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidContactID
	}

	var doc contactDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrContactNotFound
	}
	if err != nil {
		return nil, domain.StorageError(err)
	}

	contact := doc.toDomain()
	return &contact, nil
}

func (r *contactRepo) Create(ctx context.Context, in domain.ContactInput) (string, error) {
	doc := contactDocument{
		ID:            primitive.NewObjectID(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		FavoriteColor: in.FavoriteColor,
		Birthday:      in.Birthday,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", domain.StorageError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return doc.ID.Hex(), nil
}

func (r *contactRepo) Update(ctx context.Context, id string, in domain.ContactInput) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidContactID
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fieldsOf(in)})
	if err != nil {
		return domain.StorageError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidContactID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domain.StorageError(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *contactRepo) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return domain.StorageError(err)
	}
	return nil
}
