package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

type mongoClient struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"client_name"`
	CaseID             string             `bson:"case_id"`
	AssignedSpecialist string             `bson:"assigned_specialist,omitempty"`
	BirthDate          *time.Time         `bson:"birth_date,omitempty"`
	Address            string             `bson:"address,omitempty"`
	TargetLanguage     string             `bson:"target_language,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
}

func (mc *mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:                 mc.ID.Hex(),
		Name:               mc.Name,
		CaseID:             mc.CaseID,
		AssignedSpecialist: mc.AssignedSpecialist,
		BirthDate:          mc.BirthDate,
		Address:            mc.Address,
		TargetLanguage:     mc.TargetLanguage,
		CreatedAt:          mc.CreatedAt,
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClient{
		Name:               client.Name,
		CaseID:             client.CaseID,
		AssignedSpecialist: client.AssignedSpecialist,
		BirthDate:          client.BirthDate,
		Address:            client.Address,
		TargetLanguage:     client.TargetLanguage,
		CreatedAt:          client.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCaseIDExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	created := *client
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClient
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	return r.list(ctx, bson.M{})
}

func (r *ClientRepository) ListByAssignedSpecialist(ctx context.Context, specialistID string) ([]*domain.Client, error) {
	return r.list(ctx, bson.M{"assigned_specialist": specialistID})
}

func (r *ClientRepository) list(ctx context.Context, filter bson.M) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	var clients []*domain.Client
	for cur.Next(ctx) {
		var mc mongoClient
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, mc.toDomain())
	}
	return clients, cur.Err()
}

// SetAssignedSpecialist replaces the client's assignment in a single update;
// the record is the unit of atomicity.
func (r *ClientRepository) SetAssignedSpecialist(ctx context.Context, clientID, specialistID string) error {
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"assigned_specialist": specialistID},
	})
	if err != nil {
		return fmt.Errorf("set assigned specialist: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// EnsureIndexes creates the unique case id index and the assignment index.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "case_id", Value: 1}}, Options: optionsUnique()},
		{Keys: bson.D{{Key: "assigned_specialist", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
