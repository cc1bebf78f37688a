package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

const collectionReports = "reports"

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

type mongoFileMetadata struct {
	FileName     string `bson:"file_name"`
	OriginalName string `bson:"original_name"`
	ContentType  string `bson:"content_type"`
	StoragePath  string `bson:"storage_path"`
	Size         int64  `bson:"size"`
}

type mongoReport struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ClientID     string             `bson:"client_id"`
	AuthorID     string             `bson:"author_id"`
	Kind         string             `bson:"type"`
	Content      string             `bson:"content"`
	ReportText   string             `bson:"report_text,omitempty"`
	IsDocument   bool               `bson:"is_document"`
	FileMetadata *mongoFileMetadata `bson:"file_metadata,omitempty"`
	IsLocked     bool               `bson:"is_locked"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toMongoReport(r *domain.Report) mongoReport {
	mr := mongoReport{
		ClientID:   r.ClientID,
		AuthorID:   r.AuthorID,
		Kind:       string(r.Kind),
		Content:    r.Content,
		ReportText: r.ReportText,
		IsDocument: r.IsDocument,
		IsLocked:   r.IsLocked,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.FileMetadata != nil {
		mr.FileMetadata = &mongoFileMetadata{
			FileName:     r.FileMetadata.FileName,
			OriginalName: r.FileMetadata.OriginalName,
			ContentType:  r.FileMetadata.ContentType,
			StoragePath:  r.FileMetadata.StoragePath,
			Size:         r.FileMetadata.Size,
		}
	}
	return mr
}

func (mr *mongoReport) toDomain() *domain.Report {
	r := &domain.Report{
		ID:         mr.ID.Hex(),
		ClientID:   mr.ClientID,
		AuthorID:   mr.AuthorID,
		Kind:       domain.ReportKind(mr.Kind),
		Content:    mr.Content,
		ReportText: mr.ReportText,
		IsDocument: mr.IsDocument,
		IsLocked:   mr.IsLocked,
		CreatedAt:  mr.CreatedAt,
		UpdatedAt:  mr.UpdatedAt,
	}
	if mr.FileMetadata != nil {
		r.FileMetadata = &domain.FileMetadata{
			FileName:     mr.FileMetadata.FileName,
			OriginalName: mr.FileMetadata.OriginalName,
			ContentType:  mr.FileMetadata.ContentType,
			StoragePath:  mr.FileMetadata.StoragePath,
			Size:         mr.FileMetadata.Size,
		}
	}
	return r
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoReport(report))
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	created := *report
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReport
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return mr.toDomain(), nil
}

// FindByClient returns all reports for the client, newest first.
func (r *ReportRepository) FindByClient(ctx context.Context, clientID string) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	defer cur.Close(ctx)

	var reports []*domain.Report
	for cur.Next(ctx) {
		var mr mongoReport
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, mr.toDomain())
	}
	return reports, cur.Err()
}

// Update replaces the mutable fields of the record in a single $set; the
// record is the unit of atomicity.
func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) error {
	oid, err := primitive.ObjectIDFromHex(report.ID)
	if err != nil {
		return domain.ErrReportNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"content":     report.Content,
		"report_text": report.ReportText,
		"updated_at":  report.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReportNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

// EnsureIndexes creates the listing indexes.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
