package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mtlprog/taskboard/internal/domain"
)

// NoticeRepository handles MongoDB operations for notices.
type NoticeRepository struct {
	coll *mongo.Collection
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{coll: db.Collection(noticesCollection)}
}

// Create inserts a notice.
func (r *NoticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	notice.CreatedAt = time.Now().UTC()

	doc := noticeDocument{
		ID:        notice.ID,
		Team:      nonNil(notice.Team),
		Text:      notice.Text,
		TaskID:    notice.TaskID,
		CreatedAt: notice.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}

	return nil
}

// ListByTask retrieves all notices for a task in creation order.
func (r *NoticeRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Notice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"task": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notices: %w", err)
	}

	var docs []noticeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notices: %w", err)
	}

	notices := make([]*domain.Notice, len(docs))
	for i, doc := range docs {
		notices[i] = &domain.Notice{
			ID:        doc.ID,
			Team:      nonNil(doc.Team),
			Text:      doc.Text,
			TaskID:    doc.TaskID,
			CreatedAt: doc.CreatedAt,
		}
	}

	return notices, nil
}
