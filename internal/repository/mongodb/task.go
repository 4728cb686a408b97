package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mtlprog/taskboard/internal/domain"
)

// TaskRepository handles MongoDB operations for tasks.
// Sub-tasks and activities are embedded arrays grown with $push.
type TaskRepository struct {
	coll *mongo.Collection
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, newTaskDocument(task)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTaskExists
		}
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	var doc taskDocument
	if err := r.coll.FindOne(ctx, idFilter(taskID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %s: %w", taskID, err)
	}

	return doc.toDomain(), nil
}

// List retrieves the tasks matching filter, newest first.
func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	query := bson.M{}

	switch filter.Trash {
	case domain.TrashActive:
		query["isTrashed"] = bson.M{"$ne": true}
	case domain.TrashTrashed:
		query["isTrashed"] = true
	}

	if filter.Stage != "" {
		query["stage"] = string(filter.Stage)
	}

	if filter.Member != "" {
		query["team"] = memberFilter(filter.Member)
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]*domain.Task, len(docs))
	for i := range docs {
		tasks[i] = docs[i].toDomain()
	}

	return tasks, nil
}

// Update overwrites the editable fields of a task.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	doc := newTaskDocument(task)

	return r.updateOne(ctx, task.ID, bson.M{"$set": bson.M{
		"title":    doc.Title,
		"team":     doc.Team,
		"stage":    doc.Stage,
		"priority": doc.Priority,
		"date":     doc.Date,
		"assets":   doc.Assets,
	}})
}

// AppendActivity appends an entry to a task's activity log.
func (r *TaskRepository) AppendActivity(ctx context.Context, taskID string, activity domain.Activity) error {
	return r.updateOne(ctx, taskID, bson.M{"$push": bson.M{"activities": activity}})
}

// AppendSubTask appends a sub-task to a task.
func (r *TaskRepository) AppendSubTask(ctx context.Context, taskID string, subTask domain.SubTask) error {
	return r.updateOne(ctx, taskID, bson.M{"$push": bson.M{"subTasks": newSubTaskDocument(subTask)}})
}

// SetTrashed sets the trash flag of a task.
func (r *TaskRepository) SetTrashed(ctx context.Context, taskID string, trashed bool) error {
	return r.updateOne(ctx, taskID, bson.M{"$set": bson.M{"isTrashed": trashed}})
}

func (r *TaskRepository) updateOne(ctx context.Context, taskID string, update bson.M) error {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updatedAt"] = time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx, idFilter(taskID), update)
	if err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Delete permanently removes a task.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	res, err := r.coll.DeleteOne(ctx, idFilter(taskID))
	if err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// DeleteTrashed permanently removes every trashed task.
func (r *TaskRepository) DeleteTrashed(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"isTrashed": true})
	if err != nil {
		return 0, fmt.Errorf("delete trashed tasks: %w", err)
	}

	return res.DeletedCount, nil
}

// RestoreTrashed clears the trash flag of every trashed task.
func (r *TaskRepository) RestoreTrashed(ctx context.Context) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"isTrashed": true},
		bson.M{"$set": bson.M{"isTrashed": false, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("restore trashed tasks: %w", err)
	}

	return res.ModifiedCount, nil
}
