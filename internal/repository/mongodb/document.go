// Package mongodb implements the task, notice and user stores on MongoDB.
// It reads collections written by earlier versions of the application, where
// ids may be ObjectIDs and assets may be bare filenames.
package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mtlprog/taskboard/internal/asset"
	"github.com/mtlprog/taskboard/internal/domain"
)

const (
	tasksCollection   = "tasks"
	noticesCollection = "notices"
	usersCollection   = "users"
)

type taskDocument struct {
	ID         any               `bson:"_id"`
	Title      string            `bson:"title"`
	Team       []string          `bson:"team"`
	Stage      string            `bson:"stage"`
	Priority   string            `bson:"priority"`
	Date       time.Time         `bson:"date"`
	Assets     []assetValue      `bson:"assets"`
	SubTasks   []subTaskDocument `bson:"subTasks"`
	Activities []domain.Activity `bson:"activities"`
	IsTrashed  bool              `bson:"isTrashed"`
	CreatedAt  time.Time         `bson:"createdAt"`
	UpdatedAt  time.Time         `bson:"updatedAt"`
}

func newTaskDocument(task *domain.Task) taskDocument {
	assets := make([]assetValue, len(task.Assets))
	for i, a := range task.Assets {
		assets[i] = assetValue{RawAsset: domain.RecordAsset(a)}
	}

	subTasks := make([]subTaskDocument, len(task.SubTasks))
	for i, st := range task.SubTasks {
		subTasks[i] = newSubTaskDocument(st)
	}

	return taskDocument{
		ID:         task.ID,
		Title:      task.Title,
		Team:       nonNil(task.Team),
		Stage:      string(task.Stage),
		Priority:   string(task.Priority),
		Date:       task.Date,
		Assets:     assets,
		SubTasks:   subTasks,
		Activities: nonNil(task.Activities),
		IsTrashed:  task.IsTrashed,
		CreatedAt:  task.CreatedAt,
		UpdatedAt:  task.UpdatedAt,
	}
}

func (d *taskDocument) toDomain() *domain.Task {
	raw := make([]domain.RawAsset, len(d.Assets))
	for i, a := range d.Assets {
		raw[i] = a.RawAsset
	}

	subTasks := make([]domain.SubTask, len(d.SubTasks))
	for i, st := range d.SubTasks {
		subTasks[i] = st.toDomain()
	}

	stamp := d.UpdatedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}

	return &domain.Task{
		ID:         idString(d.ID),
		Title:      d.Title,
		Team:       nonNil(d.Team),
		Stage:      domain.Stage(d.Stage),
		Priority:   domain.Priority(d.Priority),
		Date:       d.Date,
		Assets:     asset.Normalize(raw, stamp),
		SubTasks:   subTasks,
		Activities: nonNil(d.Activities),
		IsTrashed:  d.IsTrashed,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// assetValue decodes an asset stored in any historical shape and encodes it
// as a canonical record.
type assetValue struct {
	domain.RawAsset
}

func (a assetValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(asset.NormalizeOne(a.RawAsset, time.Now()))
}

func (a *assetValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	value := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeString:
		a.RawAsset = domain.TextAsset(value.StringValue())
	case bson.TypeEmbeddedDocument:
		doc := value.Document()
		r := domain.RawAsset{Kind: domain.RawAssetRecord}
		if v, err := doc.LookupErr("name"); err == nil {
			if s, ok := v.StringValueOK(); ok {
				r.Name = &s
			}
		}
		if v, err := doc.LookupErr("size"); err == nil {
			if n, ok := number(v); ok {
				r.Size = &n
			}
		}
		if v, err := doc.LookupErr("type"); err == nil {
			if s, ok := v.StringValueOK(); ok {
				r.Type = &s
			}
		}
		if v, err := doc.LookupErr("lastModified"); err == nil {
			if n, ok := number(v); ok {
				r.LastModified = &n
			}
		}
		a.RawAsset = r
	default:
		a.RawAsset = domain.RawAsset{Kind: domain.RawAssetUnknown}
	}

	return nil
}

// subTaskDocument stores a sub-task. Earlier versions kept the date as a
// BSON datetime; it is read back as ISO-8601 text.
type subTaskDocument struct {
	Title string      `bson:"title"`
	Tag   string      `bson:"tag"`
	Date  subTaskDate `bson:"date"`
}

func newSubTaskDocument(st domain.SubTask) subTaskDocument {
	return subTaskDocument{Title: st.Title, Tag: st.Tag, Date: subTaskDate(st.Date)}
}

func (d subTaskDocument) toDomain() domain.SubTask {
	return domain.SubTask{Title: d.Title, Tag: d.Tag, Date: string(d.Date)}
}

// isoMillis renders datetimes the way the JSON API of earlier versions did.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type subTaskDate string

func (d subTaskDate) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(d))
}

func (d *subTaskDate) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	value := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeString:
		*d = subTaskDate(value.StringValue())
	case bson.TypeDateTime:
		*d = subTaskDate(time.UnixMilli(value.DateTime()).UTC().Format(isoMillis))
	default:
		*d = ""
	}

	return nil
}

// number reads numeric BSON values. Dates count as Unix milliseconds.
func number(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bson.TypeDouble:
		return v.Double(), true
	case bson.TypeInt32:
		return float64(v.Int32()), true
	case bson.TypeInt64:
		return float64(v.Int64()), true
	case bson.TypeDateTime:
		return float64(v.DateTime()), true
	default:
		return 0, false
	}
}

type noticeDocument struct {
	ID        string    `bson:"_id"`
	Team      []string  `bson:"team"`
	Text      string    `bson:"text"`
	TaskID    string    `bson:"task"`
	CreatedAt time.Time `bson:"createdAt"`
}

type userDocument struct {
	ID        any       `bson:"_id"`
	Name      string    `bson:"name"`
	Title     string    `bson:"title"`
	Role      string    `bson:"role"`
	Email     string    `bson:"email"`
	IsAdmin   bool      `bson:"isAdmin"`
	IsActive  bool      `bson:"isActive"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        idString(d.ID),
		Name:      d.Name,
		Title:     d.Title,
		Role:      d.Role,
		Email:     d.Email,
		IsAdmin:   d.IsAdmin,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
	}
}

// idString renders a stored _id, which is a string for new documents and an
// ObjectID for documents written by earlier versions.
func idString(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	default:
		return ""
	}
}

// idFilter matches an _id given as a string, including its ObjectID form.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

// memberFilter matches tasks whose team holds the user id in either form.
func memberFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$in": bson.A{id, oid}}
	}
	return bson.M{"$eq": id}
}

// idsFilter matches any of the given ids, including their ObjectID forms.
func idsFilter(ids []string) bson.M {
	values := make(bson.A, 0, len(ids)*2)
	for _, id := range ids {
		values = append(values, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			values = append(values, oid)
		}
	}
	return bson.M{"_id": bson.M{"$in": values}}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
