package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mtlprog/taskboard/internal/database"
	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/repository/mongodb"
)

// MongoTestSuite runs the MongoDB repositories against a real server.
// MONGODB_URI selects an existing server; otherwise a container is started.
type MongoTestSuite struct {
	suite.Suite
	container testcontainers.Container
	mongo     *database.Mongo

	tasks   *mongodb.TaskRepository
	notices *mongodb.NoticeRepository
	users   *mongodb.UserRepository
}

// SetupSuite runs once before all tests.
func (s *MongoTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		testcontainers.SkipIfProviderIsNotHealthy(s.T())

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mongo:7",
				ExposedPorts: []string{"27017/tcp"},
				WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
			},
			Started: true,
		})
		s.Require().NoError(err, "failed to start mongo container")
		s.container = container

		host, err := container.Host(ctx)
		s.Require().NoError(err)
		port, err := container.MappedPort(ctx, "27017")
		s.Require().NoError(err)

		uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	}

	m, err := database.NewMongo(ctx, uri, "taskboard_test")
	s.Require().NoError(err, "failed to connect to mongodb")
	s.mongo = m
	s.Require().NoError(m.EnsureIndexes(ctx))

	s.tasks = mongodb.NewTaskRepository(m.Database())
	s.notices = mongodb.NewNoticeRepository(m.Database())
	s.users = mongodb.NewUserRepository(m.Database())
}

// SetupTest runs before each test.
func (s *MongoTestSuite) SetupTest() {
	ctx := context.Background()
	for _, name := range []string{"tasks", "notices", "users"} {
		_, err := s.mongo.Database().Collection(name).DeleteMany(ctx, bson.M{})
		s.Require().NoError(err)
	}
}

// TearDownSuite runs once after all tests.
func (s *MongoTestSuite) TearDownSuite() {
	ctx := context.Background()
	if s.mongo != nil {
		_ = s.mongo.Database().Drop(ctx)
		s.mongo.Close(ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(ctx)
	}
}

func (s *MongoTestSuite) newTask(id string, team ...string) *domain.Task {
	return &domain.Task{
		ID:       id,
		Title:    "task " + id,
		Team:     team,
		Stage:    domain.StageTodo,
		Priority: domain.PriorityNormal,
		Date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Assets:   []domain.Asset{{Name: "a.txt", Size: 3, Type: "text/plain", LastModified: 1700000000000}},
	}
}

// TestTask_RoundTrip tests create, read and duplicate detection.
func (s *MongoTestSuite) TestTask_RoundTrip() {
	ctx := context.Background()

	s.Require().NoError(s.tasks.Create(ctx, s.newTask("01", "u1")))
	s.ErrorIs(s.tasks.Create(ctx, s.newTask("01")), domain.ErrTaskExists)

	got, err := s.tasks.GetByID(ctx, "01")
	s.Require().NoError(err)
	s.Equal("task 01", got.Title)
	s.Equal([]string{"u1"}, got.Team)
	s.Equal([]domain.Asset{{Name: "a.txt", Size: 3, Type: "text/plain", LastModified: 1700000000000}}, got.Assets)
	s.NotNil(got.SubTasks)
	s.NotNil(got.Activities)

	_, err = s.tasks.GetByID(ctx, "missing")
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

// TestTask_LegacyDocument tests reading documents written by earlier versions.
func (s *MongoTestSuite) TestTask_LegacyDocument() {
	ctx := context.Background()
	oid := primitive.NewObjectID()
	member := primitive.NewObjectID()
	subTaskDate := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

	_, err := s.mongo.Database().Collection("tasks").InsertOne(ctx, bson.M{
		"_id":      oid,
		"title":    "legacy",
		"team":     bson.A{member},
		"stage":    "todo",
		"priority": "high",
		"date":     time.Now(),
		"assets": bson.A{
			"photo.jpg",
			bson.M{"name": "doc.pdf", "size": int32(12), "lastModified": "yesterday"},
			int32(7),
		},
		"subTasks": bson.A{
			bson.M{"title": "draft", "tag": "docs", "date": subTaskDate},
			bson.M{"title": "review", "tag": "qa", "date": nil},
		},
		"activities": bson.A{
			bson.M{"type": "assigned", "activity": "assigned", "by": member, "date": time.Now()},
		},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.tasks.Create(ctx, s.newTask("01", "someone-else")))

	got, err := s.tasks.GetByID(ctx, oid.Hex())
	s.Require().NoError(err)
	s.Equal(oid.Hex(), got.ID)
	s.Equal([]string{member.Hex()}, got.Team)
	s.Equal([]domain.SubTask{
		{Title: "draft", Tag: "docs", Date: "2024-03-05T09:30:00.000Z"},
		{Title: "review", Tag: "qa", Date: ""},
	}, got.SubTasks)
	s.Require().Len(got.Activities, 1)
	s.Equal(member.Hex(), got.Activities[0].By)
	s.Require().Len(got.Assets, 3)
	s.Equal("photo.jpg", got.Assets[0].Name)
	s.Equal("doc.pdf", got.Assets[1].Name)
	s.Equal(int64(12), got.Assets[1].Size)
	s.Equal(domain.DefaultAssetType, got.Assets[1].Type)
	s.Equal(domain.DefaultAssetName, got.Assets[2].Name)
	s.False(got.IsTrashed)

	listed, err := s.tasks.List(ctx, domain.TaskFilter{Trash: domain.TrashActive, Member: member.Hex()})
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(oid.Hex(), listed[0].ID)

	all, err := s.tasks.List(ctx, domain.TaskFilter{Trash: domain.TrashAll})
	s.Require().NoError(err)
	s.Len(all, 2)

	s.Require().NoError(s.tasks.AppendSubTask(ctx, oid.Hex(), domain.SubTask{Title: "ship", Tag: "ops", Date: "2024-04-01"}))
	got, err = s.tasks.GetByID(ctx, oid.Hex())
	s.Require().NoError(err)
	s.Require().Len(got.SubTasks, 3)
	s.Equal("2024-04-01", got.SubTasks[2].Date)
}

// TestTask_AppendsAndTrash tests $push appends and the trash operations.
func (s *MongoTestSuite) TestTask_AppendsAndTrash() {
	ctx := context.Background()
	s.Require().NoError(s.tasks.Create(ctx, s.newTask("01", "u1")))
	s.Require().NoError(s.tasks.Create(ctx, s.newTask("02", "u2")))

	s.Require().NoError(s.tasks.AppendActivity(ctx, "01", domain.Activity{Type: domain.ActivityBug, Activity: "x", By: "u1"}))
	s.Require().NoError(s.tasks.AppendSubTask(ctx, "01", domain.SubTask{Title: "step"}))
	s.ErrorIs(s.tasks.AppendSubTask(ctx, "missing", domain.SubTask{}), domain.ErrTaskNotFound)

	got, err := s.tasks.GetByID(ctx, "01")
	s.Require().NoError(err)
	s.Len(got.Activities, 1)
	s.Len(got.SubTasks, 1)

	s.Require().NoError(s.tasks.SetTrashed(ctx, "02", true))

	active, err := s.tasks.List(ctx, domain.TaskFilter{Trash: domain.TrashActive})
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("01", active[0].ID)

	all, err := s.tasks.List(ctx, domain.TaskFilter{Trash: domain.TrashAll})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("02", all[0].ID)

	mine, err := s.tasks.List(ctx, domain.TaskFilter{Trash: domain.TrashAll, Member: "u2"})
	s.Require().NoError(err)
	s.Len(mine, 1)

	deleted, err := s.tasks.DeleteTrashed(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	s.Require().NoError(s.tasks.SetTrashed(ctx, "01", true))
	restored, err := s.tasks.RestoreTrashed(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), restored)
}

// TestNoticesAndUsers tests notice persistence and user lookups.
func (s *MongoTestSuite) TestNoticesAndUsers() {
	ctx := context.Background()

	s.Require().NoError(s.notices.Create(ctx, &domain.Notice{ID: "n1", Team: []string{"u1"}, Text: "hi", TaskID: "01"}))
	notices, err := s.notices.ListByTask(ctx, "01")
	s.Require().NoError(err)
	s.Require().Len(notices, 1)
	s.Equal("hi", notices[0].Text)

	legacyID := primitive.NewObjectID()
	_, err = s.mongo.Database().Collection("users").InsertOne(ctx, bson.M{
		"_id": legacyID, "name": "Old", "isActive": true, "createdAt": time.Now(),
	})
	s.Require().NoError(err)
	s.Require().NoError(s.users.Upsert(ctx, &domain.User{ID: "u2", Name: "New", IsActive: false}))

	found, err := s.users.GetByIDs(ctx, []string{legacyID.Hex(), "u2", "missing"})
	s.Require().NoError(err)
	s.Len(found, 2)

	recent, err := s.users.ListRecentActive(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(legacyID.Hex(), recent[0].ID)

	_, err = s.users.GetByID(ctx, "missing")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

// TestMongoTestSuite runs the test suite.
func TestMongoTestSuite(t *testing.T) {
	suite.Run(t, new(MongoTestSuite))
}
