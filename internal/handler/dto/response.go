package dto

import (
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/service"
)

// MessageResponse is the success envelope for operations without payload.
type MessageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// NewMessageResponse creates a successful MessageResponse.
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Status: true, Message: message}
}

// TeamMember is a team member reference. Display fields are present when the user resolves.
type TeamMember struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

// ActivityAuthor is the author of an activity entry.
type ActivityAuthor struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

// ActivityResponse is an activity log entry.
type ActivityResponse struct {
	Type     string         `json:"type"`
	Activity string         `json:"activity"`
	By       ActivityAuthor `json:"by"`
	Date     time.Time      `json:"date"`
}

// TaskResponse is the task representation shared by all endpoints.
type TaskResponse struct {
	ID         string             `json:"_id"`
	Title      string             `json:"title"`
	Team       []TeamMember       `json:"team"`
	Stage      string             `json:"stage"`
	Priority   string             `json:"priority"`
	Date       time.Time          `json:"date"`
	Assets     []domain.Asset     `json:"assets"`
	SubTasks   []domain.SubTask   `json:"subTasks"`
	Activities []ActivityResponse `json:"activities"`
	IsTrashed  bool               `json:"isTrashed"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// TaskEnvelope wraps a single task with a message.
type TaskEnvelope struct {
	Status  bool         `json:"status"`
	Message string       `json:"message,omitempty"`
	Task    TaskResponse `json:"task"`
}

// TasksResponse represents the response for GET /task.
type TasksResponse struct {
	Status bool           `json:"status"`
	Tasks  []TaskResponse `json:"tasks"`
}

// DeleteRestoreResponse represents the response for DELETE /task/delete-restore/{id}.
type DeleteRestoreResponse struct {
	Status   bool   `json:"status"`
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}

// UserSummary is a user as listed on the admin dashboard.
type UserSummary struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// GraphPoint is the number of tasks with one priority.
type GraphPoint struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// DashboardResponse represents the response for GET /task/dashboard.
type DashboardResponse struct {
	Status     bool           `json:"status"`
	Message    string         `json:"message"`
	TotalTasks int            `json:"totalTasks"`
	Last10Task []TaskResponse `json:"last10Task"`
	Users      []UserSummary  `json:"users"`
	Tasks      map[string]int `json:"tasks"`
	GraphData  []GraphPoint   `json:"graphData"`
}

// ToTaskResponse converts a task, resolving ids through users where possible.
func ToTaskResponse(task *domain.Task, users map[string]*domain.User) TaskResponse {
	team := make([]TeamMember, len(task.Team))
	for i, id := range task.Team {
		team[i] = TeamMember{ID: id}
		if u, ok := users[id]; ok {
			team[i].Name = u.Name
			team[i].Title = u.Title
			team[i].Role = u.Role
			team[i].Email = u.Email
		}
	}

	activities := make([]ActivityResponse, len(task.Activities))
	for i, a := range task.Activities {
		activities[i] = ActivityResponse{
			Type:     string(a.Type),
			Activity: a.Activity,
			By:       ActivityAuthor{ID: a.By},
			Date:     a.Date,
		}
		if u, ok := users[a.By]; ok {
			activities[i].By.Name = u.Name
		}
	}

	assets := task.Assets
	if assets == nil {
		assets = []domain.Asset{}
	}
	subTasks := task.SubTasks
	if subTasks == nil {
		subTasks = []domain.SubTask{}
	}

	return TaskResponse{
		ID:         task.ID,
		Title:      task.Title,
		Team:       team,
		Stage:      string(task.Stage),
		Priority:   string(task.Priority),
		Date:       task.Date,
		Assets:     assets,
		SubTasks:   subTasks,
		Activities: activities,
		IsTrashed:  task.IsTrashed,
		CreatedAt:  task.CreatedAt,
		UpdatedAt:  task.UpdatedAt,
	}
}

// ToTaskResponses converts a task list.
func ToTaskResponses(tasks []*domain.Task, users map[string]*domain.User) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		result[i] = ToTaskResponse(task, users)
	}
	return result
}

// ToDashboardResponse converts a dashboard summary.
func ToDashboardResponse(d *service.Dashboard) DashboardResponse {
	stages := make(map[string]int, len(d.ByStage))
	for stage, count := range d.ByStage {
		stages[string(stage)] = count
	}

	graph := make([]GraphPoint, len(d.ByPriority))
	for i, p := range d.ByPriority {
		graph[i] = GraphPoint{Name: string(p.Name), Total: p.Total}
	}

	users := make([]UserSummary, len(d.RecentUsers))
	for i, u := range d.RecentUsers {
		users[i] = UserSummary{
			ID:        u.ID,
			Name:      u.Name,
			Title:     u.Title,
			Role:      u.Role,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt,
		}
	}

	return DashboardResponse{
		Status:     true,
		Message:    "Successfully",
		TotalTasks: d.TotalTasks,
		Last10Task: ToTaskResponses(d.Recent, d.Users),
		Users:      users,
		Tasks:      stages,
		GraphData:  graph,
	}
}
