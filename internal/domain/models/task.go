// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task status values. Status is a free assignment across the three values;
// there is no enforced transition order.
const (
	TaskStatusToDo       = "To Do"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []string{TaskStatusToDo, TaskStatusInProgress, TaskStatusDone}

// ValidTaskStatus reports whether status is a known task status.
func ValidTaskStatus(status string) bool {
	for _, s := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Task priority values.
const (
	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// ValidTaskPriority reports whether priority is a known task priority.
func ValidTaskPriority(priority string) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// SubTask is an ordered checklist entry embedded on the task document.
// Completing every sub-task does not cascade to the parent task's status.
type SubTask struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Task is a unit of work within a project. All task authorization derives
// from the owning project's member list; tasks carry no ACL of their own.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Project     primitive.ObjectID `bson:"project" json:"project"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`

	Assignees []primitive.ObjectID `bson:"assignees" json:"assignees"`
	Watchers  []primitive.ObjectID `bson:"watchers" json:"watchers"`
	DueDate   *time.Time           `bson:"due_date,omitempty" json:"dueDate,omitempty"`

	SubTasks []SubTask            `bson:"sub_tasks" json:"subTasks"`
	Comments []primitive.ObjectID `bson:"comments" json:"comments"`

	CreatedBy  primitive.ObjectID `bson:"created_by" json:"createdBy"`
	IsArchived bool               `bson:"is_archived" json:"isArchived"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsWatcher reports whether userID appears in the task's watcher list.
func (t Task) IsWatcher(userID primitive.ObjectID) bool {
	for _, w := range t.Watchers {
		if w == userID {
			return true
		}
	}
	return false
}
