// internal/app/features/workspaces/stats.go
package workspaces

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// upcomingWindow bounds the due-soon listing and the task trend.
const upcomingWindow = 7 * 24 * time.Hour

type projectStat struct {
	ID              primitive.ObjectID `json:"id"`
	Title           string             `json:"title"`
	Status          string             `json:"status"`
	TotalTasks      int                `json:"totalTasks"`
	CompletedTasks  int                `json:"completedTasks"`
	CompletionRatio float64            `json:"completionRatio"`
}

type trendBucket struct {
	Day        string `json:"day"`
	ToDo       int    `json:"toDo"`
	InProgress int    `json:"inProgress"`
	Done       int    `json:"done"`
}

type priorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

type statsResponse struct {
	TotalProjects          int `json:"totalProjects"`
	TotalProjectInProgress int `json:"totalProjectInProgress"`
	TotalProjectCompleted  int `json:"totalProjectCompleted"`
	TotalTasks             int `json:"totalTasks"`
	TotalTaskToDo          int `json:"totalTaskToDo"`
	TotalTaskInProgress    int `json:"totalTaskInProgress"`
	TotalTaskCompleted     int `json:"totalTaskCompleted"`

	TaskPriorityDistribution []priorityCount `json:"taskPriorityDistribution"`
	TaskTrends               []trendBucket   `json:"taskTrends"`
	UpcomingTasks            []models.Task   `json:"upcomingTasks"`
	ProjectStats             []projectStat   `json:"projectStats"`
}

// ServeStats returns workspace-wide reporting: project and task counts, a
// task priority distribution, a rolling 7-day trend bucketed by day of
// week, tasks due within the next 7 days, and per-project completion
// ratios. The numbers are recomputed from the live collections on each
// call; nothing is cached or denormalized.
//
// GET /workspaces/{workspaceID}/stats
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ws, ok := h.workspaceFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.IsWorkspaceMember(*ws, userID) {
		apierrors.Forbidden(w, "you are not a member of this workspace")
		return
	}

	projects, err := projectstore.New(h.DB).FindAllByWorkspace(ctx, ws.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "load projects for stats", err)
		return
	}
	projectIDs := make([]primitive.ObjectID, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	tasks, err := taskstore.New(h.DB).FindAllByProjects(ctx, projectIDs)
	if err != nil {
		h.ErrLog.Internal(w, r, "load tasks for stats", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, buildStats(projects, tasks, time.Now().UTC()))
}

// buildStats aggregates the loaded projects and tasks as of now.
func buildStats(projects []models.Project, tasks []models.Task, now time.Time) statsResponse {
	var stats statsResponse

	stats.TotalProjects = len(projects)
	for _, p := range projects {
		switch p.Status {
		case models.ProjectStatusInProgress:
			stats.TotalProjectInProgress++
		case models.ProjectStatusCompleted:
			stats.TotalProjectCompleted++
		}
	}

	priorities := map[string]int{}
	perProject := map[primitive.ObjectID]*projectStat{}
	for i := range projects {
		perProject[projects[i].ID] = &projectStat{
			ID:     projects[i].ID,
			Title:  projects[i].Title,
			Status: projects[i].Status,
		}
	}

	trendStart := dayStart(now).AddDate(0, 0, -6)
	trends := make([]trendBucket, 7)
	for i := range trends {
		trends[i].Day = trendStart.AddDate(0, 0, i).Weekday().String()[:3]
	}

	stats.TotalTasks = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusToDo:
			stats.TotalTaskToDo++
		case models.TaskStatusInProgress:
			stats.TotalTaskInProgress++
		case models.TaskStatusDone:
			stats.TotalTaskCompleted++
		}
		priorities[t.Priority]++

		if ps, ok := perProject[t.Project]; ok && !t.IsArchived {
			ps.TotalTasks++
			if t.Status == models.TaskStatusDone {
				ps.CompletedTasks++
			}
		}

		if idx := int(dayStart(t.UpdatedAt).Sub(trendStart) / (24 * time.Hour)); idx >= 0 && idx < 7 {
			switch t.Status {
			case models.TaskStatusToDo:
				trends[idx].ToDo++
			case models.TaskStatusInProgress:
				trends[idx].InProgress++
			case models.TaskStatusDone:
				trends[idx].Done++
			}
		}

		if t.DueDate != nil && !t.IsArchived && t.Status != models.TaskStatusDone &&
			!t.DueDate.Before(now) && t.DueDate.Before(now.Add(upcomingWindow)) {
			stats.UpcomingTasks = append(stats.UpcomingTasks, t)
		}
	}

	for _, p := range []string{models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh} {
		stats.TaskPriorityDistribution = append(stats.TaskPriorityDistribution,
			priorityCount{Priority: p, Count: priorities[p]})
	}
	stats.TaskTrends = trends

	sort.Slice(stats.UpcomingTasks, func(i, j int) bool {
		return stats.UpcomingTasks[i].DueDate.Before(*stats.UpcomingTasks[j].DueDate)
	})
	if stats.UpcomingTasks == nil {
		stats.UpcomingTasks = []models.Task{}
	}

	stats.ProjectStats = make([]projectStat, 0, len(projects))
	for _, p := range projects {
		ps := perProject[p.ID]
		if ps.TotalTasks > 0 {
			ps.CompletionRatio = float64(ps.CompletedTasks) / float64(ps.TotalTasks)
		}
		stats.ProjectStats = append(stats.ProjectStats, *ps)
	}

	return stats
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
