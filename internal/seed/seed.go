// Package seed loads the demo dataset: three projects, five students, two
// groups and a handful of tasks.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/domain/project"
	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/domain/task"
)

// Repositories receives the dataset.
type Repositories struct {
	Projects project.Repository
	Groups   group.Repository
	Tasks    task.Repository
	Students student.Repository
}

const avatar = "/placeholder.svg"

// Students returns the student pool.
func Students() []student.Student {
	return []student.Student{
		{ID: "student-1", Name: "John Davis", Email: "john.davis@university.edu", Avatar: avatar},
		{ID: "student-2", Name: "Emily Wilson", Email: "emily.wilson@university.edu", Avatar: avatar},
		{ID: "student-3", Name: "Sarah Chen", Email: "sarah.chen@university.edu", Avatar: avatar},
		{ID: "student-4", Name: "Michael Brown", Email: "michael.brown@university.edu", Avatar: avatar},
		{ID: "student-5", Name: "Jessica Lopez", Email: "jessica.lopez@university.edu", Avatar: avatar},
	}
}

// Projects returns the demo projects.
func Projects() []project.Project {
	created := ts("2023-01-01T00:00:00Z")
	return []project.Project{
		{
			ID:          "project-1",
			Title:       "Machine Learning for Healthcare",
			Description: "Applying ML algorithms to healthcare data for predictive analytics",
			MentorID:    "mentor-1",
			MentorName:  "Dr. Alan Smith",
			Status:      project.StatusInProgress,
			Progress:    30,
			Tags:        []string{"Machine Learning", "Healthcare", "Data Science"},
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "project-2",
			Title:       "Sustainable Urban Design",
			Description: "Researching sustainable practices for urban development",
			MentorID:    "mentor-2",
			MentorName:  "Dr. Maria Johnson",
			Status:      project.StatusOpen,
			Tags:        []string{"Urban Planning", "Sustainability", "Architecture"},
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:             "project-3",
			Title:          "Quantum Computing Algorithms",
			Description:    "Development of new algorithms for quantum computers",
			MentorID:       "mentor-3",
			MentorName:     "Dr. Raj Patel",
			TeamLeaderID:   "student-3",
			TeamLeaderName: "Sarah Chen",
			Status:         project.StatusInProgress,
			Progress:       45,
			Tags:           []string{"Quantum Computing", "Algorithms", "Computer Science"},
			CreatedAt:      created,
			UpdatedAt:      created,
		},
	}
}

// Groups returns the demo groups.
func Groups() []group.Group {
	pool := Students()
	member := func(i int, r group.MemberRole) group.Member {
		s := pool[i]
		return group.Member{ID: s.ID, Name: s.Name, Email: s.Email, Role: r, Avatar: s.Avatar}
	}
	return []group.Group{
		{
			ID:           "group-1",
			Name:         "Data Explorers",
			Description:  "Focused on healthcare data analysis",
			ProjectID:    "project-1",
			ProjectTitle: "Machine Learning for Healthcare",
			Members:      []group.Member{member(0, group.RoleLeader), member(1, group.RoleMember)},
			Progress:     30,
			CreatedAt:    ts("2023-01-15T10:30:00Z"),
			UpdatedAt:    ts("2023-02-20T14:15:00Z"),
		},
		{
			ID:           "group-2",
			Name:         "Urban Innovators",
			Description:  "Working on sustainable urban planning solutions",
			ProjectID:    "project-2",
			ProjectTitle: "Sustainable Urban Design",
			Members:      []group.Member{member(2, group.RoleLeader)},
			Progress:     10,
			CreatedAt:    ts("2023-02-01T09:45:00Z"),
			UpdatedAt:    ts("2023-02-25T11:20:00Z"),
		},
	}
}

// Tasks returns the demo tasks.
func Tasks() []task.Task {
	created := ts("2023-01-01T00:00:00Z")
	john := task.Assignee{ID: "student-1", Name: "John Davis", Avatar: avatar}
	emily := task.Assignee{ID: "student-2", Name: "Emily Wilson", Avatar: avatar}
	sarah := task.Assignee{ID: "student-3", Name: "Sarah Chen", Avatar: avatar}
	done := ts("2025-05-09T16:00:00Z")

	mk := func(id, title, desc string, st task.Status, pr task.Priority, due string, projectID, projectTitle, groupID, groupName string, who ...task.Assignee) task.Task {
		t := task.Task{
			ID:           id,
			Title:        title,
			Description:  desc,
			Status:       st,
			Priority:     pr,
			DueDate:      ts(due + "T00:00:00Z"),
			ProjectID:    projectID,
			ProjectTitle: projectTitle,
			GroupID:      groupID,
			GroupName:    groupName,
			Assignees:    append([]task.Assignee{}, who...),
			CreatedAt:    created,
			UpdatedAt:    created,
		}
		if st == task.StatusCompleted {
			t.CompletedAt = &done
		}
		return t
	}

	const (
		ml    = "Machine Learning for Healthcare"
		urban = "Sustainable Urban Design"
	)
	return []task.Task{
		mk("task-1", "Literature Review", "Review existing research papers on the topic and create a summary",
			task.StatusInProgress, task.PriorityHigh, "2025-05-20", "project-1", ml, "group-1", "Data Explorers", john),
		mk("task-2", "Data Collection", "Collect dataset from the provided sources",
			task.StatusTodo, task.PriorityMedium, "2025-05-25", "project-1", ml, "group-1", "Data Explorers", john, emily),
		mk("task-3", "Methodology Design", "Design research methodology and framework",
			task.StatusReview, task.PriorityHigh, "2025-05-15", "project-1", ml, "group-1", "Data Explorers", emily),
		mk("task-4", "Survey Creation", "Create survey questions for data collection",
			task.StatusCompleted, task.PriorityLow, "2025-05-10", "project-1", ml, "group-1", "Data Explorers", john),
		mk("task-5", "Site Analysis", "Survey green spaces and transit access in the study district",
			task.StatusTodo, task.PriorityMedium, "2025-06-05", "project-2", urban, "group-2", "Urban Innovators", sarah),
	}
}

// Load writes the dataset through repos. It stops at the first failure.
func Load(ctx context.Context, repos Repositories) error {
	for _, s := range Students() {
		if err := repos.Students.Create(ctx, &s); err != nil {
			return fmt.Errorf("seeding student %s: %w", s.ID, err)
		}
	}
	for _, p := range Projects() {
		if err := repos.Projects.Create(ctx, &p); err != nil {
			return fmt.Errorf("seeding project %s: %w", p.ID, err)
		}
	}
	for _, g := range Groups() {
		if err := repos.Groups.Create(ctx, &g); err != nil {
			return fmt.Errorf("seeding group %s: %w", g.ID, err)
		}
	}
	for _, t := range Tasks() {
		if err := repos.Tasks.Create(ctx, &t); err != nil {
			return fmt.Errorf("seeding task %s: %w", t.ID, err)
		}
	}
	return nil
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
