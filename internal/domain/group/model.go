package group

import "time"

// MemberRole is a member's position within one group.
type MemberRole string

const (
	RoleLeader MemberRole = "leader"
	RoleMember MemberRole = "member"
)

// Member is a student as they appear inside a group.
type Member struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   MemberRole `json:"role"`
	Avatar string     `json:"avatar,omitempty"`
}

// Group is a team of students working on one project. Members keeps join
// order and holds exactly one leader.
type Group struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ProjectID    string    `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	Members      []Member  `json:"members"`
	Progress     int       `json:"progress"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MemberCount returns the number of members.
func (g Group) MemberCount() int {
	return len(g.Members)
}

// Leader returns the group's leader.
func (g Group) Leader() (Member, bool) {
	for _, m := range g.Members {
		if m.Role == RoleLeader {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether the student is in the group.
func (g Group) HasMember(id string) bool {
	return indexOf(g.Members, id) >= 0
}

func indexOf(members []Member, id string) int {
	for i, m := range members {
		if m.ID == id {
			return i
		}
	}
	return -1
}
