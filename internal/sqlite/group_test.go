package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/academe/internal/domain/group"
	"github.com/rpggio/academe/internal/repository"
	"github.com/stretchr/testify/require"
)

func newGroup(id, projectID string) *group.Group {
	now := time.Now().UTC()
	return &group.Group{
		ID:           id,
		Name:         "Data Explorers",
		ProjectID:    projectID,
		ProjectTitle: "Machine Learning for Healthcare",
		Members: []group.Member{
			{ID: "student-1", Name: "John Davis", Email: "john.davis@university.edu", Role: group.RoleLeader},
			{ID: "student-2", Name: "Emily Wilson", Email: "emily.wilson@university.edu", Role: group.RoleMember},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestGroupRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newGroup("g1", "p1")))

	g, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, g.Members, 2)
	require.Equal(t, "student-1", g.Members[0].ID)
	require.Equal(t, group.RoleLeader, g.Members[0].Role)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGroupRepository_UpdateReplacesMembers(t *testing.T) {
	db := NewTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g := newGroup("g1", "p1")
	require.NoError(t, repo.Create(ctx, g))

	members, err := group.WithLeader(g.Members, "student-2")
	require.NoError(t, err)
	g.Members = append(members, group.Member{ID: "student-3", Name: "Sarah Chen", Role: group.RoleMember})
	g.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, g))

	got, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Len(t, got.Members, 3)
	require.Equal(t, group.RoleMember, got.Members[0].Role)
	require.Equal(t, group.RoleLeader, got.Members[1].Role)
	require.Equal(t, "student-3", got.Members[2].ID)
}

func TestGroupRepository_UpdateRejectsTwoLeaders(t *testing.T) {
	db := NewTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g := newGroup("g1", "p1")
	require.NoError(t, repo.Create(ctx, g))

	broken := *g
	broken.Members = []group.Member{
		{ID: "student-1", Name: "John Davis", Role: group.RoleLeader},
		{ID: "student-2", Name: "Emily Wilson", Role: group.RoleLeader},
	}
	require.Error(t, repo.Update(ctx, &broken))

	got, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, g.Members, got.Members)
}

func TestGroupRepository_ListAndDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newGroup("g1", "p1")))
	g2 := newGroup("g2", "p2")
	g2.Members = g2.Members[:1]
	require.NoError(t, repo.Create(ctx, g2))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Len(t, list[0].Members, 2)
	require.Len(t, list[1].Members, 1)

	require.NoError(t, repo.Delete(ctx, "g1"))
	require.ErrorIs(t, repo.Delete(ctx, "g1"), repository.ErrNotFound)

	var orphans int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM group_members WHERE group_id = 'g1'`).Scan(&orphans))
	require.Zero(t, orphans)
}
