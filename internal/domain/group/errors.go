package group

import (
	"fmt"

	"github.com/rpggio/academe/internal/domain/apperr"
)

var (
	// ErrGroupNotFound indicates the group doesn't exist.
	ErrGroupNotFound = fmt.Errorf("group %w", apperr.ErrNotFound)
	// ErrMemberNotFound indicates the student is not a member of the group.
	ErrMemberNotFound = fmt.Errorf("group member %w", apperr.ErrNotFound)
	// ErrLeaderRemoval indicates an attempt to remove the current leader.
	ErrLeaderRemoval = fmt.Errorf("%w: cannot remove the group leader, change the leader first", apperr.ErrInvalidOperation)
	// ErrLastMember indicates an attempt to remove the only member.
	ErrLastMember = fmt.Errorf("%w: cannot remove the last member of the group", apperr.ErrInvalidOperation)
	// ErrAlreadyMember indicates the student already belongs to the group.
	ErrAlreadyMember = fmt.Errorf("%w: student is already a member of this group", apperr.ErrInvalidOperation)
)
