package group

// The functions below never modify their input; callers persist the returned
// slice in a single write so no state with zero or two leaders is observable.

// WithLeader returns members with newLeaderID as the sole leader and every
// other member demoted.
func WithLeader(members []Member, newLeaderID string) ([]Member, error) {
	if indexOf(members, newLeaderID) < 0 {
		return nil, ErrMemberNotFound
	}
	out := make([]Member, len(members))
	for i, m := range members {
		if m.ID == newLeaderID {
			m.Role = RoleLeader
		} else {
			m.Role = RoleMember
		}
		out[i] = m
	}
	return out, nil
}

// WithoutMember returns members minus memberID. The leader and the last
// remaining member cannot be removed.
func WithoutMember(members []Member, memberID string) ([]Member, error) {
	idx := indexOf(members, memberID)
	if idx < 0 {
		return nil, ErrMemberNotFound
	}
	if len(members) == 1 {
		return nil, ErrLastMember
	}
	if members[idx].Role == RoleLeader {
		return nil, ErrLeaderRemoval
	}
	out := make([]Member, 0, len(members)-1)
	out = append(out, members[:idx]...)
	return append(out, members[idx+1:]...), nil
}

// WithMember appends m as a regular member.
func WithMember(members []Member, m Member) ([]Member, error) {
	if indexOf(members, m.ID) >= 0 {
		return nil, ErrAlreadyMember
	}
	m.Role = RoleMember
	out := make([]Member, 0, len(members)+1)
	out = append(out, members...)
	return append(out, m), nil
}
