package syncer

import (
	"context"

	"chat-client/internal/models"
	"chat-client/internal/observability"
)

// PullGroups replaces the cached group list with the server's.
func (e *Engine) PullGroups(ctx context.Context) error {
	groups, err := e.api.Groups(ctx)
	observability.IncPull("groups", err)
	if err != nil {
		return err
	}
	if err := e.convs.ClearGroups(ctx); err != nil {
		return err
	}
	return e.convs.PutGroups(ctx, groups)
}

// PullGroup fetches one group, upserts it locally, and returns the id of its
// owning conversation.
func (e *Engine) PullGroup(ctx context.Context, id int64) (int64, error) {
	group, err := e.api.Group(ctx, id)
	observability.IncPull("group", err)
	if err != nil {
		return 0, err
	}
	if err := e.convs.PutGroup(ctx, group); err != nil {
		return 0, err
	}
	return group.Conversation, nil
}

// CreateGroup creates a group on the server and records both the group and
// its conversation locally on success.
func (e *Engine) CreateGroup(ctx context.Context, name string, members []string) (models.Group, error) {
	group, conv, err := e.api.CreateGroup(ctx, name, members)
	if err != nil {
		return models.Group{}, err
	}
	if err := e.convs.PutGroup(ctx, group); err != nil {
		return models.Group{}, err
	}
	if err := e.convs.PutConversation(ctx, conv); err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// AddLocalGroup records a group without a network call.
func (e *Engine) AddLocalGroup(ctx context.Context, group models.Group) error {
	return e.convs.PutGroup(ctx, group)
}

// Groups returns the cached group list.
func (e *Engine) Groups(ctx context.Context) ([]models.Group, error) {
	return e.convs.Groups(ctx)
}

// Group returns one cached group; ok is false on a cache miss.
func (e *Engine) Group(ctx context.Context, id int64) (models.Group, bool, error) {
	return e.convs.Group(ctx, id)
}

// PullGroupRequests replaces the cached group requests and returns how many
// are still pending a decision.
func (e *Engine) PullGroupRequests(ctx context.Context) (int, error) {
	reqs, err := e.api.GroupRequests(ctx)
	observability.IncPull("group_requests", err)
	if err != nil {
		return 0, err
	}
	if err := e.convs.ClearGroupRequests(ctx); err != nil {
		return 0, err
	}
	if err := e.convs.PutGroupRequests(ctx, reqs); err != nil {
		return 0, err
	}
	n := 0
	for _, r := range reqs {
		if r.Status == models.StatusPending {
			n++
		}
	}
	return n, nil
}

// GroupRequests returns the cached group requests.
func (e *Engine) GroupRequests(ctx context.Context) ([]models.GroupRequest, error) {
	return e.convs.GroupRequests(ctx)
}

// AddManager promotes manager on the server and, only on success, appends
// them to the cached group. Not optimistic: a failed call leaves local state
// untouched.
func (e *Engine) AddManager(ctx context.Context, groupID int64, manager string) error {
	if err := e.api.SetManagers(ctx, groupID, []string{manager}, nil); err != nil {
		return err
	}
	group, ok, err := e.convs.Group(ctx, groupID)
	if err != nil || !ok {
		return err
	}
	if group.IsManager(manager) {
		return nil
	}
	group.Manager = append(group.Manager, manager)
	return e.convs.PutGroup(ctx, group)
}

// RemoveManager demotes manager on the server and mirrors the change
// locally on success.
func (e *Engine) RemoveManager(ctx context.Context, groupID int64, manager string) error {
	if err := e.api.SetManagers(ctx, groupID, nil, []string{manager}); err != nil {
		return err
	}
	group, ok, err := e.convs.Group(ctx, groupID)
	if err != nil || !ok {
		return err
	}
	kept := group.Manager[:0]
	for _, m := range group.Manager {
		if m != manager {
			kept = append(kept, m)
		}
	}
	group.Manager = kept
	return e.convs.PutGroup(ctx, group)
}

// ChangeMaster transfers group ownership on the server and mirrors the
// change locally on success.
func (e *Engine) ChangeMaster(ctx context.Context, groupID int64, master string) error {
	if err := e.api.SetMaster(ctx, groupID, master); err != nil {
		return err
	}
	group, ok, err := e.convs.Group(ctx, groupID)
	if err != nil || !ok {
		return err
	}
	group.Master = master
	return e.convs.PutGroup(ctx, group)
}

// RemoveMember kicks member from the group on the server and removes them
// from the owning conversation's cached member set on success.
func (e *Engine) RemoveMember(ctx context.Context, groupID int64, member string) error {
	if err := e.api.RemoveMembers(ctx, groupID, []string{member}); err != nil {
		return err
	}
	group, ok, err := e.convs.Group(ctx, groupID)
	if err != nil || !ok {
		return err
	}
	conv, ok, err := e.convs.Conversation(ctx, group.Conversation)
	if err != nil || !ok {
		return err
	}
	kept := conv.Members[:0]
	for _, m := range conv.Members {
		if m != member {
			kept = append(kept, m)
		}
	}
	conv.Members = kept
	return e.convs.PutConversation(ctx, conv)
}

// LeaveGroup leaves the group on the server and drops the local group, its
// conversation and its message log.
func (e *Engine) LeaveGroup(ctx context.Context, groupID int64) error {
	if err := e.api.LeaveGroup(ctx, groupID); err != nil {
		return err
	}
	return e.dropGroupLocally(ctx, groupID)
}

// dropGroupLocally removes everything cached for a group the user is no
// longer part of.
func (e *Engine) dropGroupLocally(ctx context.Context, groupID int64) error {
	group, ok, err := e.convs.Group(ctx, groupID)
	if err != nil || !ok {
		return err
	}
	if err := e.convs.DeleteConversation(ctx, group.Conversation); err != nil {
		return err
	}
	if err := e.convs.DeleteLog(ctx, group.Conversation); err != nil {
		return err
	}
	return e.convs.DeleteGroup(ctx, groupID)
}
