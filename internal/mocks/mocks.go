// Package mocks provides testify mocks for the gateway API.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chat-client/internal/gateway"
	"chat-client/internal/models"
)

type GatewayMock struct {
	mock.Mock
}

var _ gateway.API = (*GatewayMock)(nil)

func (m *GatewayMock) UserInfo(ctx context.Context) (models.UserInfo, error) {
	args := m.Called(ctx)
	var u models.UserInfo
	if val := args.Get(0); val != nil {
		u = val.(models.UserInfo)
	}
	return u, args.Error(1)
}

func (m *GatewayMock) Conversations(ctx context.Context) ([]models.Conversation, error) {
	args := m.Called(ctx)
	var list []models.Conversation
	if val := args.Get(0); val != nil {
		list = val.([]models.Conversation)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) Conversation(ctx context.Context, id int64) (models.Conversation, error) {
	args := m.Called(ctx, id)
	var c models.Conversation
	if val := args.Get(0); val != nil {
		c = val.(models.Conversation)
	}
	return c, args.Error(1)
}

func (m *GatewayMock) CreateConversation(ctx context.Context, typ int, members []string) (models.Conversation, error) {
	args := m.Called(ctx, typ, members)
	var c models.Conversation
	if val := args.Get(0); val != nil {
		c = val.(models.Conversation)
	}
	return c, args.Error(1)
}

func (m *GatewayMock) Messages(ctx context.Context, conversationID, after int64) ([]models.Message, int, error) {
	args := m.Called(ctx, conversationID, after)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Int(1), args.Error(2)
}

func (m *GatewayMock) SendMessage(ctx context.Context, conversationID int64, content string, replyTo int64) (models.Message, error) {
	args := m.Called(ctx, conversationID, content, replyTo)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *GatewayMock) MarkConversationRead(ctx context.Context, conversationID int64) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

func (m *GatewayMock) DeleteMessage(ctx context.Context, messageID int64) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *GatewayMock) Friends(ctx context.Context) ([]models.Friend, error) {
	args := m.Called(ctx)
	var list []models.Friend
	if val := args.Get(0); val != nil {
		list = val.([]models.Friend)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) FriendsByTag(ctx context.Context, tag string) ([]models.Friend, error) {
	args := m.Called(ctx, tag)
	var list []models.Friend
	if val := args.Get(0); val != nil {
		list = val.([]models.Friend)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	args := m.Called(ctx)
	var list []models.FriendRequest
	if val := args.Get(0); val != nil {
		list = val.([]models.FriendRequest)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) FindUser(ctx context.Context, username string) (models.UserInfo, error) {
	args := m.Called(ctx, username)
	var u models.UserInfo
	if val := args.Get(0); val != nil {
		u = val.(models.UserInfo)
	}
	return u, args.Error(1)
}

func (m *GatewayMock) AddFriend(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *GatewayMock) ProcessFriendRequest(ctx context.Context, username string, accept bool) error {
	args := m.Called(ctx, username, accept)
	return args.Error(0)
}

func (m *GatewayMock) DeleteFriend(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *GatewayMock) TagFriends(ctx context.Context, friends []string, tag string) error {
	args := m.Called(ctx, friends, tag)
	return args.Error(0)
}

func (m *GatewayMock) Groups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	var list []models.Group
	if val := args.Get(0); val != nil {
		list = val.([]models.Group)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) Group(ctx context.Context, id int64) (models.Group, error) {
	args := m.Called(ctx, id)
	var g models.Group
	if val := args.Get(0); val != nil {
		g = val.(models.Group)
	}
	return g, args.Error(1)
}

func (m *GatewayMock) CreateGroup(ctx context.Context, name string, members []string) (models.Group, models.Conversation, error) {
	args := m.Called(ctx, name, members)
	var g models.Group
	if val := args.Get(0); val != nil {
		g = val.(models.Group)
	}
	var c models.Conversation
	if val := args.Get(1); val != nil {
		c = val.(models.Conversation)
	}
	return g, c, args.Error(2)
}

func (m *GatewayMock) SetManagers(ctx context.Context, groupID int64, add, remove []string) error {
	args := m.Called(ctx, groupID, add, remove)
	return args.Error(0)
}

func (m *GatewayMock) SetMaster(ctx context.Context, groupID int64, master string) error {
	args := m.Called(ctx, groupID, master)
	return args.Error(0)
}

func (m *GatewayMock) RemoveMembers(ctx context.Context, groupID int64, members []string) error {
	args := m.Called(ctx, groupID, members)
	return args.Error(0)
}

func (m *GatewayMock) GroupNotices(ctx context.Context, groupID int64) ([]models.Notice, error) {
	args := m.Called(ctx, groupID)
	var list []models.Notice
	if val := args.Get(0); val != nil {
		list = val.([]models.Notice)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) PostGroupNotice(ctx context.Context, groupID int64, content string) (models.Notice, error) {
	args := m.Called(ctx, groupID, content)
	var n models.Notice
	if val := args.Get(0); val != nil {
		n = val.(models.Notice)
	}
	return n, args.Error(1)
}

func (m *GatewayMock) LeaveGroup(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *GatewayMock) InviteToGroup(ctx context.Context, groupID int64, friend string) error {
	args := m.Called(ctx, groupID, friend)
	return args.Error(0)
}

func (m *GatewayMock) GroupRequests(ctx context.Context) ([]models.GroupRequest, error) {
	args := m.Called(ctx)
	var list []models.GroupRequest
	if val := args.Get(0); val != nil {
		list = val.([]models.GroupRequest)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) GroupRequestsFor(ctx context.Context, groupID int64) ([]models.GroupRequest, error) {
	args := m.Called(ctx, groupID)
	var list []models.GroupRequest
	if val := args.Get(0); val != nil {
		list = val.([]models.GroupRequest)
	}
	return list, args.Error(1)
}

func (m *GatewayMock) ProcessGroupRequest(ctx context.Context, groupID int64, username string, accept bool) error {
	args := m.Called(ctx, groupID, username, accept)
	return args.Error(0)
}
