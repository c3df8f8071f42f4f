package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/pkg/errors"
)

func newMessagingUseCaseForTest(env *testEnv) *MessagingUseCase {
	return NewMessagingUseCase(env.convRepo, env.userRepo, env.sponsorshipRepo, nil, nil)
}

func TestStartConversation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 500)
	uc := newMessagingUseCaseForTest(env)

	conversation, err := uc.StartConversation(context.Background(), "biz-1", "club-1", sponsorship.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"biz-1", "club-1"}, conversation.Participants)
	assert.Equal(t, "Acme Ltd", conversation.ParticipantNames["biz-1"])
	assert.Equal(t, entity.RoleClub, conversation.ParticipantRoles["club-1"])
	assert.Equal(t, sponsorship.Title, conversation.Subject)
}

func TestStartConversationReturnsExisting(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	uc := newMessagingUseCaseForTest(env)

	first, err := uc.StartConversation(context.Background(), "biz-1", "club-1", "")
	require.NoError(t, err)

	// Either side starting again lands in the same conversation.
	second, err := uc.StartConversation(context.Background(), "club-1", "biz-1", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartConversationWithSelf(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	uc := newMessagingUseCaseForTest(env)

	_, err := uc.StartConversation(context.Background(), "club-1", "club-1", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	uc := newMessagingUseCaseForTest(env)

	conversation, err := uc.StartConversation(context.Background(), "biz-1", "club-1", "")
	require.NoError(t, err)

	message, err := uc.SendMessage(context.Background(), conversation.ID, "biz-1", "We'd love to sponsor the kit.")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", message.SenderName)
	assert.False(t, message.Read)

	updated, err := uc.GetConversation(context.Background(), conversation.ID, "club-1")
	require.NoError(t, err)
	assert.Equal(t, "We'd love to sponsor the kit.", updated.LastMessage)
	assert.Equal(t, 1, updated.UnreadCount["club-1"])
	assert.Equal(t, 0, updated.UnreadCount["biz-1"])
}

func TestSendMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	env.seedUser(t, "biz-2", "Globex Plc", entity.RoleBusiness)
	uc := newMessagingUseCaseForTest(env)

	conversation, err := uc.StartConversation(context.Background(), "biz-1", "club-1", "")
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), conversation.ID, "biz-1", "   ")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = uc.SendMessage(context.Background(), conversation.ID, "biz-1", strings.Repeat("x", maxMessageLength+1))
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	// Outsiders cannot post into the conversation.
	_, err = uc.SendMessage(context.Background(), conversation.ID, "biz-2", "Hello")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestListMessagesMarksRead(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	uc := newMessagingUseCaseForTest(env)

	conversation, err := uc.StartConversation(context.Background(), "biz-1", "club-1", "")
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), conversation.ID, "biz-1", "First")
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), conversation.ID, "biz-1", "Second")
	require.NoError(t, err)

	messages, total, err := uc.ListMessages(context.Background(), conversation.ID, "club-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, messages, 2)
	assert.Equal(t, "First", messages[0].Content)
	assert.Equal(t, "Second", messages[1].Content)

	// Reading resets the unread counter and flags the messages.
	updated, err := uc.GetConversation(context.Background(), conversation.ID, "club-1")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.UnreadCount["club-1"])

	messages, _, err = uc.ListMessages(context.Background(), conversation.ID, "club-1", 20, 0)
	require.NoError(t, err)
	for _, m := range messages {
		assert.True(t, m.Read)
	}

	// The sender's own reads never mark their messages.
	_, _, err = uc.ListMessages(context.Background(), conversation.ID, "biz-2", 20, 0)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestListConversationsOrderedByActivity(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	env.seedUser(t, "biz-2", "Globex Plc", entity.RoleBusiness)
	uc := newMessagingUseCaseForTest(env)

	first, err := uc.StartConversation(context.Background(), "biz-1", "club-1", "")
	require.NoError(t, err)
	second, err := uc.StartConversation(context.Background(), "biz-2", "club-1", "")
	require.NoError(t, err)

	// A new message in the older conversation bumps it to the top.
	_, err = uc.SendMessage(context.Background(), first.ID, "biz-1", "Still interested?")
	require.NoError(t, err)

	conversations, total, err := uc.ListConversations(context.Background(), "club-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, conversations, 2)
	assert.Equal(t, first.ID, conversations[0].ID)
	assert.Equal(t, second.ID, conversations[1].ID)
}
