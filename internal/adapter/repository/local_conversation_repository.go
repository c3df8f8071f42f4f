package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/infrastructure/localstore"
	"sponsorconnect/pkg/errors"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
)

type localConversationRepository struct {
	store *localstore.Store
}

func NewLocalConversationRepository(store *localstore.Store) repository.ConversationRepository {
	return &localConversationRepository{store: store}
}

func (r *localConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	if conversation.UnreadCount == nil {
		conversation.UnreadCount = make(map[string]int)
	}

	if err := r.store.Set(conversationsCollection, conversation.ID, conversation); err != nil {
		return errors.Internal("Failed to create conversation", err)
	}
	return nil
}

func (r *localConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var conversation entity.Conversation
	if err := r.store.Get(conversationsCollection, id, &conversation); err != nil {
		if err == localstore.ErrNotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}
	return &conversation, nil
}

func (r *localConversationRepository) FindByParticipants(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	var found *entity.Conversation
	err := r.store.All(conversationsCollection, func(id string, raw json.RawMessage) error {
		var conversation entity.Conversation
		if err := json.Unmarshal(raw, &conversation); err != nil {
			return nil
		}
		if conversation.HasParticipant(userA) && conversation.HasParticipant(userB) {
			found = &conversation
		}
		return nil
	})
	if err != nil {
		return nil, errors.Internal("Failed to search conversations", err)
	}
	if found == nil {
		return nil, errors.NotFound("Conversation", nil)
	}
	return found, nil
}

func (r *localConversationRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	var conversations []*entity.Conversation
	err := r.store.All(conversationsCollection, func(id string, raw json.RawMessage) error {
		var conversation entity.Conversation
		if err := json.Unmarshal(raw, &conversation); err != nil {
			return nil
		}
		if conversation.HasParticipant(userID) {
			conversations = append(conversations, &conversation)
		}
		return nil
	})
	if err != nil {
		return nil, 0, errors.Internal("Failed to list conversations", err)
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})

	total := int64(len(conversations))
	start, end := paginate(len(conversations), limit, offset)
	return conversations[start:end], total, nil
}

func (r *localConversationRepository) Update(ctx context.Context, conversation *entity.Conversation) error {
	conversation.UpdatedAt = time.Now()
	if err := r.store.Set(conversationsCollection, conversation.ID, conversation); err != nil {
		return errors.Internal("Failed to update conversation", err)
	}
	return nil
}

func (r *localConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	if err := r.store.Set(messagesCollection, message.ID, message); err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *localConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	var messages []*entity.Message
	err := r.store.All(messagesCollection, func(id string, raw json.RawMessage) error {
		var message entity.Message
		if err := json.Unmarshal(raw, &message); err != nil {
			return nil
		}
		if message.ConversationID == conversationID {
			messages = append(messages, &message)
		}
		return nil
	})
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	total := int64(len(messages))
	start, end := paginate(len(messages), limit, offset)
	return messages[start:end], total, nil
}

func (r *localConversationRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	messages, _, err := r.ListMessages(ctx, conversationID, 0, 0)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if message.Read || message.SenderID == readerID {
			continue
		}
		message.Read = true
		if err := r.store.Set(messagesCollection, message.ID, message); err != nil {
			return errors.Internal("Failed to mark message read", err)
		}
	}

	return nil
}
