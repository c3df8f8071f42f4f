package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/infrastructure/ratelimit"
	ws "sponsorconnect/internal/infrastructure/websocket"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/logger"
)

const maxMessageLength = 2000

// MessagingUseCase handles club/business conversations. A pair of users
// shares at most one conversation; starting a second one returns the first.
type MessagingUseCase struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	sponsorshipRepo  repository.SponsorshipRepository
	wsManager        *ws.Manager
	rateLimiter      *ratelimit.RateLimiter
}

func NewMessagingUseCase(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	sponsorshipRepo repository.SponsorshipRepository,
	wsManager *ws.Manager,
	rateLimiter *ratelimit.RateLimiter,
) *MessagingUseCase {
	return &MessagingUseCase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		sponsorshipRepo:  sponsorshipRepo,
		wsManager:        wsManager,
		rateLimiter:      rateLimiter,
	}
}

// StartConversation finds or creates the conversation between the caller and
// the recipient. The optional sponsorshipID seeds the subject line.
func (uc *MessagingUseCase) StartConversation(ctx context.Context, initiatorID, recipientID, sponsorshipID string) (*entity.Conversation, error) {
	if initiatorID == recipientID {
		return nil, errors.BadRequest("You cannot message yourself", nil)
	}

	initiator, err := uc.userRepo.GetByID(ctx, initiatorID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	recipient, err := uc.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, errors.NotFound("Recipient", err)
	}

	if existing, err := uc.conversationRepo.FindByParticipants(ctx, initiatorID, recipientID); err == nil && existing != nil {
		return existing, nil
	}

	if uc.rateLimiter != nil {
		if allowed, wait := uc.rateLimiter.Allow(initiatorID, "start_conversation"); !allowed {
			return nil, errors.TooManyRequests(fmt.Sprintf("Too many new conversations, try again in %s", wait.Round(time.Second)))
		}
	}

	subject := ""
	if sponsorshipID != "" {
		if sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, sponsorshipID); err == nil {
			subject = sponsorship.Title
		}
	}

	conversation := &entity.Conversation{
		Participants: []string{initiatorID, recipientID},
		ParticipantNames: map[string]string{
			initiatorID: initiator.Name,
			recipientID: recipient.Name,
		},
		ParticipantRoles: map[string]string{
			initiatorID: initiator.Role,
			recipientID: recipient.Role,
		},
		Subject:       subject,
		SponsorshipID: sponsorshipID,
		UnreadCount:   map[string]int{initiatorID: 0, recipientID: 0},
		LastMessageAt: time.Now(),
	}

	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	logger.Info("Conversation %s started between %s and %s", conversation.ID, initiatorID, recipientID)
	return conversation, nil
}

func (uc *MessagingUseCase) SendMessage(ctx context.Context, conversationID, senderID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Validation("Message content is required", nil)
	}
	if len(content) > maxMessageLength {
		return nil, errors.Validation(fmt.Sprintf("Message must not exceed %d characters", maxMessageLength), nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	if uc.rateLimiter != nil {
		if allowed, wait := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
			return nil, errors.TooManyRequests(fmt.Sprintf("Sending too fast, try again in %s", wait.Round(time.Second)))
		}
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     conversation.ParticipantNames[senderID],
		Content:        content,
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	recipientID := conversation.OtherParticipant(senderID)

	conversation.LastMessage = content
	conversation.LastMessageAt = message.CreatedAt
	if conversation.UnreadCount == nil {
		conversation.UnreadCount = make(map[string]int)
	}
	conversation.UnreadCount[recipientID]++
	if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
		logger.Warn("Failed to update conversation preview %s: %v", conversationID, err)
	}

	if uc.wsManager != nil && recipientID != "" {
		uc.wsManager.NotifyUser(recipientID, ws.Event{
			Type:    "message",
			Payload: message,
		})
	}

	return message, nil
}

func (uc *MessagingUseCase) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	return uc.conversationRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *MessagingUseCase) GetConversation(ctx context.Context, conversationID, userID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}
	return conversation, nil
}

// ListMessages returns messages oldest first and marks the other side's
// messages read, resetting the caller's unread counter.
func (uc *MessagingUseCase) ListMessages(ctx context.Context, conversationID, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not part of this conversation", nil)
	}

	messages, total, err := uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := uc.conversationRepo.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		logger.Warn("Failed to mark messages read in %s: %v", conversationID, err)
	}
	if conversation.UnreadCount[userID] != 0 {
		conversation.UnreadCount[userID] = 0
		if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
			logger.Warn("Failed to reset unread count in %s: %v", conversationID, err)
		}
	}

	return messages, total, nil
}
