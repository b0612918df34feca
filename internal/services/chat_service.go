package services

import (
	"context"

	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MessageNotifier pushes a freshly persisted message to any live
// websocket subscribers of the conversation pair. Senders do not get an
// optimistic echo; they receive the message through the same push as the
// receiver, after it is stored.
type MessageNotifier interface {
	NotifyPair(userA, userB string, message *dto.MessageResponse)
}

type ChatService interface {
	// SendMessage persists and then pushes. A message may only travel
	// along the trainer-student link.
	SendMessage(ctx context.Context, senderID string, senderRole models.AccountRole, req *dto.SendMessageRequest) (*dto.MessageResponse, error)

	GetConversation(ctx context.Context, userID string, role models.AccountRole, partnerID string) (*dto.ConversationResponse, error)

	// ResolvePartner answers "who do I chat with": a student's trainer.
	// Trainers pick partners from the roster instead.
	ResolvePartner(ctx context.Context, studentID string) (*dto.UserResponse, error)
}

type ChatServiceImpl struct {
	db          *gorm.DB
	messageRepo repositories.MessageRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	notifier    MessageNotifier
}

func NewChatService(
	db *gorm.DB,
	messageRepo repositories.MessageRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	notifier MessageNotifier,
) ChatService {
	return &ChatServiceImpl{
		db:          db,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (s *ChatServiceImpl) SendMessage(ctx context.Context, senderID string, senderRole models.AccountRole, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if err := s.ensureLinked(ctx, senderID, senderRole, req.ReceiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(s.db.WithContext(ctx), message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := buildMessageResponse(message)
	if s.notifier != nil {
		s.notifier.NotifyPair(senderID, req.ReceiverID, resp)
	}
	return resp, nil
}

func (s *ChatServiceImpl) GetConversation(ctx context.Context, userID string, role models.AccountRole, partnerID string) (*dto.ConversationResponse, error) {
	if err := s.ensureLinked(ctx, userID, role, partnerID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindConversation(s.db.WithContext(ctx), userID, partnerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ConversationResponse{Messages: make([]dto.MessageResponse, 0, len(messages))}
	for i := range messages {
		resp.Messages = append(resp.Messages, *buildMessageResponse(&messages[i]))
	}
	return resp, nil
}

func (s *ChatServiceImpl) ResolvePartner(ctx context.Context, studentID string) (*dto.UserResponse, error) {
	db := s.db.WithContext(ctx)

	profile, err := s.profileRepo.FindByUserID(db, studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if profile.TrainerID == nil {
		return nil, apperrors.ErrPartnerNotLinked
	}

	trainer, err := s.userRepo.FindByID(db, *profile.TrainerID)
	if err != nil {
		return nil, apperrors.ErrPartnerNotLinked
	}
	return buildUserResponse(trainer), nil
}

// ensureLinked verifies the pair shares a trainer-student relationship,
// in either direction.
func (s *ChatServiceImpl) ensureLinked(ctx context.Context, userID string, role models.AccountRole, partnerID string) error {
	db := s.db.WithContext(ctx)

	switch role {
	case models.AccountRoleStudent:
		profile, err := s.profileRepo.FindByUserID(db, userID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if profile.TrainerID == nil || *profile.TrainerID != partnerID {
			return apperrors.ErrPartnerNotLinked
		}
	case models.AccountRoleTrainer:
		if _, err := s.profileRepo.FindStudentOfTrainer(db, userID, partnerID); err != nil {
			if apperrors.Is(err, repositories.ErrProfileNotFound) {
				return apperrors.ErrNotRosterMember
			}
			return apperrors.InternalError(err)
		}
	default:
		return apperrors.NewForbiddenError("Unknown account role")
	}
	return nil
}

func buildMessageResponse(message *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		CreatedAt:  message.CreatedAt,
	}
}
