package service

import (
	"context"
	"errors"

	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

// FavoriteStore is the favorite persistence the service needs.
type FavoriteStore interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	GetByUser(ctx context.Context, userID uint) ([]model.Favorite, error)
	Exists(ctx context.Context, userID, daycareID uint) (bool, error)
	DeleteByUserAndDaycare(ctx context.Context, userID, daycareID uint) error
}

// ApplicationStore is the application persistence the service needs.
type ApplicationStore interface {
	Create(ctx context.Context, application *model.Application) error
	GetByID(ctx context.Context, id uint) (*model.Application, error)
	GetByUser(ctx context.Context, userID uint) ([]model.Application, error)
	GetByDaycare(ctx context.Context, daycareID uint) ([]model.Application, error)
	Save(ctx context.Context, application *model.Application) error
	Delete(ctx context.Context, id uint) error
}

// ContactLogStore is the contact log persistence the service needs.
type ContactLogStore interface {
	Create(ctx context.Context, log *model.ContactLog) error
	GetByUser(ctx context.Context, userID uint) ([]model.ContactLog, error)
}

// MessageStore is the message persistence the service needs.
type MessageStore interface {
	Create(ctx context.Context, message *model.Message) error
	GetInbox(ctx context.Context, userID uint) ([]model.Message, error)
	GetSent(ctx context.Context, userID uint) ([]model.Message, error)
	MarkRead(ctx context.Context, id, recipientID uint) error
}

// FavoriteService manages a parent's saved listings. Every operation
// is scoped to the owning user.
type FavoriteService struct {
	favorites FavoriteStore
	listings  ListingStore
}

func NewFavoriteService(favorites FavoriteStore, listings ListingStore) *FavoriteService {
	return &FavoriteService{favorites: favorites, listings: listings}
}

func (s *FavoriteService) Add(ctx context.Context, userID uint, req dto.CreateFavoriteRequest) (*model.Favorite, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Add")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.listings.GetByID(ctx, req.DaycareID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDaycareNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	exists, err := s.favorites.Exists(ctx, userID, req.DaycareID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		return nil, apperrors.ErrDuplicate
	}

	favorite := &model.Favorite{UserID: userID, DaycareID: req.DaycareID}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Favorite added").
		Uint("user_id", userID).
		Uint("daycare_id", req.DaycareID).
		Log()

	return favorite, nil
}

func (s *FavoriteService) List(ctx context.Context, userID uint) ([]model.Favorite, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	favorites, err := s.favorites.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return favorites, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, daycareID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Remove")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.favorites.DeleteByUserAndDaycare(ctx, userID, daycareID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// ApplicationService manages enrollment applications. Parents own
// their applications; providers may review applications submitted to
// their own listing only.
type ApplicationService struct {
	applications ApplicationStore
	listings     ListingStore
}

func NewApplicationService(applications ApplicationStore, listings ListingStore) *ApplicationService {
	return &ApplicationService{applications: applications, listings: listings}
}

func (s *ApplicationService) Create(ctx context.Context, userID uint, req dto.CreateApplicationRequest) (*model.Application, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.listings.GetByID(ctx, req.DaycareID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDaycareNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	application := &model.Application{
		UserID:    userID,
		DaycareID: req.DaycareID,
		ChildName: req.ChildName,
		ChildAge:  req.ChildAge,
		StartDate: req.StartDate,
		Notes:     req.Notes,
		Status:    model.ApplicationStatusPending,
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Application submitted").
		Uint("user_id", userID).
		Uint("daycare_id", req.DaycareID).
		Log()

	return application, nil
}

func (s *ApplicationService) ListForUser(ctx context.Context, userID uint) ([]model.Application, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListForUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	applications, err := s.applications.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return applications, nil
}

// ListForProvider returns the applications submitted to the provider's
// listing.
func (s *ApplicationService) ListForProvider(ctx context.Context, provider *model.User) ([]model.Application, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListForProvider")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if provider.DaycareID == nil {
		return nil, apperrors.ErrForbidden
	}

	applications, err := s.applications.GetByDaycare(ctx, *provider.DaycareID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return applications, nil
}

// UpdateStatus lets a provider move an application through the review
// states. The application must belong to the provider's listing.
func (s *ApplicationService) UpdateStatus(ctx context.Context, provider *model.User, applicationID uint, req dto.UpdateApplicationStatusRequest) (*model.Application, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateStatus")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if provider.DaycareID == nil || *provider.DaycareID != application.DaycareID {
		return nil, apperrors.ErrForbidden
	}

	application.Status = req.Status
	if req.ProviderNote != "" {
		application.ProviderNote = req.ProviderNote
	}

	if err := s.applications.Save(ctx, application); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Application status updated").
		Uint("application_id", applicationID).
		String("status", req.Status).
		Log()

	return application, nil
}

// Withdraw deletes a parent's own application.
func (s *ApplicationService) Withdraw(ctx context.Context, userID, applicationID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Withdraw")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if application.UserID != userID {
		return apperrors.ErrForbidden
	}

	return s.applications.Delete(ctx, applicationID)
}

// ContactLogService records a parent's outreach history.
type ContactLogService struct {
	logs     ContactLogStore
	listings ListingStore
}

func NewContactLogService(logs ContactLogStore, listings ListingStore) *ContactLogService {
	return &ContactLogService{logs: logs, listings: listings}
}

func (s *ContactLogService) Create(ctx context.Context, userID uint, req dto.CreateContactLogRequest) (*model.ContactLog, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.listings.GetByID(ctx, req.DaycareID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDaycareNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	log := &model.ContactLog{
		UserID:    userID,
		DaycareID: req.DaycareID,
		Method:    req.Method,
		Notes:     req.Notes,
	}

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return log, nil
}

func (s *ContactLogService) List(ctx context.Context, userID uint) ([]model.ContactLog, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logs, err := s.logs.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return logs, nil
}

// MessageService handles direct messages between accounts.
type MessageService struct {
	messages MessageStore
	users    UserStore
}

func NewMessageService(messages MessageStore, users UserStore) *MessageService {
	return &MessageService{messages: messages, users: users}
}

func (s *MessageService) Send(ctx context.Context, senderID uint, req dto.SendMessageRequest) (*model.Message, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Send")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Message sent").
		Uint("sender_id", senderID).
		Uint("recipient_id", req.RecipientID).
		Log()

	return message, nil
}

func (s *MessageService) Inbox(ctx context.Context, userID uint) ([]model.Message, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Inbox")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	messages, err := s.messages.GetInbox(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return messages, nil
}

func (s *MessageService) Sent(ctx context.Context, userID uint) ([]model.Message, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Sent")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	messages, err := s.messages.GetSent(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return messages, nil
}

func (s *MessageService) MarkRead(ctx context.Context, userID, messageID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "MarkRead")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.messages.MarkRead(ctx, messageID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
