package service

import (
	"context"
	"testing"

	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	"gorm.io/gorm"
)

type fakeFavoriteStore struct {
	favorites []model.Favorite
	nextID    uint
}

func (s *fakeFavoriteStore) Create(ctx context.Context, favorite *model.Favorite) error {
	s.nextID++
	favorite.ID = s.nextID
	s.favorites = append(s.favorites, *favorite)
	return nil
}

func (s *fakeFavoriteStore) GetByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var out []model.Favorite
	for _, f := range s.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFavoriteStore) Exists(ctx context.Context, userID, daycareID uint) (bool, error) {
	for _, f := range s.favorites {
		if f.UserID == userID && f.DaycareID == daycareID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFavoriteStore) DeleteByUserAndDaycare(ctx context.Context, userID, daycareID uint) error {
	for i, f := range s.favorites {
		if f.UserID == userID && f.DaycareID == daycareID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeApplicationStore struct {
	applications map[uint]*model.Application
	nextID       uint
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[uint]*model.Application)}
}

func (s *fakeApplicationStore) Create(ctx context.Context, application *model.Application) error {
	s.nextID++
	application.ID = s.nextID
	copied := *application
	s.applications[application.ID] = &copied
	return nil
}

func (s *fakeApplicationStore) GetByID(ctx context.Context, id uint) (*model.Application, error) {
	application, ok := s.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *application
	return &copied, nil
}

func (s *fakeApplicationStore) GetByUser(ctx context.Context, userID uint) ([]model.Application, error) {
	var out []model.Application
	for _, a := range s.applications {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) GetByDaycare(ctx context.Context, daycareID uint) ([]model.Application, error) {
	var out []model.Application
	for _, a := range s.applications {
		if a.DaycareID == daycareID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) Save(ctx context.Context, application *model.Application) error {
	copied := *application
	s.applications[application.ID] = &copied
	return nil
}

func (s *fakeApplicationStore) Delete(ctx context.Context, id uint) error {
	delete(s.applications, id)
	return nil
}

type fakeMessageStore struct {
	messages map[uint]*model.Message
	nextID   uint
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: make(map[uint]*model.Message)}
}

func (s *fakeMessageStore) Create(ctx context.Context, message *model.Message) error {
	s.nextID++
	message.ID = s.nextID
	copied := *message
	s.messages[message.ID] = &copied
	return nil
}

func (s *fakeMessageStore) GetInbox(ctx context.Context, userID uint) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.RecipientID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) GetSent(ctx context.Context, userID uint) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.SenderID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) MarkRead(ctx context.Context, id, recipientID uint) error {
	m, ok := s.messages[id]
	if !ok || m.RecipientID != recipientID {
		return gorm.ErrRecordNotFound
	}
	m.Read = true
	return nil
}

func listingStoreWithDaycare(id uint) *fakeListingStore {
	store := &fakeListingStore{daycares: []model.Daycare{{Name: "Little Pines"}}}
	store.daycares[0].ID = id
	return store
}

func expectDomainCode(t *testing.T, err error, want *apperrors.DomainError) {
	t.Helper()
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != want.Code {
		t.Errorf("Expected %s, got %v", want.Code, err)
	}
}

func TestAddFavorite(t *testing.T) {
	service := NewFavoriteService(&fakeFavoriteStore{}, listingStoreWithDaycare(10))
	ctx := context.Background()

	favorite, err := service.Add(ctx, 1, dto.CreateFavoriteRequest{DaycareID: 10})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if favorite.UserID != 1 || favorite.DaycareID != 10 {
		t.Errorf("Expected favorite for user 1 daycare 10, got %+v", favorite)
	}

	_, err = service.Add(ctx, 1, dto.CreateFavoriteRequest{DaycareID: 10})
	expectDomainCode(t, err, apperrors.ErrDuplicate)

	_, err = service.Add(ctx, 1, dto.CreateFavoriteRequest{DaycareID: 99})
	expectDomainCode(t, err, apperrors.ErrDaycareNotFound)
}

func TestFavoritesScopedToOwner(t *testing.T) {
	store := &fakeFavoriteStore{}
	service := NewFavoriteService(store, listingStoreWithDaycare(10))
	ctx := context.Background()

	if _, err := service.Add(ctx, 1, dto.CreateFavoriteRequest{DaycareID: 10}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	mine, err := service.List(ctx, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("Expected 1 favorite for the owner, got %d", len(mine))
	}

	others, err := service.List(ctx, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(others) != 0 {
		t.Errorf("Expected no favorites for another user, got %d", len(others))
	}

	err = service.Remove(ctx, 2, 10)
	expectDomainCode(t, err, apperrors.ErrNotFound)

	if err := service.Remove(ctx, 1, 10); err != nil {
		t.Errorf("Expected owner removal to succeed, got %v", err)
	}
}

func TestCreateApplicationStartsPending(t *testing.T) {
	service := NewApplicationService(newFakeApplicationStore(), listingStoreWithDaycare(10))

	application, err := service.Create(context.Background(), 1, dto.CreateApplicationRequest{
		DaycareID: 10,
		ChildName: "Sam",
		ChildAge:  3,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if application.Status != model.ApplicationStatusPending {
		t.Errorf("Expected status pending, got %s", application.Status)
	}
}

func TestApplicationProviderOwnership(t *testing.T) {
	store := newFakeApplicationStore()
	service := NewApplicationService(store, listingStoreWithDaycare(10))
	ctx := context.Background()

	application, err := service.Create(ctx, 1, dto.CreateApplicationRequest{
		DaycareID: 10,
		ChildName: "Sam",
		ChildAge:  3,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ownListing := uint(10)
	otherListing := uint(20)
	owner := &model.User{DaycareID: &ownListing}
	stranger := &model.User{DaycareID: &otherListing}
	unassigned := &model.User{}

	t.Run("provider without a listing is rejected", func(t *testing.T) {
		_, err := service.ListForProvider(ctx, unassigned)
		expectDomainCode(t, err, apperrors.ErrForbidden)

		_, err = service.UpdateStatus(ctx, unassigned, application.ID, dto.UpdateApplicationStatusRequest{Status: model.ApplicationStatusReviewed})
		expectDomainCode(t, err, apperrors.ErrForbidden)
	})

	t.Run("provider for another listing is rejected", func(t *testing.T) {
		_, err := service.UpdateStatus(ctx, stranger, application.ID, dto.UpdateApplicationStatusRequest{Status: model.ApplicationStatusReviewed})
		expectDomainCode(t, err, apperrors.ErrForbidden)
	})

	t.Run("owning provider updates status", func(t *testing.T) {
		updated, err := service.UpdateStatus(ctx, owner, application.ID, dto.UpdateApplicationStatusRequest{
			Status:       model.ApplicationStatusAccepted,
			ProviderNote: "Spot opens in September",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if updated.Status != model.ApplicationStatusAccepted {
			t.Errorf("Expected status accepted, got %s", updated.Status)
		}
		if updated.ProviderNote != "Spot opens in September" {
			t.Errorf("Expected provider note to be set, got %q", updated.ProviderNote)
		}
	})

	t.Run("owning provider lists applications", func(t *testing.T) {
		applications, err := service.ListForProvider(ctx, owner)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(applications) != 1 {
			t.Errorf("Expected 1 application, got %d", len(applications))
		}
	})
}

func TestWithdrawApplication(t *testing.T) {
	store := newFakeApplicationStore()
	service := NewApplicationService(store, listingStoreWithDaycare(10))
	ctx := context.Background()

	application, err := service.Create(ctx, 1, dto.CreateApplicationRequest{
		DaycareID: 10,
		ChildName: "Sam",
		ChildAge:  3,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = service.Withdraw(ctx, 2, application.ID)
	expectDomainCode(t, err, apperrors.ErrForbidden)

	if err := service.Withdraw(ctx, 1, application.ID); err != nil {
		t.Fatalf("Expected owner withdrawal to succeed, got %v", err)
	}

	err = service.Withdraw(ctx, 1, application.ID)
	expectDomainCode(t, err, apperrors.ErrNotFound)
}

func TestContactLogRequiresListing(t *testing.T) {
	service := NewContactLogService(&fakeContactLogStore{}, listingStoreWithDaycare(10))
	ctx := context.Background()

	log, err := service.Create(ctx, 1, dto.CreateContactLogRequest{DaycareID: 10, Method: "phone"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if log.Method != "phone" {
		t.Errorf("Expected method phone, got %s", log.Method)
	}

	_, err = service.Create(ctx, 1, dto.CreateContactLogRequest{DaycareID: 99, Method: "email"})
	expectDomainCode(t, err, apperrors.ErrDaycareNotFound)
}

type fakeContactLogStore struct {
	logs []model.ContactLog
}

func (s *fakeContactLogStore) Create(ctx context.Context, log *model.ContactLog) error {
	log.ID = uint(len(s.logs) + 1)
	s.logs = append(s.logs, *log)
	return nil
}

func (s *fakeContactLogStore) GetByUser(ctx context.Context, userID uint) ([]model.ContactLog, error) {
	var out []model.ContactLog
	for _, l := range s.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestSendMessage(t *testing.T) {
	users := newFakeUserStore()
	recipient := &model.User{Email: "recipient@example.com"}
	users.Create(context.Background(), recipient)

	store := newFakeMessageStore()
	service := NewMessageService(store, users)
	ctx := context.Background()

	message, err := service.Send(ctx, 99, dto.SendMessageRequest{
		RecipientID: recipient.ID,
		Subject:     "Tour request",
		Body:        "Could we visit next week?",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if message.SenderID != 99 || message.RecipientID != recipient.ID {
		t.Errorf("Expected sender 99 recipient %d, got %+v", recipient.ID, message)
	}

	_, err = service.Send(ctx, 99, dto.SendMessageRequest{RecipientID: 12345, Body: "hello"})
	expectDomainCode(t, err, apperrors.ErrUserNotFound)
}

func TestMarkMessageRead(t *testing.T) {
	users := newFakeUserStore()
	recipient := &model.User{Email: "recipient@example.com"}
	users.Create(context.Background(), recipient)

	store := newFakeMessageStore()
	service := NewMessageService(store, users)
	ctx := context.Background()

	message, err := service.Send(ctx, 99, dto.SendMessageRequest{RecipientID: recipient.ID, Body: "hello"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = service.MarkRead(ctx, 42, message.ID)
	expectDomainCode(t, err, apperrors.ErrNotFound)

	if err := service.MarkRead(ctx, recipient.ID, message.ID); err != nil {
		t.Fatalf("Expected recipient to mark read, got %v", err)
	}

	inbox, err := service.Inbox(ctx, recipient.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(inbox) != 1 || !inbox[0].Read {
		t.Errorf("Expected one read message in the inbox, got %+v", inbox)
	}
}
