package service

import (
	"context"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/logger"
	"rentloop-backend/internal/repository"

	"github.com/google/uuid"
)

type itemService struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
	}
}

func validateItem(item *domain.Item) error {
	if item.Title == "" || item.City == "" || item.Category == "" {
		return domain.ErrMissingField
	}
	if item.PricePerDay <= 0 {
		return domain.ErrInvalidAmount
	}
	switch item.CancellationPolicy {
	case domain.PolicyFlexible, domain.PolicyMedium, domain.PolicyStrict:
	case "":
		item.CancellationPolicy = domain.PolicyFlexible
	default:
		return domain.ErrMissingField
	}
	return nil
}

func (s *itemService) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	// New listings wait for moderation before becoming visible.
	item.Status = domain.ItemStatusPending
	item.IsActive = false

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, ownerID string, item *domain.Item) (*domain.Item, error) {
	existing, err := s.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, domain.ErrNotAllowed
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	// Ownership and moderation state are not editable by the owner.
	item.OwnerID = existing.OwnerID
	item.Status = existing.Status
	item.IsActive = existing.IsActive

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *itemService) ListItems(ctx context.Context, city string, page, pageSize int32) ([]domain.Item, int32, error) {
	return s.itemRepo.ListActive(ctx, city, page, pageSize)
}

func (s *itemService) ListMyItems(ctx context.Context, ownerID string) ([]domain.Item, error) {
	return s.itemRepo.ListByOwner(ctx, ownerID)
}

func (s *itemService) ModerateItem(ctx context.Context, itemID string, approve bool) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != domain.ItemStatusPending {
		return nil, domain.ErrItemNotModeratable
	}

	status := domain.ItemStatusApproved
	noteType := domain.NotificationItemApproved
	if !approve {
		status = domain.ItemStatusRejected
		noteType = domain.NotificationItemRejected
	}

	applied, err := s.itemRepo.SetModeration(ctx, itemID, status, approve)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrItemNotFound
	}
	item.Status = status
	item.IsActive = approve

	note := &domain.Notification{
		ID:     uuid.NewString(),
		UserID: item.OwnerID,
		Type:   noteType,
		Data: map[string]string{
			"item_id":    item.ID,
			"item_title": item.Title,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to store moderation notification", "item_id", itemID, "error", err)
	}
	if owner, err := s.userRepo.GetByID(ctx, item.OwnerID); err == nil && owner != nil {
		_ = s.emailSvc.SendItemModerated(ctx, owner.Email, item.Title, approve)
	}

	return item, nil
}

func (s *itemService) ListPendingModeration(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.ListPendingModeration(ctx)
}
