package repository

import (
	"time"

	notificationdomain "callbox-backend/internal/notification/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notificationRepository implements NotificationRepository using GORM
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of notificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(record *notificationdomain.NotificationRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	return r.db.Create(record).Error
}

func (r *notificationRepository) FindByID(userID, recordID string) (*notificationdomain.NotificationRecord, error) {
	var record notificationdomain.NotificationRecord
	err := r.db.Where("user_id = ? AND id = ?", userID, recordID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *notificationRepository) FindByProviderRef(providerRef string) (*notificationdomain.NotificationRecord, error) {
	var record notificationdomain.NotificationRecord
	err := r.db.Where("provider_ref = ?", providerRef).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *notificationRepository) FindByUser(userID string, since *time.Time, limit int) ([]*notificationdomain.NotificationRecord, error) {
	query := r.db.Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if limit <= 0 {
		limit = 50
	}

	var records []*notificationdomain.NotificationRecord
	err := query.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateStatusByRef guards the terminal states in the query itself so a
// duplicate provider callback can never rewrite a finished record
func (r *notificationRepository) UpdateStatusByRef(providerRef string, status notificationdomain.Status, durationSeconds int) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if durationSeconds > 0 {
		updates["duration_seconds"] = durationSeconds
	}
	return r.db.Model(&notificationdomain.NotificationRecord{}).
		Where("provider_ref = ? AND status NOT IN ?", providerRef,
			[]notificationdomain.Status{notificationdomain.StatusDelivered, notificationdomain.StatusFailed}).
		Updates(updates).Error
}

func (r *notificationRepository) CountForUserSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&notificationdomain.NotificationRecord{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
