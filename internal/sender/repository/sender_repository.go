package repository

import (
	"time"

	senderdomain "callbox-backend/internal/sender/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// senderRepository implements SenderRepository using GORM
type senderRepository struct {
	db *gorm.DB
}

// NewSenderRepository creates a new instance of senderRepository
func NewSenderRepository(db *gorm.DB) SenderRepository {
	return &senderRepository{db: db}
}

func (r *senderRepository) FindByUser(userID string) ([]*senderdomain.Sender, error) {
	var senders []*senderdomain.Sender
	err := r.db.Where("user_id = ?", userID).Order("last_message_at DESC").Find(&senders).Error
	if err != nil {
		return nil, err
	}
	return senders, nil
}

func (r *senderRepository) FindByID(userID, senderID string) (*senderdomain.Sender, error) {
	var sender senderdomain.Sender
	err := r.db.Where("user_id = ? AND id = ?", userID, senderID).First(&sender).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sender, nil
}

func (r *senderRepository) FindByEmail(userID, email string) (*senderdomain.Sender, error) {
	var sender senderdomain.Sender
	err := r.db.Where("user_id = ? AND email = ?", userID, email).First(&sender).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sender, nil
}

func (r *senderRepository) Create(sender *senderdomain.Sender) error {
	if sender.ID == "" {
		sender.ID = uuid.New().String()
	}
	sender.CreatedAt = time.Now()
	sender.UpdatedAt = time.Now()
	return r.db.Create(sender).Error
}

func (r *senderRepository) Update(sender *senderdomain.Sender) error {
	sender.UpdatedAt = time.Now()
	return r.db.Save(sender).Error
}

func (r *senderRepository) SetCategory(userID, senderID string, category senderdomain.Category) error {
	return r.db.Model(&senderdomain.Sender{}).
		Where("user_id = ? AND id = ?", userID, senderID).
		Updates(map[string]interface{}{
			"category":   category,
			"updated_at": time.Now(),
		}).Error
}
