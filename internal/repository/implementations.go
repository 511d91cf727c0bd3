package repository

import (
	"github.com/casaplan/casaplan/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxListResults caps every list query; there is no pagination cursor.
const maxListResults = 1000

// FloorPlanRepositoryImpl implements FloorPlanRepository
type FloorPlanRepositoryImpl struct {
	db *gorm.DB
}

func NewFloorPlanRepository(db *gorm.DB) models.FloorPlanRepository {
	return &FloorPlanRepositoryImpl{db: db}
}

func (r *FloorPlanRepositoryImpl) Create(plan *models.FloorPlan) error {
	return r.db.Create(plan).Error
}

func (r *FloorPlanRepositoryImpl) List(userID string) ([]models.FloorPlan, error) {
	var plans []models.FloorPlan
	query := r.db.Order("created_at DESC").Limit(maxListResults)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Find(&plans).Error
	return plans, err
}

func (r *FloorPlanRepositoryImpl) GetByID(id string) (*models.FloorPlan, error) {
	var plan models.FloorPlan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateFields applies a partial update and reports how many records matched.
func (r *FloorPlanRepositoryImpl) UpdateFields(id string, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.FloorPlan{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *FloorPlanRepositoryImpl) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.FloorPlan{})
	return result.RowsAffected, result.Error
}

// ConversationRepositoryImpl implements ConversationRepository
type ConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) models.ConversationRepository {
	return &ConversationRepositoryImpl{db: db}
}

func (r *ConversationRepositoryImpl) Create(conv *models.Conversation) error {
	return r.db.Create(conv).Error
}

func (r *ConversationRepositoryImpl) ListByUser(userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(maxListResults).
		Find(&conversations).Error
	return conversations, err
}

// MessageRepositoryImpl implements MessageRepository
type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) models.MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(msg *models.Message) error {
	return r.db.Create(msg).Error
}

func (r *MessageRepositoryImpl) ListByConversation(conversationID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("timestamp ASC").
		Limit(maxListResults).
		Find(&messages).Error
	return messages, err
}

// UserPreferenceRepositoryImpl implements UserPreferenceRepository
type UserPreferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewUserPreferenceRepository(db *gorm.DB) models.UserPreferenceRepository {
	return &UserPreferenceRepositoryImpl{db: db}
}

func (r *UserPreferenceRepositoryImpl) Create(prefs *models.UserPreference) error {
	return r.db.Create(prefs).Error
}

func (r *UserPreferenceRepositoryImpl) GetByUser(userID string) (*models.UserPreference, error) {
	var prefs models.UserPreference
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Upsert applies the given fields to the record keyed on user id, creating it
// with defaults when absent.
func (r *UserPreferenceRepositoryImpl) Upsert(userID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.UserPreference{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	prefs := DefaultUserPreference(userID)
	for key, value := range fields {
		switch key {
		case "preferred_model":
			if v, ok := value.(string); ok {
				prefs.PreferredModel = v
			}
		case "render_quality":
			if v, ok := value.(string); ok {
				prefs.RenderQuality = v
			}
		case "default_wall_height":
			if v, ok := value.(float64); ok {
				prefs.DefaultWallHeight = v
			}
		case "preferences":
			if v, ok := value.(datatypes.JSONMap); ok {
				prefs.Preferences = v
			}
		case "updated_at":
			if v, ok := value.(models.ISOTime); ok {
				prefs.UpdatedAt = v
			}
		}
	}

	return r.db.Create(prefs).Error
}

// DefaultUserPreference builds the record synthesized on first read.
func DefaultUserPreference(userID string) *models.UserPreference {
	return &models.UserPreference{
		UserID:            userID,
		PreferredModel:    "gpt-5",
		RenderQuality:     "high",
		DefaultWallHeight: 2.8,
		Preferences:       datatypes.JSONMap{},
	}
}

// FeedbackRepositoryImpl implements FeedbackRepository
type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) models.FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

func (r *FeedbackRepositoryImpl) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepositoryImpl) List(userID string) ([]models.Feedback, error) {
	var feedback []models.Feedback
	query := r.db.Order("created_at DESC").Limit(maxListResults)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Find(&feedback).Error
	return feedback, err
}

// LearningDataRepositoryImpl implements LearningDataRepository
type LearningDataRepositoryImpl struct {
	db *gorm.DB
}

func NewLearningDataRepository(db *gorm.DB) models.LearningDataRepository {
	return &LearningDataRepositoryImpl{db: db}
}

func (r *LearningDataRepositoryImpl) Create(data *models.LearningData) error {
	return r.db.Create(data).Error
}

func (r *LearningDataRepositoryImpl) ListByUser(userID string) ([]models.LearningData, error) {
	var records []models.LearningData
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(maxListResults).
		Find(&records).Error
	return records, err
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	FloorPlan      models.FloorPlanRepository
	Conversation   models.ConversationRepository
	Message        models.MessageRepository
	UserPreference models.UserPreferenceRepository
	Feedback       models.FeedbackRepository
	LearningData   models.LearningDataRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		FloorPlan:      NewFloorPlanRepository(db),
		Conversation:   NewConversationRepository(db),
		Message:        NewMessageRepository(db),
		UserPreference: NewUserPreferenceRepository(db),
		Feedback:       NewFeedbackRepository(db),
		LearningData:   NewLearningDataRepository(db),
	}
}
