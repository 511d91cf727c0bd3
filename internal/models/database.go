package models

// GORM models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// isoFormat is RFC3339 with fixed nine-digit fractional seconds so that the
// stored text sorts chronologically and round-trips without loss.
const isoFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ISOTime is a timestamp persisted as ISO-8601 text.
type ISOTime struct {
	time.Time
}

func NowISO() ISOTime {
	return ISOTime{time.Now().UTC()}
}

func (t ISOTime) Value() (driver.Value, error) {
	return t.UTC().Format(isoFormat), nil
}

func (t *ISOTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ISOTime{}
		return nil
	case time.Time:
		*t = ISOTime{v.UTC()}
		return nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("cannot parse %q as ISO-8601 timestamp: %w", v, err)
		}
		*t = ISOTime{parsed.UTC()}
		return nil
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ISOTime", value)
	}
}

func (t ISOTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(isoFormat) + `"`), nil
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid ISO-8601 timestamp: %s", s)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s[1:len(s)-1])
	if err != nil {
		return err
	}
	*t = ISOTime{parsed.UTC()}
	return nil
}

// FloorPlan is a user-owned 2D layout source with optional derived 3D geometry.
type FloorPlan struct {
	ID           string  `json:"id" gorm:"primaryKey;type:text"`
	UserID       string  `json:"user_id" gorm:"not null;index"`
	Name         string  `json:"name" gorm:"not null"`
	FileType     string  `json:"file_type" gorm:"not null"` // pdf, image, canvas
	FileURL      *string `json:"file_url"`
	CanvasData   *string `json:"canvas_data"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Status       string  `json:"status" gorm:"default:'uploaded'"` // uploaded, processing, ready, error
	ThreeDData   *string `json:"three_d_data"`
	CreatedAt    ISOTime `json:"created_at" gorm:"type:text"`
	UpdatedAt    ISOTime `json:"updated_at" gorm:"type:text"`
}

// Conversation groups chat messages for one user.
type Conversation struct {
	ID        string  `json:"id" gorm:"primaryKey;type:text"`
	UserID    string  `json:"user_id" gorm:"not null;index"`
	Title     string  `json:"title" gorm:"not null"`
	CreatedAt ISOTime `json:"created_at" gorm:"type:text"`
}

// Message is one turn of a conversation, append-only.
type Message struct {
	ID             string  `json:"id" gorm:"primaryKey;type:text"`
	ConversationID string  `json:"conversation_id" gorm:"not null;index"`
	Role           string  `json:"role" gorm:"not null"` // user, assistant
	Content        string  `json:"content" gorm:"not null"`
	Model          *string `json:"model"`
	Timestamp      ISOTime `json:"timestamp" gorm:"type:text"`
}

// UserPreference holds per-user defaults, lazily created on first read.
type UserPreference struct {
	ID                string            `json:"id" gorm:"primaryKey;type:text"`
	UserID            string            `json:"user_id" gorm:"not null;uniqueIndex"`
	PreferredModel    string            `json:"preferred_model" gorm:"default:'gpt-5'"`
	RenderQuality     string            `json:"render_quality" gorm:"default:'high'"`
	DefaultWallHeight float64           `json:"default_wall_height" gorm:"default:2.8"`
	Preferences       datatypes.JSONMap `json:"preferences"`
	UpdatedAt         ISOTime           `json:"updated_at" gorm:"type:text"`
}

// Feedback is user feedback on the service or a specific floor plan.
type Feedback struct {
	ID           string  `json:"id" gorm:"primaryKey;type:text"`
	UserID       string  `json:"user_id" gorm:"not null;index"`
	FloorPlanID  *string `json:"floor_plan_id"`
	FeedbackType string  `json:"feedback_type" gorm:"not null"` // suggestion, correction, rating
	Content      string  `json:"content" gorm:"not null"`
	Rating       *int    `json:"rating"`
	Applied      bool    `json:"applied" gorm:"default:false"`
	CreatedAt    ISOTime `json:"created_at" gorm:"type:text"`
}

// LearningData is the write-only record derived from suggestion feedback.
type LearningData struct {
	ID        string  `json:"id" gorm:"primaryKey;type:text"`
	UserID    string  `json:"user_id" gorm:"not null;index"`
	Type      string  `json:"type" gorm:"not null"`
	Content   string  `json:"content" gorm:"not null"`
	Timestamp ISOTime `json:"timestamp" gorm:"type:text"`
}

// Database interfaces for repository pattern
type FloorPlanRepository interface {
	Create(plan *FloorPlan) error
	List(userID string) ([]FloorPlan, error)
	GetByID(id string) (*FloorPlan, error)
	UpdateFields(id string, fields map[string]interface{}) (int64, error)
	Delete(id string) (int64, error)
}

type ConversationRepository interface {
	Create(conv *Conversation) error
	ListByUser(userID string) ([]Conversation, error)
}

type MessageRepository interface {
	Create(msg *Message) error
	ListByConversation(conversationID string) ([]Message, error)
}

type UserPreferenceRepository interface {
	Create(prefs *UserPreference) error
	GetByUser(userID string) (*UserPreference, error)
	Upsert(userID string, fields map[string]interface{}) error
}

type FeedbackRepository interface {
	Create(feedback *Feedback) error
	List(userID string) ([]Feedback, error)
}

type LearningDataRepository interface {
	Create(data *LearningData) error
	ListByUser(userID string) ([]LearningData, error)
}

// TableName methods for custom table names
func (FloorPlan) TableName() string      { return "floorplans" }
func (Conversation) TableName() string   { return "conversations" }
func (Message) TableName() string        { return "messages" }
func (UserPreference) TableName() string { return "user_preferences" }
func (Feedback) TableName() string       { return "feedback" }
func (LearningData) TableName() string   { return "learning_data" }

// Enumerated value sets
var (
	ValidFileTypes = map[string]bool{
		"pdf":    true,
		"image":  true,
		"canvas": true,
	}

	ValidStatuses = map[string]bool{
		"uploaded":   true,
		"processing": true,
		"ready":      true,
		"error":      true,
	}

	ValidFeedbackTypes = map[string]bool{
		"suggestion": true,
		"correction": true,
		"rating":     true,
	}

	ValidRoles = map[string]bool{
		"user":      true,
		"assistant": true,
	}
)

// Model validation methods
func (fp *FloorPlan) Validate() error {
	if fp.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if fp.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidFileTypes[fp.FileType] {
		return fmt.Errorf("invalid file type: %s", fp.FileType)
	}
	if fp.Status != "" && !ValidStatuses[fp.Status] {
		return fmt.Errorf("invalid status: %s", fp.Status)
	}
	return nil
}

func (m *Message) Validate() error {
	if m.ConversationID == "" {
		return fmt.Errorf("conversation id is required")
	}
	if !ValidRoles[m.Role] {
		return fmt.Errorf("invalid role: %s", m.Role)
	}
	return nil
}

func (f *Feedback) Validate() error {
	if f.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if !ValidFeedbackTypes[f.FeedbackType] {
		return fmt.Errorf("invalid feedback type: %s", f.FeedbackType)
	}
	return nil
}

// GORM hooks: identity and timestamps are assigned once at creation and never
// recomputed.
func (fp *FloorPlan) BeforeCreate(tx *gorm.DB) error {
	if fp.ID == "" {
		fp.ID = uuid.NewString()
	}
	if fp.Status == "" {
		fp.Status = "uploaded"
	}
	if fp.CreatedAt.IsZero() {
		fp.CreatedAt = NowISO()
	}
	if fp.UpdatedAt.IsZero() {
		fp.UpdatedAt = fp.CreatedAt
	}
	return fp.Validate()
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = NowISO()
	}
	return nil
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = NowISO()
	}
	return m.Validate()
}

func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = NowISO()
	}
	return nil
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = NowISO()
	}
	return f.Validate()
}

func (ld *LearningData) BeforeCreate(tx *gorm.DB) error {
	if ld.ID == "" {
		ld.ID = uuid.NewString()
	}
	if ld.Timestamp.IsZero() {
		ld.Timestamp = NowISO()
	}
	return nil
}
