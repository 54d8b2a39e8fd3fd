package model

import "time"

// DocumentRecord keeps a row per normalized document so past uploads can be
// listed and exported.
type DocumentRecord struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID    string    `gorm:"size:36;index" json:"session_id"`
	Name         string    `gorm:"size:255" json:"name"`
	SourceFormat string    `gorm:"size:16" json:"source_format"`
	Chars        int       `json:"chars"`
	CreatedAt    time.Time `json:"created_at"`
}

// MessageRecord is one persisted chat turn.
type MessageRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"size:36;index" json:"session_id"`
	Role      string    `gorm:"size:16" json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizRecord is one evaluated quiz answer.
type QuizRecord struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID    string    `gorm:"size:36;index" json:"session_id"`
	QuestionType string    `gorm:"size:16" json:"question_type"`
	Prompt       string    `json:"prompt"`
	Submitted    string    `json:"submitted"`
	Correct      bool      `json:"correct"`
	Score        float64   `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}
