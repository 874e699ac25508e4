// Package question provides models, repositories and the service for
// the yes/no questions displayed on totems. The "current" question is
// whichever has the most recent creation marker.
package question

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Question is a yes/no prompt shown on totems.
type Question struct {
	QuestionID string    `bson:"pergunta_id" json:"pergunta_id"`
	Text       string    `bson:"texto" json:"texto"`
	CreatedAt  time.Time `bson:"data_criacao" json:"data_criacao"`
}

// New creates a Question with a generated ID.
func New(text string) *Question {
	return &Question{
		QuestionID: generateID(text, time.Now()),
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
}

// generateID derives a 12-character identifier from the question text
// and the creation instant, so re-posting the same text yields a new
// question.
func generateID(text string, now time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d", text, now.UnixNano())))
	return hex.EncodeToString(sum[:])[:12]
}
