// Package interaction provides models, repositories and the service
// for yes/no answers recorded at totems, including the score
// aggregation that turns raw answers into percentages.
package interaction

import (
	"errors"
	"fmt"
)

// Valid answer values. The storage vocabulary follows the surrounding
// system: "sim" (yes) and "nao" (no).
const (
	AnswerYes = "sim"
	AnswerNo  = "nao"
)

// Validation errors.
var (
	// ErrInvalidAnswer indicates an answer outside {"sim","nao"}.
	ErrInvalidAnswer = errors.New(`answer must be "sim" or "nao"`)

	// ErrMissingField indicates a required identifier was empty.
	ErrMissingField = errors.New("vem_hash, pergunta_id and totem_id are required")
)

// Interaction is one user's answer to one question at one totem. The
// natural key (vem_hash, pergunta_id, totem_id) admits at most one
// record; registering again overwrites the previous answer.
type Interaction struct {
	UserHash   string `bson:"vem_hash" json:"vem_hash"`
	QuestionID string `bson:"pergunta_id" json:"pergunta_id"`
	TotemID    string `bson:"totem_id" json:"totem_id"`
	Answer     string `bson:"resposta" json:"resposta"`
}

// Validate checks the interaction before it reaches storage.
func (i *Interaction) Validate() error {
	if i.UserHash == "" || i.QuestionID == "" || i.TotemID == "" {
		return ErrMissingField
	}
	if i.Answer != AnswerYes && i.Answer != AnswerNo {
		return fmt.Errorf("%w: got %q", ErrInvalidAnswer, i.Answer)
	}
	return nil
}
