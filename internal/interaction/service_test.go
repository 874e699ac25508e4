package interaction

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    string
		quest   string
		totem   string
		answer  string
		wantErr error
	}{
		{"valid sim", "u1", "q1", "t1", AnswerYes, nil},
		{"valid nao", "u1", "q1", "t1", AnswerNo, nil},
		{"invalid answer", "u1", "q1", "t1", "talvez", ErrInvalidAnswer},
		{"uppercase rejected", "u1", "q1", "t1", "SIM", ErrInvalidAnswer},
		{"empty answer", "u1", "q1", "t1", "", ErrInvalidAnswer},
		{"missing user", "", "q1", "t1", AnswerYes, ErrMissingField},
		{"missing question", "u1", "", "t1", AnswerYes, ErrMissingField},
		{"missing totem", "u1", "q1", "", AnswerYes, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.user, tt.quest, tt.totem, tt.answer)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Register failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestRegisterInvalidAnswerNeverStored verifies rejected answers do not
// reach the repository.
func TestRegisterInvalidAnswerNeverStored(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "u1", "q1", "t1", "maybe"); err == nil {
		t.Fatal("Register should reject unknown answers")
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("repository holds %d interactions after a rejected answer, want 0", len(all))
	}
}

// TestRegisterUpsertIdempotence verifies the natural-key upsert: the
// same user answering the same question at the same totem twice leaves
// exactly one record holding the latest answer.
func TestRegisterUpsertIdempotence(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "u1", "q1", "t1", AnswerYes); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "u1", "q1", "t1", AnswerNo); err != nil {
		t.Fatalf("second Register failed: %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d interactions, want 1 (upsert on natural key)", len(all))
	}
	if all[0].Answer != AnswerNo {
		t.Errorf("stored answer = %q, want %q (latest write wins)", all[0].Answer, AnswerNo)
	}

	// A different totem is a different natural key.
	if _, err := svc.Register(ctx, "u1", "q1", "t2", AnswerYes); err != nil {
		t.Fatalf("Register at second totem failed: %v", err)
	}
	all, _ = svc.List(ctx)
	if len(all) != 2 {
		t.Errorf("got %d interactions, want 2 (distinct totems)", len(all))
	}
}

func TestScore(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	seed := []struct{ user, answer string }{
		{"u1", AnswerYes}, {"u2", AnswerYes}, {"u3", AnswerYes}, {"u4", AnswerNo},
	}
	for _, s := range seed {
		if _, err := svc.Register(ctx, s.user, "q1", "t1", s.answer); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	// Unrelated question must not leak into q1's score.
	if _, err := svc.Register(ctx, "u1", "q2", "t1", AnswerNo); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	score, err := svc.Score(ctx, "q1")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score.Yes != 75 || score.No != 25 {
		t.Errorf("Score = {sim: %v, nao: %v}, want {sim: 75, nao: 25}", score.Yes, score.No)
	}
}

func TestScoreEmptyQuestion(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)

	score, err := svc.Score(context.Background(), "q-without-answers")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score.Yes != 0 || score.No != 0 {
		t.Errorf("Score of unanswered question = %+v, want zeros", score)
	}

	if _, err := svc.Score(context.Background(), ""); !errors.Is(err, ErrEmptyQuestionID) {
		t.Errorf("Score with empty ID: got %v, want ErrEmptyQuestionID", err)
	}
}

// TestHasInteractedIgnoresTotem verifies the dedup check looks only at
// user and question.
func TestHasInteractedIgnoresTotem(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "u1", "q1", "t1", AnswerYes); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name  string
		user  string
		quest string
		want  bool
	}{
		{"same user and question", "u1", "q1", true},
		{"other question", "u1", "q2", false},
		{"other user", "u2", "q1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasInteracted(ctx, tt.user, tt.quest)
			if err != nil {
				t.Fatalf("HasInteracted failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasInteracted(%s, %s) = %v, want %v", tt.user, tt.quest, got, tt.want)
			}
		})
	}
}

func TestDeleteByQuestion(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	for _, user := range []string{"u1", "u2", "u3"} {
		if _, err := svc.Register(ctx, user, "q1", "t1", AnswerYes); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	if _, err := svc.Register(ctx, "u1", "q2", "t1", AnswerNo); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.DeleteByQuestion(ctx, "q1"); err != nil {
		t.Fatalf("DeleteByQuestion failed: %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || all[0].QuestionID != "q2" {
		t.Errorf("after cascade delete got %d interactions, want only q2's", len(all))
	}
}

func TestRegisterIncrementsVoteMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics()
	if err := metrics.Register(reg); err != nil {
		t.Fatalf("failed to register metrics: %v", err)
	}

	svc := NewService(NewInMemoryRepository(), metrics)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "u1", "q1", "t1", AnswerYes); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "u2", "q1", "t1", AnswerNo); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if got := testutil.ToFloat64(metrics.votesTotal.WithLabelValues(AnswerYes)); got != 1 {
		t.Errorf("sim vote counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.votesTotal.WithLabelValues(AnswerNo)); got != 1 {
		t.Errorf("nao vote counter = %v, want 1", got)
	}
}
