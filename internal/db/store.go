package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillmatrix/internal/types"
)

// ReplaceSkills stores skills as the user's current skill set, replacing any previous set.
func (db *DB) ReplaceSkills(ctx context.Context, userID uuid.UUID, skills types.SkillSet) error {
	if userID == uuid.Nil {
		return ErrMissingUser
	}
	content, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO user_skills (user_id, skills, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET skills = $2, updated_at = NOW()`,
		userID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to replace skills: %w", err)
	}
	return nil
}

// GetSkills returns the user's stored skill set, empty if none was stored.
func (db *DB) GetSkills(ctx context.Context, userID uuid.UUID) (types.SkillSet, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}

	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT skills FROM user_skills WHERE user_id = $1`,
		userID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.NewSkillSet(), nil
		}
		return nil, fmt.Errorf("failed to get skills: %w", err)
	}

	var skills types.SkillSet
	if err := json.Unmarshal(content, &skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	return skills, nil
}

// SaveQuestion appends a bookmarked question for the user. A zero SavedAt is set to now.
func (db *DB) SaveQuestion(ctx context.Context, userID uuid.UUID, q types.SavedQuestion) (types.SavedQuestion, error) {
	if userID == uuid.Nil {
		return q, ErrMissingUser
	}
	if q.SavedAt.IsZero() {
		q.SavedAt = time.Now().UTC()
	}
	content, err := json.Marshal(q)
	if err != nil {
		return q, fmt.Errorf("failed to marshal question: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO saved_questions (id, user_id, content, saved_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, content, q.SavedAt,
	)
	if err != nil {
		return q, fmt.Errorf("failed to save question: %w", err)
	}
	return q, nil
}

// ListSavedQuestions returns the user's saved questions, oldest first.
func (db *DB) ListSavedQuestions(ctx context.Context, userID uuid.UUID) ([]types.SavedQuestion, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	rows, err := db.pool.Query(ctx,
		`SELECT content FROM saved_questions WHERE user_id = $1 ORDER BY saved_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved questions: %w", err)
	}
	return collectJSON[types.SavedQuestion](rows, "saved question")
}

// AppendAnswer records a graded answer in the user's history. A zero AnsweredAt is set to now.
func (db *DB) AppendAnswer(ctx context.Context, userID uuid.UUID, rec types.AnswerRecord) error {
	if userID == uuid.Nil {
		return ErrMissingUser
	}
	if rec.AnsweredAt.IsZero() {
		rec.AnsweredAt = time.Now().UTC()
	}
	content, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO answer_history (id, user_id, content, answered_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, content, rec.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append answer: %w", err)
	}
	return nil
}

// ListAnswers returns the user's answer history, oldest first.
func (db *DB) ListAnswers(ctx context.Context, userID uuid.UUID) ([]types.AnswerRecord, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	rows, err := db.pool.Query(ctx,
		`SELECT content FROM answer_history WHERE user_id = $1 ORDER BY answered_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return collectJSON[types.AnswerRecord](rows, "answer")
}

// collectJSON decodes a single JSONB column from every row. The result is never nil.
func collectJSON[T any](rows pgx.Rows, what string) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		item, err := decodeJSON[T](content)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", what, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", what, err)
	}
	return out, nil
}

func decodeJSON[T any](content []byte) (T, error) {
	var v T
	err := json.Unmarshal(content, &v)
	return v, err
}
