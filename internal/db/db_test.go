package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatrix/internal/types"
)

func TestSchema_DefinesTables(t *testing.T) {
	schema := Schema()
	for _, table := range []string{"user_skills", "saved_questions", "answer_history"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schema, "JSONB")
}

func TestStore_RequiresUser(t *testing.T) {
	// No pool: every call must fail before touching the database.
	db := &DB{}
	ctx := context.Background()

	err := db.ReplaceSkills(ctx, uuid.Nil, types.NewSkillSet("Go"))
	assert.True(t, errors.Is(err, ErrMissingUser))

	_, err = db.GetSkills(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = db.SaveQuestion(ctx, uuid.Nil, types.SavedQuestion{Question: "q"})
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = db.ListSavedQuestions(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrMissingUser)

	err = db.AppendAnswer(ctx, uuid.Nil, types.AnswerRecord{})
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = db.ListAnswers(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestDecodeJSON(t *testing.T) {
	saved, err := decodeJSON[types.SavedQuestion]([]byte(
		`{"question":"Explain channels","skill":"Go","type":"technical","difficulty":"hard","saved_at":"2026-01-02T03:04:05Z"}`))
	require.NoError(t, err)
	assert.Equal(t, "Explain channels", saved.Question)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), saved.SavedAt)

	record, err := decodeJSON[types.AnswerRecord]([]byte(
		`{"question":"q","skill":"Go","user_answer":"a","result":{"grade":"Good","strengths":["x"],"weaknesses":[],"suggestions":[],"modelAnswer":"m"}}`))
	require.NoError(t, err)
	assert.Equal(t, types.GradeGood, record.Result.Grade)
	assert.Equal(t, "a", record.UserAnswer)

	_, err = decodeJSON[types.AnswerRecord]([]byte(`not json`))
	assert.Error(t, err)
}
