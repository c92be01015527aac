package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoluyanbIch/ZooTotemBot/internal/service"
)

func completedSession(t *testing.T) *service.QuizSession {
	t.Helper()

	questions := make([]service.QuestionRecord, service.ScoredQuestions)
	for i := range questions {
		questions[i] = service.QuestionRecord{
			Text: fmt.Sprintf("Question %d?", i+1),
			Answers: []service.AnswerOption{
				{Ordinal: 1, Label: "low", Rank: 1},
				{Ordinal: 2, Label: "high", Rank: 3},
			},
		}
	}
	table, err := service.NewCategoryTable([]service.CategoryEntry{
		{ID: "otter", Name: "Otter", Description: "Playful.", URL: "https://example.org/otter", Vector: service.Vector{1, 1, 1, 1, 1}},
		{ID: "elephant", Name: "Elephant", Vector: service.Vector{3, 3, 3, 3, 3}},
	})
	require.NoError(t, err)
	engine, err := service.NewEngine(questions, table, nil)
	require.NoError(t, err)

	s := engine.NewSession(42)
	s.Start()
	for range questions {
		_, err := s.SubmitAnswer(1)
		require.NoError(t, err)
	}
	return s
}

func TestFromSessionRequiresCompletion(t *testing.T) {
	table, err := service.NewCategoryTable([]service.CategoryEntry{{ID: "otter"}})
	require.NoError(t, err)
	engine, err := service.NewEngine([]service.QuestionRecord{{Text: "q", Answers: []service.AnswerOption{{Ordinal: 1, Label: "a", Rank: 1}}}}, table, nil)
	require.NoError(t, err)

	_, err = FromSession(engine.NewSession(1), "Ann")
	require.Error(t, err)
	assert.True(t, service.IsNotCompleted(err))
}

func TestTranscript(t *testing.T) {
	r, err := FromSession(completedSession(t), "Ann Smith")
	require.NoError(t, err)

	text := Transcript(r)
	assert.Contains(t, text, "User: Ann Smith (ID 42)")
	assert.Contains(t, text, "Session: "+r.SessionID)
	assert.Contains(t, text, "Totem animal: Otter (otter)")
	assert.Contains(t, text, "size=1.0")
	assert.Contains(t, text, "1. Question 1?\nYour Answer: low")
	assert.Equal(t, service.ScoredQuestions, strings.Count(text, "Your Answer:"))
}

func TestRenderCard(t *testing.T) {
	r, err := FromSession(completedSession(t), "Ann Smith")
	require.NoError(t, err)

	pdf, err := RenderCard(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), "output should be a PDF document")
	assert.Equal(t, "totem_otter.pdf", CardFileName(r))
}

func TestRenderCardWithoutResponses(t *testing.T) {
	r := Report{
		UserName: "Bob",
		Result: service.Result{
			Category: service.CategoryEntry{ID: "bat"},
			Vector:   service.Vector{1, 3, 2, 3, 2},
		},
	}
	pdf, err := RenderCard(r)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
