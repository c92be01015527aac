package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle phase of a QuizSession.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Result is the resolved outcome of a completed session.
type Result struct {
	Vector   Vector
	Category CategoryEntry
	Distance float64
}

// Step is returned by SubmitAnswer. Next is nil once the session completes.
type Step struct {
	Response  string
	Next      *Prompt
	Completed bool
}

// Engine holds the read-only catalog and category table shared by all sessions.
type Engine struct {
	questions []QuestionRecord
	table     *CategoryTable
	logger    *slog.Logger
}

// NewEngine validates the loaded data and returns an engine. A nil logger
// discards output.
func NewEngine(questions []QuestionRecord, table *CategoryTable, logger *slog.Logger) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCatalog
	}
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyCategoryTable
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{questions: questions, table: table, logger: logger}, nil
}

func (e *Engine) Questions() int { return len(e.questions) }

func (e *Engine) Table() *CategoryTable { return e.table }

// CheckScoring reports whether the catalog has the question count the
// derivation rule needs.
func (e *Engine) CheckScoring() error {
	if len(e.questions) != ScoredQuestions {
		return fmt.Errorf("%w: catalog has %d questions, scoring needs %d", ErrRankCount, len(e.questions), ScoredQuestions)
	}
	return nil
}

// NewSession creates a session for userID in StateNotStarted.
func (e *Engine) NewSession(userID int64) *QuizSession {
	return &QuizSession{
		UserID:    userID,
		questions: e.questions,
		table:     e.table,
		logger:    e.logger,
	}
}

// QuizSession tracks one user's pass through the catalog. It is not safe for
// concurrent use; callers serialize access per user.
type QuizSession struct {
	ID          string
	UserID      int64
	StartedAt   time.Time
	CompletedAt time.Time

	questions []QuestionRecord
	table     *CategoryTable
	logger    *slog.Logger

	state     State
	current   int
	ranks     []float64
	responses []string
	result    *Result
}

func (s *QuizSession) State() State { return s.state }

// Start resets the session and returns the first question. Each start gets a
// fresh session ID.
func (s *QuizSession) Start() Prompt {
	s.ID = uuid.NewString()
	s.StartedAt = time.Now()
	s.CompletedAt = time.Time{}
	s.state = StateInProgress
	s.current = 0
	s.ranks = make([]float64, 0, len(s.questions))
	s.responses = make([]string, 0, len(s.questions))
	s.result = nil

	s.logger.Debug("quiz started", "session", s.ID, "user", s.UserID, "questions", len(s.questions))
	return newPrompt(s.questions[0], 0, len(s.questions))
}

// Current returns the question awaiting an answer.
func (s *QuizSession) Current() (Prompt, error) {
	if s.state != StateInProgress || s.current >= len(s.questions) {
		return Prompt{}, fmt.Errorf("%w: no open question in state %s", ErrInvalidTransition, s.state)
	}
	return newPrompt(s.questions[s.current], s.current, len(s.questions)), nil
}

// SubmitAnswer records the answer with the given 1-based ordinal for the
// current question. Submitting the last answer completes the session.
func (s *QuizSession) SubmitAnswer(ordinal int) (Step, error) {
	if s.state != StateInProgress || s.current >= len(s.questions) {
		return Step{}, fmt.Errorf("%w: submit answer in state %s", ErrInvalidTransition, s.state)
	}

	q := s.questions[s.current]
	if ordinal < 1 || ordinal > len(q.Answers) {
		return Step{}, &OrdinalError{Ordinal: ordinal, Count: len(q.Answers)}
	}

	answer := q.Answers[ordinal-1]
	response := fmt.Sprintf("%s\nYour Answer: %s", q.Text, answer.Label)
	s.ranks = append(s.ranks, answer.Rank)
	s.responses = append(s.responses, response)
	s.current++

	s.logger.Debug("answer recorded",
		"session", s.ID, "question", s.current, "ordinal", ordinal, "rank", answer.Rank)

	if s.current < len(s.questions) {
		next := newPrompt(s.questions[s.current], s.current, len(s.questions))
		return Step{Response: response, Next: &next}, nil
	}

	result, err := s.resolve()
	if err != nil {
		s.logger.Error("quiz result derivation failed", "session", s.ID, "error", err)
		return Step{Response: response}, err
	}
	s.result = &result
	s.state = StateCompleted
	s.CompletedAt = time.Now()

	s.logger.Info("quiz completed",
		"session", s.ID, "user", s.UserID, "category", result.Category.ID, "vector", result.Vector.String())
	return Step{Response: response, Completed: true}, nil
}

func (s *QuizSession) resolve() (Result, error) {
	vector, err := DeriveVector(s.ranks)
	if err != nil {
		return Result{}, err
	}
	match, err := BestMatch(vector, s.table)
	if err != nil {
		return Result{}, err
	}
	return Result{Vector: vector, Category: match.Entry, Distance: match.Distance}, nil
}

// Result returns the cached outcome. It fails with ErrNotCompleted until the
// last answer has been submitted.
func (s *QuizSession) Result() (Result, error) {
	if s.state != StateCompleted || s.result == nil {
		return Result{}, fmt.Errorf("%w (state %s)", ErrNotCompleted, s.state)
	}
	return *s.result, nil
}

// Responses returns the "question / chosen answer" log in answer order.
func (s *QuizSession) Responses() []string {
	out := make([]string, len(s.responses))
	copy(out, s.responses)
	return out
}

// Ranks returns the collected ranks in answer order.
func (s *QuizSession) Ranks() []float64 {
	out := make([]float64, len(s.ranks))
	copy(out, s.ranks)
	return out
}

// DeriveVector averages question i with question i+AxisCount and rounds to one
// decimal. Exactly ScoredQuestions ranks are required.
func DeriveVector(ranks []float64) (Vector, error) {
	if len(ranks) != ScoredQuestions {
		return Vector{}, fmt.Errorf("%w: got %d, want %d", ErrRankCount, len(ranks), ScoredQuestions)
	}
	first, last := ranks[:AxisCount], ranks[AxisCount:]

	var v Vector
	for i := range v {
		v[i] = roundTenth((first[i] + last[i]) / 2)
	}
	return v, nil
}

// roundTenth rounds the exact binary value of x to one decimal, ties to even.
// 1.15 is stored just below 1.15 and rounds to 1.1; 1.25 is exact and rounds
// to 1.2.
func roundTenth(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// IsNotCompleted reports whether err means the caller asked for a result too early.
func IsNotCompleted(err error) bool {
	return errors.Is(err, ErrNotCompleted)
}
