// Package session implements the client-side quiz session state machine:
// Loading -> Ready -> Submitted, with retry looping back through Loading.
// One session holds one user's attempt at a built quiz; responses and score
// are discarded wholesale on retry, never partially.
package session

import (
	"context"
	"errors"

	"github.com/flashdeck/flashdeck-api/internal/quiz"
	"github.com/google/uuid"
)

// State is the lifecycle phase of a quiz session.
type State int

const (
	// StateLoading means a quiz build is (or should be) in flight.
	StateLoading State = iota

	// StateReady means the session accepts answer selections. A session in
	// Ready may still expose zero questions when the build failed; Err
	// reports why.
	StateReady

	// StateSubmitted means the score is frozen; selections are disabled
	// until a retry resets the session.
	StateSubmitted
)

// String returns a readable state name for logs and test failures.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Session state machine errors.
var (
	// ErrNotReady is returned when an operation requires the Ready state.
	ErrNotReady = errors.New("session is not ready")

	// ErrSubmitted is returned when a selection arrives after submission.
	ErrSubmitted = errors.New("session already submitted")

	// ErrUnknownTerm is returned when a selection names a term with no question.
	ErrUnknownTerm = errors.New("no question for term")
)

// QuizSource builds the session's questions. *quiz.Builder satisfies it.
type QuizSource interface {
	BuildQuiz(ctx context.Context, setID uuid.UUID) ([]quiz.Question, error)
}

// Result is the frozen outcome of a submitted session.
type Result struct {
	// Correct is the count of terms whose selected option exactly equals
	// the question's correct answer text.
	Correct int

	// Total is the number of questions, answered or not.
	Total int
}

// Session scores one user's responses against a built quiz.
// It is not safe for concurrent use; a session belongs to a single flow.
type Session struct {
	source QuizSource
	setID  uuid.UUID

	state     State
	questions []quiz.Question
	responses map[string]string
	buildErr  error

	result Result
}

// New creates a session in the Loading state for the given set.
// Call Load to build the quiz and reach Ready.
func New(source QuizSource, setID uuid.UUID) *Session {
	return &Session{
		source: source,
		setID:  setID,
		state:  StateLoading,
	}
}

// Load runs the quiz build and transitions Loading -> Ready. On build
// failure the session still reaches Ready but exposes no questions and
// records the error; loading again later is safe. Returns the build error,
// if any, for the caller's failure indication.
func (s *Session) Load(ctx context.Context) error {
	if s.state != StateLoading {
		return ErrNotReady
	}

	questions, err := s.source.BuildQuiz(ctx, s.setID)
	if err != nil {
		s.questions = nil
		s.responses = nil
		s.buildErr = err
		s.state = StateReady
		return err
	}

	s.questions = questions
	s.responses = make(map[string]string, len(questions))
	s.buildErr = nil
	s.state = StateReady
	return nil
}

// State reports the session's current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Err reports the build error from the last load, if any.
func (s *Session) Err() error {
	return s.buildErr
}

// Questions returns the built questions in set order. Empty both for a
// zero-card set and after a failed build; Err distinguishes the two.
func (s *Session) Questions() []quiz.Question {
	return s.questions
}

// Response returns the currently selected option for a term.
func (s *Session) Response(term string) (string, bool) {
	selected, ok := s.responses[term]
	return selected, ok
}

// Select records the user's option for one question's term, overwriting any
// prior selection for that term and touching no other. Selections are
// rejected once the session is submitted.
func (s *Session) Select(term, option string) error {
	switch s.state {
	case StateSubmitted:
		return ErrSubmitted
	case StateReady:
		if s.buildErr != nil {
			return ErrNotReady
		}
	default:
		return ErrNotReady
	}

	for _, q := range s.questions {
		if q.Term == term {
			s.responses[term] = option
			return nil
		}
	}
	return ErrUnknownTerm
}

// Submit freezes the session and computes the score: one point per term
// whose response exactly equals the question's correct text. Unanswered
// terms never match and count as wrong. The score is a snapshot taken here;
// it is never recomputed.
func (s *Session) Submit() (Result, error) {
	if s.state != StateReady || s.buildErr != nil {
		if s.state == StateSubmitted {
			return s.result, ErrSubmitted
		}
		return Result{}, ErrNotReady
	}

	correct := 0
	for _, q := range s.questions {
		if s.responses[q.Term] == q.Correct {
			correct++
		}
	}

	s.result = Result{Correct: correct, Total: len(s.questions)}
	s.state = StateSubmitted
	return s.result, nil
}

// Result returns the frozen score, and whether the session was submitted.
func (s *Session) Result() (Result, bool) {
	return s.result, s.state == StateSubmitted
}

// Retry discards all responses and the frozen score, rebuilds the quiz from
// scratch through the source (fresh distractors, fresh shuffles), and leaves
// the session Ready again. Valid from Ready or Submitted.
func (s *Session) Retry(ctx context.Context) error {
	if s.state == StateLoading {
		return ErrNotReady
	}

	s.state = StateLoading
	s.questions = nil
	s.responses = nil
	s.buildErr = nil
	s.result = Result{}

	return s.Load(ctx)
}
