package session

import (
	"context"
	"errors"
	"testing"

	"github.com/flashdeck/flashdeck-api/internal/quiz"
	"github.com/google/uuid"
)

// scriptedSource returns canned questions or errors per build call,
// counting how many builds ran.
type scriptedSource struct {
	questions [][]quiz.Question
	errs      []error
	calls     int
}

func (s *scriptedSource) BuildQuiz(_ context.Context, _ uuid.UUID) ([]quiz.Question, error) {
	i := s.calls
	s.calls++
	var qs []quiz.Question
	if i < len(s.questions) {
		qs = s.questions[i]
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return nil, err
	}
	return qs, nil
}

func threeQuestions() []quiz.Question {
	return []quiz.Question{
		{
			Term:    "Paris",
			Options: []string{"Capital of France.", "Capital of Spain.", "Capital of Italy.", "Capital of Peru."},
			Correct: "Capital of France.",
		},
		{
			Term:    "Madrid",
			Options: []string{"Capital of Spain.", "Capital of France.", "Capital of Chile.", "Capital of Cuba."},
			Correct: "Capital of Spain.",
		},
		{
			Term:    "Rome",
			Options: []string{"Capital of Italy.", "Capital of Malta.", "Capital of Egypt.", "Capital of Laos."},
			Correct: "Capital of Italy.",
		},
	}
}

func readySession(t *testing.T) (*Session, *scriptedSource) {
	t.Helper()
	src := &scriptedSource{questions: [][]quiz.Question{threeQuestions(), threeQuestions()}}
	s := New(src, uuid.New())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, src
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{questions: [][]quiz.Question{threeQuestions()}}
	s := New(src, uuid.New())

	if got := s.State(); got != StateLoading {
		t.Fatalf("state before load = %v, want loading", got)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Submit while loading = %v, want ErrNotReady", err)
	}
	if err := s.Select("Paris", "Capital of France."); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Select while loading = %v, want ErrNotReady", err)
	}

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.State(); got != StateReady {
		t.Fatalf("state after load = %v, want ready", got)
	}
	if n := len(s.Questions()); n != 3 {
		t.Fatalf("question count = %d, want 3", n)
	}

	// Loading twice without a retry is a state error.
	if err := s.Load(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Fatalf("second Load = %v, want ErrNotReady", err)
	}
}

func TestSessionSelectUpdatesOneTermOnly(t *testing.T) {
	t.Parallel()

	s, _ := readySession(t)

	if err := s.Select("Paris", "Capital of Spain."); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.Select("Madrid", "Capital of Spain."); err != nil {
		t.Fatalf("Select: %v", err)
	}

	// Changing Paris must not touch Madrid.
	if err := s.Select("Paris", "Capital of France."); err != nil {
		t.Fatalf("re-Select: %v", err)
	}
	if got, _ := s.Response("Paris"); got != "Capital of France." {
		t.Errorf("Paris response = %q, want overwrite", got)
	}
	if got, _ := s.Response("Madrid"); got != "Capital of Spain." {
		t.Errorf("Madrid response = %q, want untouched", got)
	}

	if err := s.Select("Atlantis", "anything"); !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("Select unknown term = %v, want ErrUnknownTerm", err)
	}
}

func TestSessionSubmitScoresExactMatches(t *testing.T) {
	t.Parallel()

	s, _ := readySession(t)

	// One right, one wrong, one unanswered.
	if err := s.Select("Paris", "Capital of France."); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.Select("Madrid", "Capital of Cuba."); err != nil {
		t.Fatalf("Select: %v", err)
	}

	res, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Correct != 1 || res.Total != 3 {
		t.Errorf("result = %d/%d, want 1/3", res.Correct, res.Total)
	}
	if got := s.State(); got != StateSubmitted {
		t.Errorf("state after submit = %v, want submitted", got)
	}

	// Selections are rejected after submit and the score stays frozen.
	if err := s.Select("Rome", "Capital of Italy."); !errors.Is(err, ErrSubmitted) {
		t.Errorf("Select after submit = %v, want ErrSubmitted", err)
	}
	if again, ok := s.Result(); !ok || again != res {
		t.Errorf("Result = %+v ok=%v, want frozen %+v", again, ok, res)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrSubmitted) {
		t.Errorf("double Submit = %v, want ErrSubmitted", err)
	}
}

func TestSessionSubmitEmptyQuiz(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{questions: [][]quiz.Question{{}}}
	s := New(src, uuid.New())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	res, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Correct != 0 || res.Total != 0 {
		t.Errorf("result = %d/%d, want 0/0", res.Correct, res.Total)
	}
}

func TestSessionRetryDiscardsEverything(t *testing.T) {
	t.Parallel()

	s, src := readySession(t)

	if err := s.Select("Paris", "Capital of France."); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if _, err := s.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := s.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("build calls = %d, want a full rebuild", src.calls)
	}
	if got := s.State(); got != StateReady {
		t.Errorf("state after retry = %v, want ready", got)
	}
	if _, ok := s.Response("Paris"); ok {
		t.Error("response survived retry, want discarded")
	}
	if _, ok := s.Result(); ok {
		t.Error("result survived retry, want discarded")
	}

	// A fresh submit scores only the new attempt.
	res, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit after retry: %v", err)
	}
	if res.Correct != 0 || res.Total != 3 {
		t.Errorf("result after retry = %d/%d, want 0/3", res.Correct, res.Total)
	}
}

func TestSessionBuildFailureReachesReadyWithError(t *testing.T) {
	t.Parallel()

	buildErr := errors.New("generator down")
	src := &scriptedSource{
		questions: [][]quiz.Question{nil, threeQuestions()},
		errs:      []error{buildErr, nil},
	}
	s := New(src, uuid.New())

	if err := s.Load(context.Background()); !errors.Is(err, buildErr) {
		t.Fatalf("Load = %v, want build error", err)
	}
	if got := s.State(); got != StateReady {
		t.Fatalf("state after failed load = %v, want ready", got)
	}
	if !errors.Is(s.Err(), buildErr) {
		t.Errorf("Err = %v, want build error", s.Err())
	}
	if n := len(s.Questions()); n != 0 {
		t.Errorf("question count after failed load = %d, want 0", n)
	}

	// No answering or scoring against a failed build.
	if err := s.Select("Paris", "x"); !errors.Is(err, ErrNotReady) {
		t.Errorf("Select after failed load = %v, want ErrNotReady", err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Submit after failed load = %v, want ErrNotReady", err)
	}

	// Retry recovers.
	if err := s.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if s.Err() != nil {
		t.Errorf("Err after successful retry = %v, want nil", s.Err())
	}
	if n := len(s.Questions()); n != 3 {
		t.Errorf("question count after retry = %d, want 3", n)
	}
}
