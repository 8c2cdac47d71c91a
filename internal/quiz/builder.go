package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/google/uuid"
)

// SetReader is the slice of the set store the builder needs.
type SetReader interface {
	GetSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error)
}

// Builder turns a flashcard set into a multiple-choice quiz by pairing each
// card's definition with generated distractors. Distractor requests fan out
// concurrently, one per card, and join in card order; if any single request
// fails the whole build fails, since a quiz with a card missing options is
// unusable.
type Builder struct {
	sets   SetReader
	gen    generation.DistractorGenerator
	logger *slog.Logger

	mu  sync.Mutex
	rng RandSource
}

// NewBuilder creates a Builder. If rng is nil a time-seeded source is used;
// tests pass a deterministic source. If log is nil the default logger is used.
func NewBuilder(sets SetReader, gen generation.DistractorGenerator, rng RandSource, log *slog.Logger) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = slog.Default()
	}

	return &Builder{
		sets:   sets,
		gen:    gen,
		logger: log.With(slog.String("component", "quiz_builder")),
		rng:    rng,
	}
}

// QuizCards builds the pre-shuffle quiz records for the given set, ordered
// like the set's cards. A set with zero cards yields an empty slice.
// Returns the store's not-found error verbatim if the set is absent; any
// generator failure aborts the build and surfaces wrapped in
// generation.ErrGenerationFailed.
func (b *Builder) QuizCards(ctx context.Context, setID uuid.UUID) ([]QuizCard, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)

	set, err := b.sets.GetSet(ctx, setID)
	if err != nil {
		return nil, err
	}

	if len(set.Cards) == 0 {
		return []QuizCard{}, nil
	}

	// Fan out one distractor request per card. Results land in their card's
	// slot so the join preserves the set's card order no matter which
	// request finishes first. The context is canceled on the first failure
	// so remaining in-flight requests stop early; their results are ignored.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cards := make([]QuizCard, len(set.Cards))
	errs := make([]error, len(set.Cards))

	var wg sync.WaitGroup
	for i := range set.Cards {
		wg.Add(1)
		go func(i int, card domain.Card) {
			defer wg.Done()

			qc, err := b.buildCard(ctx, card)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			cards[i] = qc
		}(i, set.Cards[i])
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			log.Warn("quiz build aborted",
				slog.String("set_id", setID.String()),
				slog.String("term", set.Cards[i].Term),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: card %q: %v",
				generation.ErrGenerationFailed, set.Cards[i].Term, err)
		}
	}

	log.Info("quiz built",
		slog.String("set_id", setID.String()),
		slog.Int("question_count", len(cards)))
	return cards, nil
}

// BuildQuiz builds ready-to-present questions for the given set: the
// pre-shuffle records with each question's options independently shuffled.
func (b *Builder) BuildQuiz(ctx context.Context, setID uuid.UUID) ([]Question, error) {
	cards, err := b.QuizCards(ctx, setID)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, len(cards))
	for i, qc := range cards {
		options := make([]string, 0, 1+len(qc.IncorrectAnswers))
		options = append(options, qc.CorrectDefinition)
		options = append(options, qc.IncorrectAnswers...)

		b.mu.Lock()
		Shuffle(b.rng, options)
		b.mu.Unlock()

		questions[i] = Question{
			Term:    qc.Term,
			Options: options,
			Correct: qc.CorrectDefinition,
		}
	}

	return questions, nil
}

// buildCard generates and normalizes one card's quiz record.
func (b *Builder) buildCard(ctx context.Context, card domain.Card) (QuizCard, error) {
	correct := NormalizeAnswer(card.Definition)

	raw, err := b.gen.GenerateDistractors(ctx, card.Term, correct)
	if err != nil {
		return QuizCard{}, err
	}

	seen := map[string]bool{correct: true}
	incorrect := make([]string, 0, len(raw))
	for _, candidate := range raw {
		normalized := NormalizeAnswer(candidate)
		if normalized == "" || seen[normalized] {
			return QuizCard{}, fmt.Errorf("%w: duplicate or empty distractor %q",
				generation.ErrInvalidResponse, candidate)
		}
		seen[normalized] = true
		incorrect = append(incorrect, normalized)
	}

	return QuizCard{
		Term:              card.Term,
		CorrectDefinition: correct,
		IncorrectAnswers:  incorrect,
	}, nil
}
