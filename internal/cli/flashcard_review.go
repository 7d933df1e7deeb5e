package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/estudazilla/internal/study"
)

// FlashcardStore is the part of the study repository a review session needs.
type FlashcardStore interface {
	ListFlashcards(ctx context.Context) ([]study.Flashcard, error)
	ReviewFlashcard(ctx context.Context, id int64, difficulty study.Difficulty, at time.Time) error
}

// FlashcardReviewCLI shows each flashcard, reveals its answer and records the difficulty chosen.
type FlashcardReviewCLI struct {
	*InteractiveCLI
	store    FlashcardStore
	cards    []study.Flashcard
	next     int
	reviewed int
	now      func() time.Time
}

// NewFlashcardReviewCLI loads the flashcards to review, least recently reviewed first.
func NewFlashcardReviewCLI(ctx context.Context, store FlashcardStore, in io.Reader, out io.Writer) (*FlashcardReviewCLI, error) {
	cards, err := store.ListFlashcards(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListFlashcards() > %w", err)
	}
	return &FlashcardReviewCLI{
		InteractiveCLI: newInteractiveCLI(in, out),
		store:          store,
		cards:          cards,
		now:            time.Now,
	}, nil
}

// Limit keeps only the first n cards. n <= 0 keeps all of them.
func (r *FlashcardReviewCLI) Limit(n int) {
	if n > 0 && n < len(r.cards) {
		r.cards = r.cards[:n]
	}
}

// Reviewed returns how many cards were rated.
func (r *FlashcardReviewCLI) Reviewed() int {
	return r.reviewed
}

func (r *FlashcardReviewCLI) getNextCard() *study.Flashcard {
	if r.next >= len(r.cards) {
		return nil
	}
	card := &r.cards[r.next]
	r.next++
	return card
}

// Session reviews one card.
func (r *FlashcardReviewCLI) Session(ctx context.Context) error {
	card := r.getNextCard()
	if card == nil {
		r.green.Fprintf(r.stdoutWriter, "Revisão concluída: %d cartão(ões) revisado(s).\n", r.reviewed)
		return errEnd
	}

	fmt.Fprintf(r.stdoutWriter, "\n[%d/%d] ", r.next, len(r.cards))
	if card.Chapter != "" {
		r.italic.Fprintf(r.stdoutWriter, "%s / %s\n", card.Chapter, card.Theme)
	} else {
		fmt.Fprintln(r.stdoutWriter)
	}
	r.bold.Fprint(r.stdoutWriter, "Pergunta: ")
	fmt.Fprintln(r.stdoutWriter, card.Question)
	fmt.Fprint(r.stdoutWriter, "Pressione Enter para ver a resposta (q para sair): ")

	input, err := r.readLine()
	if err != nil {
		return err
	}
	if strings.EqualFold(input, "q") {
		return errEnd
	}

	r.bold.Fprint(r.stdoutWriter, "Resposta: ")
	fmt.Fprintln(r.stdoutWriter, card.Answer)

	difficulty, err := r.askDifficulty()
	if err != nil {
		return err
	}
	if err := r.store.ReviewFlashcard(ctx, card.ID, difficulty, r.now().UTC().Truncate(time.Second)); err != nil {
		return fmt.Errorf("store.ReviewFlashcard(%d) > %w", card.ID, err)
	}
	r.reviewed++
	return nil
}

func (r *FlashcardReviewCLI) askDifficulty() (study.Difficulty, error) {
	for {
		fmt.Fprintf(r.stdoutWriter, "Dificuldade (1-%s, 2-%s, 3-%s, q para sair): ",
			study.DifficultyEasy, study.DifficultyMedium, study.DifficultyHard)
		input, err := r.readLine()
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(input, "q") {
			return 0, errEnd
		}
		n, err := strconv.Atoi(input)
		if err == nil && study.Difficulty(n).Valid() {
			return study.Difficulty(n), nil
		}
		r.yellow.Fprintln(r.stdoutWriter, "Escolha 1, 2 ou 3.")
	}
}
