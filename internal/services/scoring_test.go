package services_test

import (
	"testing"

	"github.com/sloppysaint/mcqSurgery/internal/models"
	"github.com/sloppysaint/mcqSurgery/internal/services"
)

func gradingQuestions() []models.MCQ {
	return []models.MCQ{
		{ID: 1, CorrectAnswer: 1},
		{ID: 2, CorrectAnswer: 0},
		{ID: 3, CorrectAnswer: 2},
	}
}

func TestGradeMixedSubmission(t *testing.T) {
	scoring := services.NewScoringService()

	result := scoring.Grade(gradingQuestions(), []services.SubmittedAnswer{
		{MCQID: 1, SelectedAnswer: 1},
		{MCQID: 2, SelectedAnswer: 1},
	}, 3)

	if result.CorrectAnswers != 1 || result.WrongAnswers != 1 || result.Unanswered != 1 {
		t.Fatalf("expected 1/1/1, got %d/%d/%d",
			result.CorrectAnswers, result.WrongAnswers, result.Unanswered)
	}
	if result.Score != 33.33 {
		t.Fatalf("expected score 33.33, got %v", result.Score)
	}
	if result.RawScore <= 33.33 || result.RawScore >= 33.34 {
		t.Fatalf("expected unrounded raw score near 33.333, got %v", result.RawScore)
	}
	if len(result.ProcessedAnswers) != 2 {
		t.Fatalf("expected 2 processed answers, got %d", len(result.ProcessedAnswers))
	}
}

func TestGradePerfectSubmission(t *testing.T) {
	scoring := services.NewScoringService()

	result := scoring.Grade(gradingQuestions(), []services.SubmittedAnswer{
		{MCQID: 1, SelectedAnswer: 1},
		{MCQID: 2, SelectedAnswer: 0},
		{MCQID: 3, SelectedAnswer: 2},
	}, 3)

	if result.Score != 100 || result.CorrectAnswers != 3 || result.Unanswered != 0 {
		t.Fatalf("expected a perfect grade, got %+v", result)
	}
}

func TestGradeEmptySubmission(t *testing.T) {
	scoring := services.NewScoringService()

	result := scoring.Grade(gradingQuestions(), nil, 3)

	if result.Score != 0 || result.CorrectAnswers != 0 || result.WrongAnswers != 0 {
		t.Fatalf("expected a zero grade, got %+v", result)
	}
	if result.Unanswered != 3 {
		t.Fatalf("expected 3 unanswered, got %d", result.Unanswered)
	}
}

func TestGradeSkipsUnknownQuestions(t *testing.T) {
	scoring := services.NewScoringService()

	result := scoring.Grade(gradingQuestions(), []services.SubmittedAnswer{
		{MCQID: 99, SelectedAnswer: 0},
		{MCQID: 1, SelectedAnswer: 1},
	}, 3)

	if result.CorrectAnswers != 1 || result.WrongAnswers != 0 {
		t.Fatalf("expected the unknown reference to be skipped, got %+v", result)
	}
	// The raw submission length still drives the unanswered count, so the
	// skipped answer leaves correct+wrong+unanswered short of the total.
	if result.Unanswered != 1 {
		t.Fatalf("expected 1 unanswered, got %d", result.Unanswered)
	}
	if len(result.ProcessedAnswers) != 1 {
		t.Fatalf("expected 1 processed answer, got %d", len(result.ProcessedAnswers))
	}
}

func TestGradeZeroQuestionTest(t *testing.T) {
	scoring := services.NewScoringService()

	result := scoring.Grade(nil, nil, 0)

	if result.Score != 0 || result.RawScore != 0 {
		t.Fatalf("expected zero score on an empty test, got %+v", result)
	}
}
