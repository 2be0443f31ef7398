package services

import (
	"math"

	"github.com/sloppysaint/mcqSurgery/internal/models"
)

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// SubmittedAnswer is one raw answer from a mock test submission.
type SubmittedAnswer struct {
	MCQID          uint
	SelectedAnswer int
	TimeSpent      int
}

type GradeResult struct {
	ProcessedAnswers []models.TestAnswer
	CorrectAnswers   int
	WrongAnswers     int
	Unanswered       int
	Score            float64 // rounded to two decimals
	RawScore         float64 // unrounded, feeds the running statistics
}

// Grade matches submitted answers against the test's question list and
// computes the aggregate score. Answers referencing a question outside the
// test are skipped: they count neither as correct nor wrong, but the raw
// submission length still reduces the unanswered count, so a submission full
// of invalid references yields correct+wrong+unanswered < totalQuestions.
func (s *ScoringService) Grade(questions []models.MCQ, answers []SubmittedAnswer, totalQuestions int) GradeResult {
	byID := make(map[uint]*models.MCQ, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	var result GradeResult
	for _, a := range answers {
		mcq, ok := byID[a.MCQID]
		if !ok {
			continue
		}
		isCorrect := a.SelectedAnswer == mcq.CorrectAnswer
		if isCorrect {
			result.CorrectAnswers++
		} else {
			result.WrongAnswers++
		}
		result.ProcessedAnswers = append(result.ProcessedAnswers, models.TestAnswer{
			MCQID:          mcq.ID,
			SelectedAnswer: a.SelectedAnswer,
			IsCorrect:      isCorrect,
			TimeSpent:      a.TimeSpent,
		})
	}

	result.Unanswered = totalQuestions - len(answers)
	if totalQuestions > 0 {
		result.RawScore = float64(result.CorrectAnswers) / float64(totalQuestions) * 100
	}
	result.Score = math.Round(result.RawScore*100) / 100
	return result
}
