package service

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
)

// CalculateScore converts a correct/total ratio into a rounded integer
// percentage. Zero totals score zero.
func CalculateScore(correctAnswers, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100))
}

// gradeAnswers marks each submitted answer against the active question set.
// Answers referencing unknown question ids are kept but marked incorrect;
// comparison trims surrounding whitespace on both sides.
func gradeAnswers(questions []model.ExamQuestion, answers []dto.ExamAnswerDTO) ([]model.AnswerRecord, int) {
	questionMap := make(map[uuid.UUID]model.ExamQuestion, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	graded := make([]model.AnswerRecord, 0, len(answers))
	correct := 0
	for _, answer := range answers {
		record := model.AnswerRecord{
			QuestionID: answer.QuestionID,
			Answer:     answer.Answer,
		}
		if question, ok := questionMap[answer.QuestionID]; ok {
			record.IsCorrect = strings.TrimSpace(answer.Answer) == strings.TrimSpace(question.CorrectAnswer)
		}
		if record.IsCorrect {
			correct++
		}
		graded = append(graded, record)
	}
	return graded, correct
}

// buildSectionResults aggregates graded answers per question section.
// Sections are keyed off the question bank, so unanswered questions still
// count toward their section's total.
func buildSectionResults(questions []model.ExamQuestion, graded []model.AnswerRecord) []dto.SectionResultDTO {
	type sectionAgg struct {
		title   string
		total   int
		correct int
	}

	byQuestion := make(map[uuid.UUID]model.AnswerRecord, len(graded))
	for _, record := range graded {
		byQuestion[record.QuestionID] = record
	}

	sections := make(map[int]*sectionAgg)
	for _, q := range questions {
		agg, ok := sections[q.SectionNumber]
		if !ok {
			agg = &sectionAgg{title: q.SectionTitle}
			sections[q.SectionNumber] = agg
		}
		agg.total++
		if record, answered := byQuestion[q.ID]; answered && record.IsCorrect {
			agg.correct++
		}
	}

	numbers := make([]int, 0, len(sections))
	for number := range sections {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	results := make([]dto.SectionResultDTO, 0, len(numbers))
	for _, number := range numbers {
		agg := sections[number]
		results = append(results, dto.SectionResultDTO{
			SectionNumber:  number,
			SectionTitle:   agg.title,
			TotalQuestions: agg.total,
			CorrectAnswers: agg.correct,
			Percentage:     CalculateScore(agg.correct, agg.total),
		})
	}
	return results
}
