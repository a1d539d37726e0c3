package service

import (
	"math"
	"math/rand"

	"github.com/quizdesk/classroom/internal/model"
)

// QuestionGenerator draws a stratified random question set for a quiz.
type QuestionGenerator interface {
	Generate(quiz *model.Quiz, pool []model.Question) []model.Question
}

type questionGenerator struct{}

func NewQuestionGenerator() QuestionGenerator {
	return &questionGenerator{}
}

// Generate partitions the pool into difficulty strata, draws each stratum's
// share without replacement and shuffles the combined result. Target counts
// are derived from the full pool size, not the quiz's requested total, with
// each stratum rounded independently; a target larger than its stratum is
// capped at the stratum size so the draw always terminates.
func (g *questionGenerator) Generate(quiz *model.Quiz, pool []model.Question) []model.Question {
	if len(pool) == 0 {
		return nil
	}

	if quiz.UseAllQuestions {
		out := make([]model.Question, len(pool))
		copy(out, pool)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	strata := map[string][]model.Question{}
	for _, q := range pool {
		strata[q.Level] = append(strata[q.Level], q)
	}

	poolSize := len(pool)
	var selected []model.Question
	for _, s := range []struct {
		level   string
		percent int
	}{
		{model.LevelEasy, quiz.EasyPercent},
		{model.LevelMedium, quiz.MediumPercent},
		{model.LevelHard, quiz.HardPercent},
	} {
		selected = append(selected, drawFromStratum(strata[s.level], s.percent, poolSize)...)
	}

	rand.Shuffle(len(selected), func(i, j int) { selected[i], selected[j] = selected[j], selected[i] })
	return selected
}

func drawFromStratum(stratum []model.Question, percent, poolSize int) []model.Question {
	if len(stratum) == 0 || percent <= 0 {
		return nil
	}

	// Half values round to even: 25% of a pool of 10 targets 2, not 3.
	target := int(math.RoundToEven(float64(percent) / 100 * float64(poolSize)))
	if target > len(stratum) {
		target = len(stratum)
	}
	if target <= 0 {
		return nil
	}

	// Uniform index selection with rejection on duplicates. Capping the
	// target at the stratum size keeps the loop finite in expectation.
	picked := make(map[int]bool, target)
	out := make([]model.Question, 0, target)
	for len(out) < target {
		idx := rand.Intn(len(stratum))
		if picked[idx] {
			continue
		}
		picked[idx] = true
		out = append(out, stratum[idx])
	}
	return out
}
