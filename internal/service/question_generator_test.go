package service

import (
	"testing"

	"github.com/quizdesk/classroom/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePool(easy, medium, hard int) []model.Question {
	var pool []model.Question
	id := uint(0)
	add := func(level string, n int) {
		for i := 0; i < n; i++ {
			id++
			pool = append(pool, model.Question{ID: id, Level: level})
		}
	}
	add(model.LevelEasy, easy)
	add(model.LevelMedium, medium)
	add(model.LevelHard, hard)
	return pool
}

func countLevels(questions []model.Question) map[string]int {
	counts := map[string]int{}
	for _, q := range questions {
		counts[q.Level]++
	}
	return counts
}

func TestGenerateEmptyPool(t *testing.T) {
	g := NewQuestionGenerator()
	got := g.Generate(&model.Quiz{EasyPercent: 50, MediumPercent: 25, HardPercent: 25}, nil)
	assert.Empty(t, got)
}

func TestGenerateNoDuplicates(t *testing.T) {
	g := NewQuestionGenerator()
	quiz := &model.Quiz{EasyPercent: 40, MediumPercent: 40, HardPercent: 20}
	pool := makePool(10, 10, 5)

	for i := 0; i < 50; i++ {
		got := g.Generate(quiz, pool)
		seen := map[uint]bool{}
		for _, q := range got {
			require.False(t, seen[q.ID], "duplicate question id %d", q.ID)
			seen[q.ID] = true
		}
	}
}

func TestGenerateStratumTargets(t *testing.T) {
	g := NewQuestionGenerator()
	// Targets derive from the full pool size: 40% of 25 = 10, 20% of 25 = 5.
	quiz := &model.Quiz{EasyPercent: 40, MediumPercent: 40, HardPercent: 20}
	pool := makePool(10, 10, 5)

	got := g.Generate(quiz, pool)
	counts := countLevels(got)
	assert.Equal(t, 10, counts[model.LevelEasy])
	assert.Equal(t, 10, counts[model.LevelMedium])
	assert.Equal(t, 5, counts[model.LevelHard])
	assert.Len(t, got, 25)
}

func TestGenerateCapsAtStratumSize(t *testing.T) {
	g := NewQuestionGenerator()
	// Pool of 10 with profile {50,25,25} targets {5,2,2}, but only 4 easy
	// questions exist: the draw caps at 4 instead of looping forever.
	quiz := &model.Quiz{EasyPercent: 50, MediumPercent: 25, HardPercent: 25}
	pool := makePool(4, 4, 2)

	got := g.Generate(quiz, pool)
	counts := countLevels(got)
	assert.Equal(t, 4, counts[model.LevelEasy])
	assert.Equal(t, 2, counts[model.LevelMedium])
	assert.Equal(t, 2, counts[model.LevelHard])
	assert.Len(t, got, 8)
}

func TestGenerateEmptyStratumWithNonzeroTarget(t *testing.T) {
	g := NewQuestionGenerator()
	quiz := &model.Quiz{EasyPercent: 50, MediumPercent: 50, HardPercent: 50}
	pool := makePool(5, 5, 0)

	got := g.Generate(quiz, pool)
	counts := countLevels(got)
	assert.Zero(t, counts[model.LevelHard])
	assert.Equal(t, 5, counts[model.LevelEasy])
	assert.Equal(t, 5, counts[model.LevelMedium])
}

func TestGenerateUseAllQuestions(t *testing.T) {
	g := NewQuestionGenerator()
	quiz := &model.Quiz{UseAllQuestions: true}
	pool := makePool(3, 3, 3)

	got := g.Generate(quiz, pool)
	require.Len(t, got, len(pool))
	seen := map[uint]bool{}
	for _, q := range got {
		seen[q.ID] = true
	}
	assert.Len(t, seen, len(pool))
}

func TestGenerateZeroPercentages(t *testing.T) {
	g := NewQuestionGenerator()
	got := g.Generate(&model.Quiz{}, makePool(3, 3, 3))
	assert.Empty(t, got)
}
