package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTopicNotesPrompt_Deterministic(t *testing.T) {
	in := TopicNotesInput{
		Topic:          "Photosynthesis",
		ClassLevel:     "Class 10",
		ExamType:       "Board Exam",
		RevisionMode:   true,
		IncludeDiagram: true,
		IncludeChart:   true,
	}

	first := BuildTopicNotesPrompt(in)
	second := BuildTopicNotesPrompt(in)
	assert.Equal(t, first, second, "cùng input phải ra prompt giống hệt nhau")
}

func TestBuildTopicNotesPrompt_EmbedsInputsAndFlags(t *testing.T) {
	prompt := BuildTopicNotesPrompt(TopicNotesInput{
		Topic:          "Newton's Laws",
		RevisionMode:   true,
		IncludeDiagram: true,
	})

	assert.Contains(t, prompt, "Topic: Newton's Laws")
	assert.Contains(t, prompt, "Revision Mode: ON")
	assert.Contains(t, prompt, "Include Diagram: YES")
	assert.Contains(t, prompt, "Include Charts: NO")
	assert.Contains(t, prompt, "graph TD")
	assert.Contains(t, prompt, "RETURN ONLY VALID JSON")
}

func TestBuildTopicNotesPrompt_Defaults(t *testing.T) {
	prompt := BuildTopicNotesPrompt(TopicNotesInput{Topic: "Algebra"})

	// Field không set phải resolve về default trước khi nhúng vào prompt
	assert.Contains(t, prompt, "Class Level: Not specified")
	assert.Contains(t, prompt, "Exam Type: General")
	assert.Contains(t, prompt, "Revision Mode: OFF")
}

func TestBuildYouTubeSummaryPrompt_QuizFlag(t *testing.T) {
	withQuiz := BuildYouTubeSummaryPrompt("abc123", true)
	assert.Contains(t, withQuiz, "https://www.youtube.com/watch?v=abc123")
	assert.Contains(t, withQuiz, "Generate 5-10 MCQ questions")

	withoutQuiz := BuildYouTubeSummaryPrompt("abc123", false)
	assert.Contains(t, withoutQuiz, "Do NOT include MCQs")
	assert.NotContains(t, withoutQuiz, "Generate 5-10 MCQ questions")
}

func TestBuildVoiceTranscriptPrompt_Defaults(t *testing.T) {
	prompt := BuildVoiceTranscriptPrompt(VoiceTranscriptInput{})

	assert.Contains(t, prompt, "SUBJECT: General")
	assert.Contains(t, prompt, "CLASS LEVEL: Not specified")
	assert.Contains(t, prompt, "GENERATE QUIZ: NO")
}

func TestBuildFormulaSheetPrompt(t *testing.T) {
	prompt := BuildFormulaSheetPrompt(FormulaSheetInput{Subject: "Physics"})

	assert.Contains(t, prompt, "SUBJECT: Physics")
	assert.Contains(t, prompt, "CHAPTERS: All major topics")
	assert.Contains(t, prompt, `"subject": "Physics"`)
	assert.Contains(t, prompt, "formula sheet")
}
