package services

import (
	"fmt"
	"strings"
)

// Các builder dưới đây là hàm thuần: cùng input luôn ra đúng một chuỗi prompt,
// không I/O, không random, không phụ thuộc giờ hệ thống.

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

type TopicNotesInput struct {
	Topic          string
	ClassLevel     string
	ExamType       string
	RevisionMode   bool
	IncludeDiagram bool
	IncludeChart   bool
}

func BuildTopicNotesPrompt(in TopicNotesInput) string {
	return fmt.Sprintf(`
You are a STRICT JSON generator for an exam preparation system.

⚠️ VERY IMPORTANT:
- Output MUST be valid JSON
- Your response will be parsed by a machine
- INVALID JSON will cause system failure
- Use ONLY double quotes "
- NO comments, NO trailing commas
- Escape line breaks using \n
- Do NOT use emojis inside text values

TASK:
Convert the given topic into exam-focused notes.

INPUT:
Topic: %s
Class Level: %s
Exam Type: %s
Revision Mode: %s
Include Diagram: %s
Include Charts: %s

GLOBAL CONTENT RULES:
- Use clear, simple, exam-oriented language
- Notes MUST be Markdown formatted
- Headings and bullet points only

REVISION MODE RULES (CRITICAL):
- If REVISION MODE is ON:
  - Notes must be SHORT and quick
  - Focus on bullet points
  - Key definitions, formulas, keywords
  - No long paragraphs
  - Content must feel like last-minute revision cheat sheet
  - revisionPoints MUST summarize ALL important facts

- If REVISION MODE is OFF:
  - Notes must be COMPREHENSIVE and DETAILED
  - Each major concept should include:
    - Clear definition with context
    - Detailed explanation (3-5 sentences minimum)
    - Real-world examples when applicable
    - Step-by-step breakdown for processes
    - Key points and takeaways
  - Use proper headings (##, ###) to organize content
  - Include multiple paragraphs per section
  - Aim for AT LEAST 800-1200 words of content
  - Break down complex topics into digestible sections
  - Use markdown formatting: **bold** for important terms, bullet points for lists
  - Add context about why this topic is important for exams

IMPORTANCE RULES:
- Divide sub-topics into THREE categories:
  - ⭐ Very Important Topics
  - ⭐⭐ Important Topics
  - ⭐⭐⭐ Frequently Asked Topics
- All three categories MUST be present
- Base importance on exam frequency and weightage

DIAGRAM RULES:
- If INCLUDE DIAGRAM is YES:
  - diagram.data MUST be a SINGLE STRING
  - Valid Mermaid syntax only
  - Must start with: graph TD
  - Wrap EVERY node label in square brackets [ ]
  - Do NOT use special characters inside labels
- If INCLUDE DIAGRAM is NO:
  - diagram.data MUST be ""

CHART RULES (RECHARTS):
- If INCLUDE CHARTS is YES:
  - charts array MUST NOT be empty
  - Generate at least ONE chart
  - Choose chart based on topic type:
    - THEORY topic → bar or pie (importance / weightage)
    - PROCESS topic → bar or line (steps / stages)
  - Use numeric values ONLY
  - Labels must be short and exam-oriented
- If INCLUDE CHARTS is NO:
  - charts MUST be []

CHART TYPES ALLOWED:
- bar
- line
- pie

CHART OBJECT FORMAT:
{
  "type": "bar | line | pie",
  "title": "string",
  "data": [
    { "name": "string", "value": 10 }
  ]
}

STRICT JSON FORMAT (DO NOT CHANGE):

{
  "subTopics": {
    "⭐": [],
    "⭐⭐": [],
    "⭐⭐⭐": []
  },
  "importance": "⭐ | ⭐⭐ | ⭐⭐⭐",
  "notes": "string",
  "revisionPoints": [],
  "questions": {
    "short": [],
    "long": [],
    "diagram": ""
  },
  "mcqs": [
    {
      "question": "string",
      "options": ["A", "B", "C", "D"],
      "correct": 0,
      "explanation": "string"
    }
  ],
  "diagram": {
    "type": "flowchart | graph | process",
    "data": ""
  },
  "charts": []
}

MCQ GENERATION RULES:
- Generate AT LEAST 5-10 multiple choice questions
- Questions should test understanding, not just memory
- Include 4 options (A, B, C, D) for each question
- 'correct' is the index (0, 1, 2, or 3) of the correct answer
- Add a brief explanation for why the answer is correct
- Cover all important concepts from the notes
- Mix difficulty levels (easy, medium, hard)

RETURN ONLY VALID JSON.
`,
		in.Topic,
		orDefault(in.ClassLevel, "Not specified"),
		orDefault(in.ExamType, "General"),
		onOff(in.RevisionMode),
		yesNo(in.IncludeDiagram),
		yesNo(in.IncludeChart),
	)
}

func BuildYouTubeSummaryPrompt(videoID string, generateQuiz bool) string {
	quizRule := "- Do NOT include MCQs, mcqs MUST be []"
	if generateQuiz {
		quizRule = "- Generate 5-10 MCQ questions with 4 options each and a 0-based correct index"
	}
	return fmt.Sprintf(`
You are a STRICT JSON generator for an educational video summarizer.

⚠️ VERY IMPORTANT:
- Output MUST be valid JSON
- Your response will be parsed by a machine
- Use ONLY double quotes "
- NO comments, NO trailing commas
- Escape line breaks using \n

TASK:
Generate structured notes from this YouTube video: https://www.youtube.com/watch?v=%s

Since the actual transcript is not available, generate a TEMPLATE response that
explains the video summarizer feature.

CONTENT RULES:
- Create comprehensive notes structure
- Notes must be Markdown formatted with headings (##, ###)
- Include sub-topics with importance levels (⭐, ⭐⭐, ⭐⭐⭐ — all three keys present)
- Add revision points
- Include sample questions
%s

STRICT JSON FORMAT (DO NOT CHANGE):
{
  "subTopics": {
    "⭐": [],
    "⭐⭐": [],
    "⭐⭐⭐": []
  },
  "importance": "⭐⭐",
  "notes": "## Main Topic\n\nDetailed markdown content here...",
  "revisionPoints": [],
  "questions": {
    "short": [],
    "long": [],
    "diagram": ""
  },
  "mcqs": [],
  "diagram": {
    "type": "flowchart",
    "data": ""
  },
  "charts": []
}

NOTE: In production, this would use the YouTube Transcript API to fetch actual
video content. Acknowledge in the notes that this is a demonstration of the
feature structure.

RETURN ONLY VALID JSON.
`, videoID, quizRule)
}

type VoiceTranscriptInput struct {
	Subject      string
	ClassLevel   string
	GenerateQuiz bool
}

func BuildVoiceTranscriptPrompt(in VoiceTranscriptInput) string {
	quizLine := ""
	if in.GenerateQuiz {
		quizLine = "5. Interactive quiz questions (5-10 MCQs, 4 options, 0-based correct index)\n"
	}
	return fmt.Sprintf(`
You are a STRICT JSON generator for a lecture transcription system.

⚠️ VERY IMPORTANT:
- Output MUST be valid JSON
- Use ONLY double quotes "
- NO comments, NO trailing commas
- Escape line breaks using \n

TASK:
Generate structured notes from a recorded lecture.

SUBJECT: %s
CLASS LEVEL: %s
GENERATE QUIZ: %s

Since actual audio transcription requires additional APIs, generate a TEMPLATE
that shows:
1. How transcribed content would be structured
2. Main concepts organized by importance (⭐, ⭐⭐, ⭐⭐⭐ — all three keys present)
3. Revision points from the lecture
4. Questions based on lecture content
%s
CONTENT RULES:
- Create detailed lecture notes (800+ words)
- Use Markdown formatting with headings
- Include examples and explanations
- Add practical applications

STRICT JSON FORMAT (DO NOT CHANGE):
{
  "subTopics": {
    "⭐": [],
    "⭐⭐": [],
    "⭐⭐⭐": []
  },
  "importance": "⭐⭐",
  "notes": "## Lecture Notes\n\nTranscribed content...",
  "revisionPoints": [],
  "questions": {
    "short": [],
    "long": [],
    "diagram": ""
  },
  "mcqs": [],
  "diagram": {
    "type": "flowchart",
    "data": ""
  },
  "charts": []
}

NOTE: In production, this would use a Speech-to-Text API to transcribe actual audio.

RETURN ONLY VALID JSON.
`,
		orDefault(in.Subject, "General"),
		orDefault(in.ClassLevel, "Not specified"),
		yesNo(in.GenerateQuiz),
		quizLine,
	)
}

type FormulaSheetInput struct {
	Subject    string
	Chapters   string
	ClassLevel string
	ExamType   string
}

func BuildFormulaSheetPrompt(in FormulaSheetInput) string {
	return fmt.Sprintf(`
You are a STRICT JSON generator for a formula sheet creator.

⚠️ VERY IMPORTANT:
- Output MUST be valid JSON
- Use ONLY double quotes "
- NO comments, NO trailing commas
- Escape line breaks using \n

TASK:
Generate a comprehensive formula sheet.

SUBJECT: %s
CHAPTERS: %s
CLASS LEVEL: %s
EXAM TYPE: %s

REQUIREMENTS:
1. List ALL important formulas for the subject
2. Organize by chapters/topics
3. Include:
   - Formula name
   - Mathematical expression
   - Variable definitions
   - Units (if applicable)
   - When to use it
4. Format in clear Markdown

FORMULA FORMAT EXAMPLE:
## Chapter Name

### Formula 1: Formula Name
- **Expression**: \( F = ma \)
- **Where**:
  - F = Force (Newton)
  - m = Mass (kg)
  - a = Acceleration (m/s²)
- **Use**: Calculate force when mass and acceleration are known

STRICT JSON FORMAT (DO NOT CHANGE):
{
  "subject": "%s",
  "classLevel": "%s",
  "examType": "%s",
  "formulas": "## Main Content\n\n### Formulas organized by chapter..."
}

Generate AT LEAST 15-20 formulas organized by topics.
Make it comprehensive and exam-ready.

RETURN ONLY VALID JSON.
`,
		in.Subject,
		orDefault(in.Chapters, "All major topics"),
		orDefault(in.ClassLevel, "Not specified"),
		orDefault(in.ExamType, "General"),
		in.Subject,
		in.ClassLevel,
		in.ExamType,
	)
}
