package services

// GenerationKind xác định schema và prompt cho một lần sinh.
type GenerationKind string

const (
	KindTopicNotes      GenerationKind = "topic_notes"
	KindYouTubeSummary  GenerationKind = "youtube_summary"
	KindVoiceTranscript GenerationKind = "voice_transcript"
	KindFormulaSheet    GenerationKind = "formula_sheet"
)

// Ba mức độ quan trọng của sub-topic. Artifact hợp lệ phải có đủ cả ba key,
// kể cả khi danh sách rỗng.
const (
	TierVeryImportant = "⭐"
	TierImportant     = "⭐⭐"
	TierFrequent      = "⭐⭐⭐"
)

var subTopicTiers = []string{TierVeryImportant, TierImportant, TierFrequent}

// Các loại chart cho phép (recharts phía client)
var allowedChartTypes = map[string]bool{
	"bar":  true,
	"line": true,
	"pie":  true,
}

type MCQ struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

type Questions struct {
	Short   []string `json:"short"`
	Long    []string `json:"long"`
	Diagram string   `json:"diagram"`
}

type Diagram struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Chart struct {
	Type  string       `json:"type"`
	Title string       `json:"title"`
	Data  []ChartPoint `json:"data"`
}

// StudyArtifact là shape chung cho topic notes, youtube summary và voice
// transcript. FormulaSheet dùng shape riêng bên dưới.
type StudyArtifact struct {
	SubTopics      map[string][]string `json:"subTopics"`
	Importance     string              `json:"importance"`
	Notes          string              `json:"notes"`
	RevisionPoints []string            `json:"revisionPoints"`
	Questions      Questions           `json:"questions"`
	MCQs           []MCQ               `json:"mcqs"`
	Diagram        Diagram             `json:"diagram"`
	Charts         []Chart             `json:"charts"`
}

type FormulaSheetArtifact struct {
	Subject    string `json:"subject"`
	ClassLevel string `json:"classLevel"`
	ExamType   string `json:"examType"`
	Formulas   string `json:"formulas"`
}

// StudyOptions là phần request quyết định việc chuẩn hoá: normalizer ép
// artifact theo ý định của request chứ không theo model trả gì.
type StudyOptions struct {
	GenerateQuiz   bool
	IncludeDiagram bool
	IncludeChart   bool
}
