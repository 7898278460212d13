package services

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CleanModelJSON cắt phần bọc ngoài JSON mà model hay thêm vào: code fence,
// chữ "json" sau fence, câu dẫn trước/after. Không đoán gì bên trong JSON.
func CleanModelJSON(raw string) string {
	clean := strings.TrimSpace(raw)

	// Bỏ code fence nếu có
	if i := strings.Index(clean, "```"); i != -1 {
		clean = clean[i+3:]
		clean = strings.TrimPrefix(clean, "json")
		if j := strings.Index(clean, "```"); j != -1 {
			clean = clean[:j]
		}
	}
	clean = strings.TrimSpace(clean)

	// Cắt từ '{' đầu tiên đến '}' cuối cùng để bỏ câu dẫn quanh JSON
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return clean[start : end+1]
}

// Key bắt buộc ở top-level. mcqs/diagram/charts/importance thiếu thì có
// default an toàn nên không nằm trong danh sách này.
var requiredStudyKeys = []string{"subTopics", "notes", "revisionPoints", "questions"}
var requiredFormulaKeys = []string{"formulas"}

// ParseStudyArtifact parse + chuẩn hoá output của model theo shape chung
// (topic notes / youtube / voice). Lỗi trả về luôn là *ValidationError.
//
// Chính sách: chỗ nào có default an toàn thì sửa tại chỗ (thiếu tier, MCQ
// hỏng, chart point không phải số); không có default thì fail cả run.
// Normalizer ép theo ý định request: diagram/chart/quiz không được yêu cầu
// thì bị xoá bất kể model trả gì.
func ParseStudyArtifact(raw string, opts StudyOptions) (*StudyArtifact, error) {
	clean := CleanModelJSON(raw)
	if clean == "" {
		return nil, &ValidationError{Reason: ReasonMalformedJSON, Detail: "no JSON object in model output"}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &top); err != nil {
		return nil, &ValidationError{Reason: ReasonMalformedJSON, Detail: "model output is not a JSON object"}
	}

	if missing := missingKeys(top, requiredStudyKeys); len(missing) > 0 {
		return nil, &ValidationError{Reason: ReasonSchemaMismatch, MissingKeys: missing}
	}

	art := &StudyArtifact{}

	if err := json.Unmarshal(top["subTopics"], &art.SubTopics); err != nil {
		return nil, &ValidationError{Reason: ReasonSchemaMismatch, Detail: "subTopics is not an object of string lists"}
	}
	if err := json.Unmarshal(top["notes"], &art.Notes); err != nil {
		return nil, &ValidationError{Reason: ReasonSchemaMismatch, Detail: "notes is not a string"}
	}
	if err := json.Unmarshal(top["revisionPoints"], &art.RevisionPoints); err != nil {
		return nil, &ValidationError{Reason: ReasonSchemaMismatch, Detail: "revisionPoints is not a string list"}
	}
	if err := json.Unmarshal(top["questions"], &art.Questions); err != nil {
		return nil, &ValidationError{Reason: ReasonSchemaMismatch, Detail: "questions has wrong shape"}
	}

	// Tier thiếu -> default rỗng, tier lạ bị bỏ
	normalized := make(map[string][]string, len(subTopicTiers))
	for _, tier := range subTopicTiers {
		if list, ok := art.SubTopics[tier]; ok && list != nil {
			normalized[tier] = list
		} else {
			normalized[tier] = []string{}
		}
	}
	art.SubTopics = normalized

	if art.RevisionPoints == nil {
		art.RevisionPoints = []string{}
	}
	if art.Questions.Short == nil {
		art.Questions.Short = []string{}
	}
	if art.Questions.Long == nil {
		art.Questions.Long = []string{}
	}

	// importance thiếu hoặc sai giá trị -> default ⭐⭐
	art.Importance = TierImportant
	if rawImp, ok := top["importance"]; ok {
		var imp string
		if err := json.Unmarshal(rawImp, &imp); err == nil {
			switch imp {
			case TierVeryImportant, TierImportant, TierFrequent:
				art.Importance = imp
			}
		}
	}

	art.MCQs = normalizeMCQs(top["mcqs"], opts.GenerateQuiz)
	art.Diagram = normalizeDiagram(top["diagram"], opts.IncludeDiagram)
	art.Charts = normalizeCharts(top["charts"], opts.IncludeChart)

	return art, nil
}

// Từng entry parse riêng: entry hỏng bị bỏ, không fail cả artifact.
func normalizeMCQs(raw json.RawMessage, quizRequested bool) []MCQ {
	mcqs := []MCQ{}
	if !quizRequested || raw == nil {
		return mcqs
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return mcqs
	}

	for _, entry := range entries {
		var m struct {
			Question    string          `json:"question"`
			Options     []string        `json:"options"`
			Correct     json.RawMessage `json:"correct"`
			Explanation string          `json:"explanation"`
		}
		if err := json.Unmarshal(entry, &m); err != nil {
			continue
		}
		correct, ok := asInt(m.Correct)
		if !ok || m.Question == "" || len(m.Options) != 4 || correct < 0 || correct > 3 {
			continue
		}
		mcqs = append(mcqs, MCQ{
			Question:    m.Question,
			Options:     m.Options,
			Correct:     correct,
			Explanation: m.Explanation,
		})
	}
	return mcqs
}

func normalizeDiagram(raw json.RawMessage, requested bool) Diagram {
	d := Diagram{Type: "flowchart", Data: ""}
	if raw != nil {
		var parsed Diagram
		if err := json.Unmarshal(raw, &parsed); err == nil {
			if parsed.Type != "" {
				d.Type = parsed.Type
			}
			d.Data = parsed.Data
		}
	}
	// Request không yêu cầu diagram thì data luôn rỗng
	if !requested {
		d.Data = ""
	}
	return d
}

func normalizeCharts(raw json.RawMessage, requested bool) []Chart {
	charts := []Chart{}
	if !requested || raw == nil {
		return charts
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return charts
	}

	for _, entry := range entries {
		var c struct {
			Type  string `json:"type"`
			Title string `json:"title"`
			Data  []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"data"`
		}
		if err := json.Unmarshal(entry, &c); err != nil {
			continue
		}
		if !allowedChartTypes[c.Type] {
			continue
		}
		points := []ChartPoint{}
		for _, p := range c.Data {
			if v, ok := asFloat(p.Value); ok {
				points = append(points, ChartPoint{Name: p.Name, Value: v})
			}
		}
		if len(points) == 0 {
			continue
		}
		charts = append(charts, Chart{Type: c.Type, Title: c.Title, Data: points})
	}
	return charts
}

// ParseFormulaSheet parse shape nhỏ của formula sheet. Không áp các invariant
// subTopics/diagram/chart. subject/classLevel/examType thiếu thì lấy từ request.
func ParseFormulaSheet(raw string, in FormulaSheetInput) (*FormulaSheetArtifact, error) {
	clean := CleanModelJSON(raw)
	if clean == "" {
		return nil, &ValidationError{Reason: ReasonMalformedJSON, Detail: "no JSON object in model output"}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &top); err != nil {
		return nil, &ValidationError{Reason: ReasonMalformedJSON, Detail: "model output is not a JSON object"}
	}
	if missing := missingKeys(top, requiredFormulaKeys); len(missing) > 0 {
		return nil, &ValidationError{Reason: ReasonSchemaMismatch, MissingKeys: missing}
	}

	art := &FormulaSheetArtifact{}
	if err := json.Unmarshal(top["formulas"], &art.Formulas); err != nil {
		return nil, &ValidationError{Reason: ReasonSchemaMismatch, Detail: "formulas is not a string"}
	}
	if art.Formulas == "" {
		art.Formulas = "No formulas generated"
	}

	if raw, ok := top["subject"]; ok {
		json.Unmarshal(raw, &art.Subject)
	}
	if raw, ok := top["classLevel"]; ok {
		json.Unmarshal(raw, &art.ClassLevel)
	}
	if raw, ok := top["examType"]; ok {
		json.Unmarshal(raw, &art.ExamType)
	}
	art.Subject = orDefault(art.Subject, in.Subject)
	art.ClassLevel = orDefault(art.ClassLevel, orDefault(in.ClassLevel, "Not specified"))
	art.ExamType = orDefault(art.ExamType, orDefault(in.ExamType, "General"))

	return art, nil
}

func missingKeys(top map[string]json.RawMessage, required []string) []string {
	missing := []string{}
	for _, key := range required {
		if _, ok := top[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func asInt(raw json.RawMessage) (int, bool) {
	if raw == nil {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	// Model đôi khi trả "0" dạng string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func asFloat(raw json.RawMessage) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
