package services

import "fmt"

// Lý do request bị từ chối trước khi gọi model
const (
	ReasonMissingTopic     = "missing_topic"
	ReasonMissingSubject   = "missing_subject"
	ReasonMissingInput     = "missing_input"
	ReasonInvalidReference = "invalid_reference"
)

// RequestError: request thiếu/sai dữ liệu bắt buộc. Không có side effect nào
// xảy ra trước khi lỗi này được trả về.
type RequestError struct {
	Reason  string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request (%s): %s", e.Reason, e.Message)
}

// GenerationError: gọi upstream thất bại (mạng, timeout, status lỗi).
// Không lưu gì cả.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

type ValidationReason string

const (
	ReasonMalformedJSON  ValidationReason = "malformed_json"
	ReasonSchemaMismatch ValidationReason = "schema_mismatch"
)

// ValidationError: model trả text không cứu được. Thiếu tier, MCQ hỏng hay
// chart point không phải số thì normalizer tự sửa, không ra lỗi này.
type ValidationError struct {
	Reason      ValidationReason
	MissingKeys []string
	Detail      string
}

func (e *ValidationError) Error() string {
	if len(e.MissingKeys) > 0 {
		return fmt.Sprintf("validation failed (%s): missing keys %v", e.Reason, e.MissingKeys)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Reason, e.Detail)
}

// TranscriptUnavailableError: TRANSCRIPT_MODE=strict và không có transcript thật.
type TranscriptUnavailableError struct {
	Kind GenerationKind
}

func (e *TranscriptUnavailableError) Error() string {
	return fmt.Sprintf("transcript unavailable for %s: no real transcript source configured", e.Kind)
}
