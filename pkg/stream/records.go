package stream

import (
	"encoding/json"
	"strings"
)

// RecordType classifies one protocol record
type RecordType int

const (
	// RecordSkip marks lines that carry no payload: keep-alives, comments,
	// unparseable records. The stream continues.
	RecordSkip RecordType = iota
	// RecordContent carries an incremental or complete content fragment
	RecordContent
	// RecordDone is the end-of-stream sentinel
	RecordDone
	// RecordError carries a backend-reported error payload
	RecordError
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// payload covers the recognized record shapes, priority ordered:
// streaming delta, complete message fallback, error.
type payload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error json.RawMessage `json:"error"`
}

// ParseRecord classifies a single completed line. Lines without the record
// prefix and prefixed lines that fail to parse both come back RecordSkip;
// nothing here aborts a stream.
func ParseRecord(line string) (RecordType, string) {
	if !strings.HasPrefix(line, dataPrefix) {
		return RecordSkip, ""
	}
	body := strings.TrimSpace(line[len(dataPrefix):])
	if body == doneSentinel {
		return RecordDone, ""
	}

	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return RecordSkip, ""
	}

	if len(p.Choices) > 0 {
		return RecordContent, p.Choices[0].Delta.Content
	}
	if p.Message.Content != "" {
		return RecordContent, p.Message.Content
	}
	if len(p.Error) > 0 {
		return RecordError, errorMessage(p.Error)
	}
	return RecordSkip, ""
}

// errorMessage digs a human-readable message out of an error payload,
// which arrives either as a bare string or as {"message": ...}.
func errorMessage(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}
