package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    RecordType
		payload string
	}{
		{
			"delta content",
			`data: {"choices":[{"delta":{"content":"Hel"}}]}`,
			RecordContent, "Hel",
		},
		{
			"empty delta is still content",
			`data: {"choices":[{"delta":{"content":""}}]}`,
			RecordContent, "",
		},
		{
			"complete message fallback",
			`data: {"message":{"content":"full reply"}}`,
			RecordContent, "full reply",
		},
		{
			"delta takes priority over message",
			`data: {"choices":[{"delta":{"content":"a"}}],"message":{"content":"b"}}`,
			RecordContent, "a",
		},
		{
			"error as string",
			`data: {"error":"model not loaded"}`,
			RecordError, "model not loaded",
		},
		{
			"error as object",
			`data: {"error":{"message":"rate limited"}}`,
			RecordError, "rate limited",
		},
		{
			"done sentinel",
			`data: [DONE]`,
			RecordDone, "",
		},
		{
			"unprefixed line",
			`event: ping`,
			RecordSkip, "",
		},
		{
			"empty line",
			``,
			RecordSkip, "",
		},
		{
			"malformed json is skipped, not fatal",
			`data: {"choices": [`,
			RecordSkip, "",
		},
		{
			"recognized prefix with unknown shape",
			`data: {"usage":{"total_tokens":9}}`,
			RecordSkip, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, payload := ParseRecord(tt.line)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.payload, payload)
		})
	}
}
