package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vventirozos/GhostAgent-v2/pkg/logger"
)

// ErrStreamFailed marks transport-level failures: connection errors,
// non-success status codes, or a backend error record. Callers roll back
// the pending user turn when they see it.
var ErrStreamFailed = errors.New("stream failed")

// RequestMessage is one turn of the outbound history
type RequestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the outbound chat request body
type Request struct {
	Model    string           `json:"model"`
	Messages []RequestMessage `json:"messages"`
	Stream   bool             `json:"stream"`
}

// Event is one delivered fragment of the response
type Event struct {
	StreamID string
	Content  string
	Done     bool
	Err      error
}

// Client issues streaming chat requests and reassembles the response
// records from chunked reads.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a streaming client for the given endpoint
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Stream sends the request with streaming forced on and returns a channel
// of fragments in arrival order. A request-level failure is returned
// directly; failures mid-stream arrive as an Event with Err set. The
// channel closes after Done or an error event.
func (c *Client) Stream(ctx context.Context, req Request) (<-chan Event, error) {
	req.Stream = true

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", ErrStreamFailed, resp.StatusCode, bytes.TrimSpace(errBody))
	}

	events := make(chan Event, 64)
	go c.readStream(resp.Body, events)
	return events, nil
}

// readStream pulls chunks off the wire, feeds them through the line
// reader, and emits one event per recognized record.
func (c *Client) readStream(body io.ReadCloser, events chan<- Event) {
	defer close(events)
	defer body.Close()

	log := logger.WithComponent("stream")
	streamID := uuid.NewString()
	var lr LineReader
	buf := make([]byte, 4096)

	emit := func(line string) bool {
		kind, payload := ParseRecord(line)
		switch kind {
		case RecordContent:
			events <- Event{StreamID: streamID, Content: payload}
		case RecordDone:
			events <- Event{StreamID: streamID, Done: true}
			return false
		case RecordError:
			events <- Event{StreamID: streamID, Err: fmt.Errorf("%w: %s", ErrStreamFailed, payload)}
			return false
		case RecordSkip:
			if line != "" {
				log.Debugf("skipping unrecognized record: %.80s", line)
			}
		}
		return true
	}

	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, line := range lr.Feed(buf[:n]) {
				if !emit(line) {
					return
				}
			}
		}
		if err != nil {
			if line, ok := lr.Flush(); ok {
				if !emit(line) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				// Stream ended without the sentinel; treat as normal
				// completion
				events <- Event{StreamID: streamID, Done: true}
			} else {
				events <- Event{StreamID: streamID, Err: fmt.Errorf("%w: %v", ErrStreamFailed, err)}
			}
			return
		}
	}
}
