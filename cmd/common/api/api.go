// Package api is a thin client for the optional lecture API server. It
// plays no part in playback or streak correctness; the bundled catalogs
// are the source of truth when no server is running.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultBaseURL is where the local lecture server listens.
const DefaultBaseURL = "http://localhost:4000"

// Lecture is the server-side lecture representation. Unlike the bundled
// catalogs it carries engagement fields, since the server keeps its own
// copy of those.
type Lecture struct {
	ID         int    `json:"id"`
	Chapter    int    `json:"chapter"`
	VerseRange string `json:"verseRange"`
	Location   string `json:"location"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Filename   string `json:"filename"`
	AudioURL   string `json:"audioUrl"`
	Listened   bool   `json:"listened"`
	Bookmarked bool   `json:"bookmarked"`
	Notes      string `json:"notes"`
	Summary    string `json:"summary"`
}

// Client talks to one lecture API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL ("" uses SADHANA_API_URL
// or the default localhost address).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("SADHANA_API_URL")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// FetchLectures returns all lectures known to the server.
func (c *Client) FetchLectures() ([]Lecture, error) {
	var lectures []Lecture
	if err := c.do(http.MethodGet, "/lectures", nil, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// FetchLecture returns one lecture by id.
func (c *Client) FetchLecture(id int) (Lecture, error) {
	var lecture Lecture
	if err := c.do(http.MethodGet, fmt.Sprintf("/lectures/%d", id), nil, &lecture); err != nil {
		return Lecture{}, err
	}
	return lecture, nil
}

// UpdateResult is the server's response to a lecture update.
type UpdateResult struct {
	Message string  `json:"message"`
	Lecture Lecture `json:"lecture"`
}

// UpdateLecture patches the given fields of a lecture on the server.
func (c *Client) UpdateLecture(id int, updates map[string]any) (UpdateResult, error) {
	var result UpdateResult
	err := c.do(http.MethodPatch, fmt.Sprintf("/lectures/%d", id), updates, &result)
	return result, err
}

// SummarizeLecture asks the server to generate a summary for a lecture.
func (c *Client) SummarizeLecture(id int) (string, error) {
	var result struct {
		Summary string `json:"summary"`
	}
	if err := c.do(http.MethodPost, fmt.Sprintf("/lectures/%d/summarize", id), nil, &result); err != nil {
		return "", err
	}
	return result.Summary, nil
}
