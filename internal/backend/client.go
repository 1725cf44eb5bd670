// Package backend is the HTTP client for the quiz API. The server is an
// external collaborator: it owns quiz content, grading, and accounts; this
// client only calls its fixed endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quiztaker/internal/domain"
)

// Client talks to the quiz backend. Requests share one http.Client with an
// explicit timeout so a dead server cannot wedge a submission forever, and a
// cookie jar so the login session cookie is replayed on later calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

// GetQuiz fetches quiz content by id. A 404 maps to domain.ErrQuizNotFound;
// any other non-2xx status is a load failure.
func (c *Client) GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/quiz/"+strconv.Itoa(quizID), nil)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("fetch quiz: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Quiz{}, fmt.Errorf("fetch quiz: unexpected status %s", resp.Status)
	}

	var quiz domain.Quiz
	if err := json.NewDecoder(resp.Body).Decode(&quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	return quiz, nil
}

// SubmitQuiz posts the positional answers for grading. On a non-2xx response
// the body text, when present, becomes the error message.
func (c *Client) SubmitQuiz(ctx context.Context, sub domain.Submission) (domain.GradedResult, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return domain.GradedResult{}, fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit-quiz", bytes.NewReader(body))
	if err != nil {
		return domain.GradedResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.GradedResult{}, fmt.Errorf("submit quiz: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.GradedResult{}, errors.New(errorText(resp, "failed to submit quiz"))
	}

	var result domain.GradedResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.GradedResult{}, fmt.Errorf("decode result: %w", err)
	}
	return result, nil
}

// CreateQuiz asks the admin endpoint to author a new quiz and returns its id.
func (c *Client) CreateQuiz(ctx context.Context, spec domain.QuizSpec) (int, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return 0, fmt.Errorf("encode quiz spec: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/create-quiz", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("create quiz: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, errors.New(errorText(resp, "failed to create quiz"))
	}

	var created struct {
		QuizID int `json:"quizId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("decode create response: %w", err)
	}
	return created.QuizID, nil
}

// Login posts form credentials; a 2xx response stores the session cookie in
// the jar. Any rejection maps to domain.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func errorText(resp *http.Response, fallback string) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fallback
}
