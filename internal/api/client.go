package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/application"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/job"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/user"
)

// Client is the typed HTTP client for the job-board backend. Every method
// issues exactly one request: no retry, no backoff. Failures come back as
// *common.Error values with the code mapped from the response status.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: trimmed, httpClient: httpClient, logger: logger}
}

type RegisterRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     user.Role `json:"role"`
	Phone    string    `json:"phone"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

type JobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Salary       string `json:"salary,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Employer     string `json:"employer,omitempty"`
}

// Resume is the file part of a multipart application submission.
type Resume struct {
	Filename string
	Content  io.Reader
}

type ApplicationForm struct {
	JobID       string
	Name        string
	CoverLetter string
	Location    string
	Phone       string
	LinkedIn    string
	Resume      Resume
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.postJSON(ctx, "/register", "", req, http.StatusCreated, nil)
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.postJSON(ctx, "/login", "", creds, http.StatusOK, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, common.NewError(common.CodeInternal, "login response missing token", nil)
	}
	return &result, nil
}

func (c *Client) ListJobs(ctx context.Context) ([]job.Job, error) {
	var jobs []job.Job
	if err := c.getJSON(ctx, "/jobs", "", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*job.Job, error) {
	if strings.TrimSpace(id) == "" {
		return nil, common.NewError(common.CodeValidation, "job id is required", nil)
	}
	var j job.Job
	if err := c.getJSON(ctx, "/jobs/"+id, "", &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *Client) CreateJob(ctx context.Context, token string, req JobRequest) (*job.Job, error) {
	var created job.Job
	if err := c.postJSON(ctx, "/create-job", token, req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateJob(ctx context.Context, token, id string, req JobRequest) (*job.Job, error) {
	if strings.TrimSpace(id) == "" {
		return nil, common.NewError(common.CodeValidation, "job id is required", nil)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "encode job update", err)
	}
	var updated job.Job
	if err := c.do(ctx, http.MethodPut, "/jobs/"+id, bytes.NewReader(body), "application/json", token, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteJob(ctx context.Context, token, id string) error {
	if strings.TrimSpace(id) == "" {
		return common.NewError(common.CodeValidation, "job id is required", nil)
	}
	return c.do(ctx, http.MethodDelete, "/jobs/"+id, nil, "", token, http.StatusOK, nil)
}

// SubmitApplication encodes the form and resume file as a multipart request.
// The resume content is read exactly once; callers keep their own copy if
// they need to resubmit after a failure.
func (c *Client) SubmitApplication(ctx context.Context, token string, form ApplicationForm) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fields := map[string]string{
		"job":         form.JobID,
		"name":        form.Name,
		"coverLetter": form.CoverLetter,
		"location":    form.Location,
		"phone":       form.Phone,
	}
	if form.LinkedIn != "" {
		fields["linkedin"] = form.LinkedIn
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return common.NewError(common.CodeInternal, "encode application field "+name, err)
		}
	}
	part, err := writer.CreateFormFile("resume", form.Resume.Filename)
	if err != nil {
		return common.NewError(common.CodeInternal, "encode resume part", err)
	}
	if _, err := io.Copy(part, form.Resume.Content); err != nil {
		return common.NewError(common.CodeInternal, "read resume content", err)
	}
	if err := writer.Close(); err != nil {
		return common.NewError(common.CodeInternal, "finish multipart payload", err)
	}
	return c.do(ctx, http.MethodPost, "/applications", &buf, writer.FormDataContentType(), token, http.StatusCreated, nil)
}

func (c *Client) SaveJob(ctx context.Context, token, userID, jobID string) error {
	payload := struct {
		UserID string `json:"userId"`
		JobID  string `json:"jobId"`
	}{UserID: userID, JobID: jobID}
	body, err := json.Marshal(payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "encode save-job request", err)
	}
	return c.do(ctx, http.MethodPut, "/users/save-job", bytes.NewReader(body), "application/json", token, http.StatusOK, nil)
}

func (c *Client) MyApplications(ctx context.Context, token string) ([]application.Application, error) {
	var parsed struct {
		Applications []application.Application `json:"applications"`
	}
	if err := c.getJSON(ctx, "/my-applications", token, &parsed); err != nil {
		return nil, err
	}
	return parsed.Applications, nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload any, wantStatus int, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "encode request for "+path, err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", token, wantStatus, out)
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", token, http.StatusOK, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, token string, wantStatus int, out any) error {
	if c.baseURL == "" {
		return common.NewError(common.CodeUnavailable, "api base url is not configured", nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return common.NewError(common.CodeInternal, "create request for "+path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return common.NewError(common.CodeUnavailable, fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.NewError(common.CodeInternal, "read response for "+path, err)
	}
	if resp.StatusCode != wantStatus {
		return mapFailure(resp.StatusCode, payload)
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return common.NewError(common.CodeInternal, "decode response for "+path, err)
		}
	}
	return nil
}

func mapFailure(status int, payload []byte) error {
	message := failureMessage(payload)
	switch {
	case status == http.StatusUnauthorized:
		return common.NewError(common.CodeUnauthorized, message, nil)
	case status == http.StatusForbidden:
		return common.NewError(common.CodeForbidden, message, nil)
	case status == http.StatusNotFound:
		return common.NewError(common.CodeNotFound, message, nil)
	case status == http.StatusConflict || status == http.StatusNotAcceptable:
		return common.NewError(common.CodeConflict, message, nil)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return common.NewError(common.CodeValidation, message, nil)
	case status >= 500:
		return common.NewError(common.CodeUnavailable, message, nil)
	default:
		return common.NewError(common.CodeInternal, fmt.Sprintf("unexpected status %d: %s", status, message), nil)
	}
}

func failureMessage(payload []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	message := strings.TrimSpace(string(payload))
	if message == "" {
		return "request rejected by server"
	}
	return message
}
