package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// LoginResult is the platform's answer to a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// GradeInput is the body of a grading call.
type GradeInput struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
}

type sendMessageInput struct {
	Content string `json:"content"`
}

// Login exchanges credentials for a platform bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", "login", body, &result); err != nil {
		return LoginResult{}, err
	}
	if result.Token == "" {
		return LoginResult{}, fmt.Errorf("platform login returned no token")
	}
	return result, nil
}

// AssignmentSnapshot fetches the assignments visible to the caller together with the
// caller's submissions keyed by assignment id.
func (c *Client) AssignmentSnapshot(ctx context.Context, token, role string) (models.AssignmentSnapshot, error) {
	var snapshot models.AssignmentSnapshot
	path := "/assignments?role=" + url.QueryEscape(role)
	if err := c.do(ctx, http.MethodGet, path, token, "assignments", nil, &snapshot); err != nil {
		return models.AssignmentSnapshot{}, err
	}
	if snapshot.Assignments == nil {
		snapshot.Assignments = []models.Assignment{}
	}
	if snapshot.SubmissionsByID == nil {
		snapshot.SubmissionsByID = map[string]models.Submission{}
	}
	return snapshot, nil
}

// DeleteAssignment removes an assignment.
func (c *Client) DeleteAssignment(ctx context.Context, token, assignmentID string) error {
	return c.do(ctx, http.MethodDelete, "/assignments/"+url.PathEscape(assignmentID), token, "assignment_delete", nil, nil)
}

// GradeSubmission stores a score and feedback on a submission.
func (c *Client) GradeSubmission(ctx context.Context, token, submissionID string, input GradeInput) (models.Submission, error) {
	var submission models.Submission
	path := "/submissions/" + url.PathEscape(submissionID) + "/grade"
	if err := c.do(ctx, http.MethodPatch, path, token, "submission_grade", input, &submission); err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

// Teams lists the classes the caller teaches or attends.
func (c *Client) Teams(ctx context.Context, token string) ([]models.Team, error) {
	teams := []models.Team{}
	if err := c.do(ctx, http.MethodGet, "/teams", token, "teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Attendance lists attendance marks for a class.
func (c *Client) Attendance(ctx context.Context, token, teamID string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	path := "/teams/" + url.PathEscape(teamID) + "/attendance"
	if err := c.do(ctx, http.MethodGet, path, token, "attendance", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Feed fetches one page of the activity feed.
func (c *Client) Feed(ctx context.Context, token string, page, pageSize int) (models.ActivityPage, error) {
	var result models.ActivityPage
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	if err := c.do(ctx, http.MethodGet, "/feed?"+query.Encode(), token, "feed", nil, &result); err != nil {
		return models.ActivityPage{}, err
	}
	if result.Items == nil {
		result.Items = []models.Activity{}
	}
	return result, nil
}

// Messages lists the latest chat messages of a class, oldest first.
func (c *Client) Messages(ctx context.Context, token, teamID string, limit int) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	path := "/teams/" + url.PathEscape(teamID) + "/messages?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, token, "messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a chat message to a class.
func (c *Client) SendMessage(ctx context.Context, token, teamID, content string) (models.ChatMessage, error) {
	var message models.ChatMessage
	path := "/teams/" + url.PathEscape(teamID) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, token, "message_send", sendMessageInput{Content: content}, &message); err != nil {
		return models.ChatMessage{}, err
	}
	return message, nil
}
