package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/mobile-gateway/internal/cache"
	"github.com/skillbridge/mobile-gateway/internal/handler"
	"github.com/skillbridge/mobile-gateway/internal/models"
	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/internal/status"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

type snapshotGateway struct {
	snapshot models.AssignmentSnapshot
}

func (g snapshotGateway) AssignmentSnapshot(context.Context, string, string) (models.AssignmentSnapshot, error) {
	return g.snapshot, nil
}

func (g snapshotGateway) DeleteAssignment(context.Context, string, string) error {
	return platform.ErrNotFound
}

// The contract runs against the real board service so label formats and empty
// partitions are exercised end to end.
func TestAssignmentBoardContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "assignment_board.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	score := 75.0
	gateway := snapshotGateway{snapshot: models.AssignmentSnapshot{
		Assignments: []models.Assignment{
			{ID: "a1", Title: "Essay", ClassName: "English", Deadline: "2025-05-01T00:00:00.000Z"},
			{ID: "a2", Title: "Lab", ClassName: "Physics", Deadline: "2025-04-20T00:00:00.000Z", Files: []string{"lab.pdf"}},
			{ID: "a3", Title: "Worksheet", ClassName: "Maths", Deadline: "2025-04-20T00:00:00.000Z"},
			{ID: "a4", Title: "Broken", ClassName: "Maths", Deadline: "soon"},
			{ID: "a5", Title: "Quiz", ClassName: "History", Deadline: "2025-05-02T00:00:00.000Z"},
		},
		SubmissionsByID: map[string]models.Submission{
			"a2": {ID: "s2", SubmittedAt: "2025-04-19T13:45:00.000Z", Score: &score},
			"a5": {ID: "s5"},
		},
	}}

	now := time.Date(2025, time.April, 27, 0, 0, 0, 0, time.UTC)
	classifier := status.NewClassifier(status.WithClock(func() time.Time { return now }))
	snapshots := cache.NewSnapshotCache(nil, time.Minute, zerolog.Nop())
	svc := service.NewAssignmentBoardService(gateway, snapshots, classifier, nil, zerolog.Nop())

	for _, current := range []session.Session{studentSession, teacherSession} {
		app, group := newAppAs(&current)
		handler.NewAssignmentBoardHandler(svc, zerolog.Nop()).Register(group.Group("/assignments"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assignments/board", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		var payload interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		require.NoError(t, schema.Validate(payload), string(body))
	}
}

func TestAssignmentBoardContractRejectsUnknownCategory(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "assignment_board.schema.json"))
	require.NoError(t, err)
	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)

	payload := fiber.Map{
		"success": true,
		"message": "assignments retrieved",
		"data": fiber.Map{
			"role":         "student",
			"generated_at": "2025-04-27T00:00:00Z",
			"upcoming": []interface{}{fiber.Map{
				"id": "a1", "title": "Essay", "class_name": "English", "deadline": "2025-05-01T00:00:00.000Z",
				"files": []interface{}{}, "category": "late", "label": "Due at 00:00, 01/05/2025", "late": false,
			}},
			"overdue":   []interface{}{},
			"completed": []interface{}{},
			"warnings":  []interface{}{},
			"cache_hit": false,
		},
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	var decoded interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Error(t, schema.Validate(decoded))
}
