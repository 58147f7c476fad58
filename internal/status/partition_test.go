package status

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

func sampleAssignments() []models.Assignment {
	return []models.Assignment{
		{ID: "a1", Title: "Essay", Deadline: "2025-04-20T00:00:00Z"},
		{ID: "a2", Title: "Lab", Deadline: "2025-05-01T00:00:00Z"},
		{ID: "a3", Title: "Quiz", Deadline: "2025-04-21T00:00:00Z"},
		{ID: "a4", Title: "Project", Deadline: "2025-05-02T00:00:00Z"},
		{ID: "a5", Title: "Reading", Deadline: "2025-04-22T00:00:00Z"},
		{ID: "a6", Title: "Poster", Deadline: "2025-05-03T00:00:00Z"},
	}
}

func sampleSubmissions() map[string]models.Submission {
	return map[string]models.Submission{
		"a3": {ID: "s3", SubmittedAt: "2025-04-25T00:00:00Z"},
		"a4": {ID: "s4", SubmittedAt: "2025-04-26T00:00:00Z"},
	}
}

func ids(assignments []models.Assignment) []string {
	out := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, assignment.ID)
	}
	return out
}

func TestPartitionStudent(t *testing.T) {
	result := Partition(RoleStudent, sampleAssignments(), sampleSubmissions(), referenceNow)

	require.Equal(t, []string{"a2", "a6"}, ids(result.Upcoming))
	require.Equal(t, []string{"a1", "a5"}, ids(result.Overdue))
	require.Equal(t, []string{"a3", "a4"}, ids(result.Completed))
	require.Empty(t, result.Errors)
	require.Equal(t, 6, result.Len())
}

func TestPartitionTeacherHasNoCompleted(t *testing.T) {
	result := Partition(RoleTeacher, sampleAssignments(), sampleSubmissions(), referenceNow)

	require.Equal(t, []string{"a2", "a4", "a6"}, ids(result.Upcoming))
	require.Equal(t, []string{"a1", "a3", "a5"}, ids(result.Overdue))
	require.Empty(t, result.Completed)
}

func TestPartitionTotalAndExclusive(t *testing.T) {
	assignments := make([]models.Assignment, 0, 40)
	submissions := map[string]models.Submission{}
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("a%02d", i)
		offset := time.Duration(i-20) * time.Hour
		assignments = append(assignments, models.Assignment{ID: id, Deadline: referenceNow.Add(offset).Format(time.RFC3339)})
		if i%3 == 0 {
			submissions[id] = models.Submission{ID: "s" + id, SubmittedAt: referenceNow.Format(time.RFC3339)}
		}
	}

	result := Partition(RoleStudent, assignments, submissions, referenceNow)
	require.Equal(t, len(assignments), result.Len())

	seen := map[string]int{}
	for _, list := range [][]models.Assignment{result.Upcoming, result.Overdue, result.Completed} {
		for _, assignment := range list {
			seen[assignment.ID]++
		}
	}
	require.Len(t, seen, len(assignments))
	for id, count := range seen {
		require.Equal(t, 1, count, id)
	}

	for id := range submissions {
		require.Contains(t, ids(result.Completed), id)
	}
}

func TestPartitionIsIdempotentAndDoesNotMutate(t *testing.T) {
	assignments := sampleAssignments()
	submissions := sampleSubmissions()
	original := sampleAssignments()

	first := Partition(RoleStudent, assignments, submissions, referenceNow)
	second := Partition(RoleStudent, assignments, submissions, referenceNow)

	require.Equal(t, first, second)
	require.Equal(t, original, assignments)
	require.Len(t, submissions, 2)

	first.Upcoming[0].Title = "changed"
	require.Equal(t, "Lab", assignments[1].Title)
}

func TestPartitionIsolatesMalformedDeadline(t *testing.T) {
	assignments := []models.Assignment{
		{ID: "a1", Deadline: "2025-04-20T00:00:00Z"},
		{ID: "bad", Deadline: "not-a-date"},
		{ID: "a2", Deadline: "2025-05-01T00:00:00Z"},
		{ID: "a3", Deadline: "2025-04-21T00:00:00Z"},
		{ID: "a4", Deadline: "2025-05-02T00:00:00Z"},
	}
	submissions := map[string]models.Submission{"a3": {ID: "s3", SubmittedAt: "2025-04-22T00:00:00Z"}}

	result := Partition(RoleStudent, assignments, submissions, referenceNow)

	require.Equal(t, 4, result.Len())
	require.Equal(t, []string{"a2", "a4"}, ids(result.Upcoming))
	require.Equal(t, []string{"a1"}, ids(result.Overdue))
	require.Equal(t, []string{"a3"}, ids(result.Completed))
	require.Len(t, result.Errors, 1)
	require.Equal(t, "bad", result.Errors[0].AssignmentID)
	require.ErrorIs(t, result.Errors[0], ErrMalformedTimestamp)
}

func TestPartitionEmptyInput(t *testing.T) {
	result := Partition(RoleStudent, nil, nil, referenceNow)
	require.NotNil(t, result.Upcoming)
	require.NotNil(t, result.Overdue)
	require.NotNil(t, result.Completed)
	require.Zero(t, result.Len())
}
