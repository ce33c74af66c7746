//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/sara6310472/Gitlink/internal/apperrors"
	"github.com/sara6310472/Gitlink/internal/domain"
	"github.com/sara6310472/Gitlink/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDeveloper inserts a user with a developers extension and returns
// the generated user id.
func seedDeveloper(t *testing.T, gw *Gateway, username, gitName string) int64 {
	t.Helper()
	ctx := context.Background()

	created, err := gw.Create(ctx, "users", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"role_id":  1,
	})
	require.NoError(t, err)
	require.NotZero(t, created.InsertID)

	_, err = gw.Create(ctx, "passwords", map[string]any{
		"user_id":         created.InsertID,
		"hashed_password": "$2a$10$fixture",
	})
	require.NoError(t, err)

	_, err = gw.Create(ctx, "developers", map[string]any{
		"user_id":    created.InsertID,
		"git_name":   gitName,
		"experience": 2,
	})
	require.NoError(t, err)

	return created.InsertID
}

func seedProject(t *testing.T, gw *Gateway, username, gitName, name string) int64 {
	t.Helper()

	created, err := gw.Create(context.Background(), "projects", map[string]any{
		"username": username,
		"git_name": gitName,
		"name":     name,
	})
	require.NoError(t, err)
	require.NotZero(t, created.InsertID)

	return created.InsertID
}

func TestGateway_CreateGetDelete_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	gw := NewGateway(testDB, itLog)
	ctx := context.Background()

	userID := seedDeveloper(t, gw, "sara", "sara-git")
	projectID := seedProject(t, gw, "sara", "sara-git", "gitlink")

	rows, err := gw.Get(ctx, "projects", []repository.Condition{
		{Field: "id", Value: projectID},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "gitlink", rows[0].String("name"))
	assert.Equal(t, "sara-git", rows[0].String("git_name"))

	// Repeating an identical update leaves the row in the same state.
	for i := 0; i < 2; i++ {
		_, err = gw.Update(ctx, "projects",
			map[string]any{"name": "gitlink-v2"},
			[]repository.Condition{{Field: "id", Value: projectID}})
		require.NoError(t, err)
	}
	rows, err = gw.Get(ctx, "projects", []repository.Condition{
		{Field: "id", Value: projectID},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "gitlink-v2", rows[0].String("name"))

	res, err := gw.Delete(ctx, "projects", []repository.Condition{
		{Field: "id", Value: projectID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)

	// Soft-deleted rows disappear from reads...
	rows, err = gw.Get(ctx, "projects", []repository.Condition{
		{Field: "id", Value: projectID},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// ...but survive physically with is_active = false.
	var isActive bool
	err = testDB.Get(&isActive, "SELECT is_active FROM projects WHERE id = $1", projectID)
	require.NoError(t, err)
	assert.False(t, isActive)

	_ = userID
}

func TestGateway_DuplicateEmail_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	gw := NewGateway(testDB, itLog)
	ctx := context.Background()

	_, err := gw.Create(ctx, "users", map[string]any{
		"username": "sara",
		"email":    "sara@example.com",
		"role_id":  1,
	})
	require.NoError(t, err)

	// A different username does not help: email is unique on its own.
	_, err = gw.Create(ctx, "users", map[string]any{
		"username": "sara2",
		"email":    "sara@example.com",
		"role_id":  1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCoordinator_RateProject_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	gw := NewGateway(testDB, itLog)
	coord := NewCoordinator(testDB, itLog)
	ctx := context.Background()

	seedDeveloper(t, gw, "owner", "owner-git")
	seedDeveloper(t, gw, "rater2", "rater2-git")
	projectID := seedProject(t, gw, "owner", "owner-git", "rated-project")

	require.NoError(t, coord.RateProject(ctx, "rater1", projectID, 5))

	rows, err := gw.Get(ctx, "projects", []repository.Condition{{Field: "id", Value: projectID}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 5.0, rows[0].Float64("rating"), 0.001)
	assert.Equal(t, int64(1), rows[0].Int64("rating_count"))

	// The duplicate attempt must fail and leave the aggregate untouched.
	err = coord.RateProject(ctx, "rater1", projectID, 1)
	require.Error(t, err)
	var ratedErr *apperrors.AlreadyRatedError
	require.ErrorAs(t, err, &ratedErr)

	rows, err = gw.Get(ctx, "projects", []repository.Condition{{Field: "id", Value: projectID}})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, rows[0].Float64("rating"), 0.001)
	assert.Equal(t, int64(1), rows[0].Int64("rating_count"))

	// A second distinct rater moves the aggregate to the mean.
	require.NoError(t, coord.RateProject(ctx, "rater2", projectID, 4))

	rows, err = gw.Get(ctx, "projects", []repository.Condition{{Field: "id", Value: projectID}})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, rows[0].Float64("rating"), 0.001)
	assert.Equal(t, int64(2), rows[0].Int64("rating_count"))
}

func TestCoordinator_UpdateAndNotify_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	gw := NewGateway(testDB, itLog)
	coord := NewCoordinator(testDB, itLog)
	ctx := context.Background()

	userID := seedDeveloper(t, gw, "blockme", "blockme-git")

	msg := domain.MessageData{
		UserID:  userID,
		Email:   "blockme@example.com",
		Title:   "Account Blocked",
		Content: "Your account has been blocked.",
	}

	err := coord.UpdateAndNotify(ctx, "users",
		map[string]any{"status": false},
		[]repository.Condition{{Field: "id", Value: userID}},
		msg,
	)
	require.NoError(t, err)

	users, err := gw.Get(ctx, "users", []repository.Condition{{Field: "id", Value: userID}})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.False(t, users[0].Bool("status"))

	messages, err := gw.Get(ctx, "messages", []repository.Condition{{Field: "user_id", Value: userID}})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Account Blocked", messages[0].String("title"))
}

func TestUserRepository_GetByUsername_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	gw := NewGateway(testDB, itLog)
	repo := NewUserRepository(gw, itLog)
	ctx := context.Background()

	userID := seedDeveloper(t, gw, "sara", "sara-git")

	account, err := repo.GetByUsername(ctx, "sara")
	require.NoError(t, err)
	assert.Equal(t, userID, account.ID)
	assert.Equal(t, domain.RoleDeveloper, account.Role)
	assert.Equal(t, "$2a$10$fixture", account.HashedPassword)
	require.NotNil(t, account.Developer)
	assert.Equal(t, "sara-git", account.Developer.GitName)

	_, err = repo.GetByUsername(ctx, "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApplicationFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	gw := NewGateway(testDB, itLog)
	apps := NewApplicationRepository(gw, itLog)
	ctx := context.Background()

	devID := seedDeveloper(t, gw, "applicant", "applicant-git")

	jobRes, err := gw.Create(ctx, "jobs", map[string]any{
		"username": "recruiter",
		"title":    "Go Developer",
	})
	require.NoError(t, err)
	jobID := jobRes.InsertID

	_, err = gw.Create(ctx, "job_applications", map[string]any{
		"user_id": devID,
		"job_id":  jobID,
		"remark":  "interested",
	})
	require.NoError(t, err)

	// The composite key makes a second application a conflict.
	_, err = gw.Create(ctx, "job_applications", map[string]any{
		"user_id": devID,
		"job_id":  jobID,
		"remark":  "again",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	applicants, err := apps.GetApplicationsForJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, "applicant", applicants[0].Username)
	assert.Equal(t, domain.ApplicationPending, applicants[0].IsTreated)
	assert.Equal(t, "applicant-git", applicants[0].GitName)
}
