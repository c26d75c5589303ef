package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/ypliao/gardenlog/internal/blob"
	"github.com/ypliao/gardenlog/internal/domain/project"
	"github.com/ypliao/gardenlog/internal/domain/score"
	"github.com/ypliao/gardenlog/internal/jsonstore"
)

// newTestTools wires the handlers over real JSON document and blob
// stores in a temp directory, the same shape main assembles.
func newTestTools(t *testing.T) *GardenTools {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	store, err := jsonstore.New(dir, logger)
	require.NoError(t, err)

	projects := project.NewService(
		jsonstore.NewProjectRepository(store, logger),
		blob.New(filepath.Join(dir, "photos")),
		nil,
		logger,
	)
	scores := score.NewService(jsonstore.NewScoreRepository(store, logger), nil, logger)

	return &GardenTools{Projects: projects, Scores: scores}
}

func resultText(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeResult(t *testing.T, result *sdkmcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, result.IsError, "unexpected tool error: %s", resultText(t, result))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), v))
}

func TestCreateAndListProjects(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.CreateProject(ctx, nil, CreateProjectInput{
		Name:     "  Tomato ",
		Category: "vegetables",
	})
	require.NoError(t, err)

	var created project.Project
	decodeResult(t, result, &created)
	require.Equal(t, "Tomato", created.Name)
	require.Equal(t, "vegetables", created.Category)
	require.Equal(t, "leaf", created.SymbolName)

	result, _, err = tools.CreateProject(ctx, nil, CreateProjectInput{Name: "Basil"})
	require.NoError(t, err)
	decodeResult(t, result, &created)

	result, _, err = tools.ListProjects(ctx, nil, ListProjectsInput{})
	require.NoError(t, err)

	var listed listProjectsResponse
	decodeResult(t, result, &listed)
	require.Len(t, listed.Projects, 2)
	// Most recent creation first.
	require.Equal(t, "Basil", listed.Projects[0].Name)
	require.Equal(t, []string{"all", "vegetables"}, listed.Categories)
}

func TestCreateProject_EmptyNameIsError(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.CreateProject(ctx, nil, CreateProjectInput{Name: "   "})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestListProjects_Grouped(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	for _, in := range []CreateProjectInput{
		{Name: "Tomato", Category: "vegetables"},
		{Name: "Basil", Category: "herbs"},
		{Name: "Mystery"},
	} {
		result, _, err := tools.CreateProject(ctx, nil, in)
		require.NoError(t, err)
		require.False(t, result.IsError)
	}

	result, _, err := tools.ListProjects(ctx, nil, ListProjectsInput{Grouped: true})
	require.NoError(t, err)

	var resp listProjectsResponse
	decodeResult(t, result, &resp)
	require.Empty(t, resp.Projects)
	require.Len(t, resp.Groups, 3)

	labels := make([]string, len(resp.Groups))
	for i, g := range resp.Groups {
		labels[i] = g.Category
	}
	require.Equal(t, []string{"herbs", "uncategorized", "vegetables"}, labels)
}

func TestArchiveProject(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.CreateProject(ctx, nil, CreateProjectInput{Name: "Tomato"})
	require.NoError(t, err)
	var created project.Project
	decodeResult(t, result, &created)

	result, _, err = tools.ArchiveProject(ctx, nil, ArchiveProjectInput{
		ID:     created.ID,
		Profit: "1,250.50",
	})
	require.NoError(t, err)

	var archived project.Project
	decodeResult(t, result, &archived)
	require.True(t, archived.IsArchived)
	require.NotNil(t, archived.Profit)
	require.Equal(t, 1250.50, *archived.Profit)

	// Archived projects leave the active listing.
	result, _, err = tools.ListProjects(ctx, nil, ListProjectsInput{})
	require.NoError(t, err)
	var listed listProjectsResponse
	decodeResult(t, result, &listed)
	require.Empty(t, listed.Projects)

	result, _, err = tools.ListArchived(ctx, nil, struct{}{})
	require.NoError(t, err)
	var archivedList []project.Project
	decodeResult(t, result, &archivedList)
	require.Len(t, archivedList, 1)
}

func TestArchiveProject_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.CreateProject(ctx, nil, CreateProjectInput{Name: "Tomato"})
	require.NoError(t, err)
	var created project.Project
	decodeResult(t, result, &created)

	result, _, err = tools.ArchiveProject(ctx, nil, ArchiveProjectInput{
		ID:     created.ID,
		Profit: "not a number",
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestDeleteProjects(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.CreateProject(ctx, nil, CreateProjectInput{Name: "Tomato"})
	require.NoError(t, err)
	var created project.Project
	decodeResult(t, result, &created)

	result, _, err = tools.DeleteProjects(ctx, nil, DeleteProjectsInput{IDs: []string{created.ID}})
	require.NoError(t, err)
	require.False(t, result.IsError)

	result, _, err = tools.GetProject(ctx, nil, GetProjectInput{ID: created.ID})
	require.NoError(t, err)
	require.True(t, result.IsError)

	result, _, err = tools.DeleteProjects(ctx, nil, DeleteProjectsInput{})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestAddAndGetPhoto(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.CreateProject(ctx, nil, CreateProjectInput{Name: "Tomato"})
	require.NoError(t, err)
	var created project.Project
	decodeResult(t, result, &created)

	image := []byte("jpeg bytes")
	result, _, err = tools.AddPhoto(ctx, nil, AddPhotoInput{
		ProjectID:   created.ID,
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		ShotDate:    "2026-08-30",
	})
	require.NoError(t, err)

	var rec project.PhotoRecord
	decodeResult(t, result, &rec)
	require.NotEmpty(t, rec.ID)
	require.NotEmpty(t, rec.ImageRef)

	result, _, err = tools.GetPhoto(ctx, nil, GetPhotoInput{
		ProjectID: created.ID,
		RecordID:  rec.ID,
	})
	require.NoError(t, err)

	var photo photoResponse
	decodeResult(t, result, &photo)
	require.False(t, photo.Missing)
	decoded, err := base64.StdEncoding.DecodeString(photo.ImageBase64)
	require.NoError(t, err)
	require.Equal(t, image, decoded)
}

func TestAddPhoto_InvalidBase64(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.AddPhoto(ctx, nil, AddPhotoInput{
		ProjectID:   "p1",
		ImageBase64: "not base64!!!",
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestRecordDailyScore(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	// Out-of-range input is clamped, not rejected.
	result, _, err := tools.RecordDailyScore(ctx, nil, RecordDailyScoreInput{Score: 14})
	require.NoError(t, err)

	var entry score.DailyScore
	decodeResult(t, result, &entry)
	require.Equal(t, score.MaxScore, entry.Score)

	// A second call the same day replaces the entry.
	result, _, err = tools.RecordDailyScore(ctx, nil, RecordDailyScoreInput{Score: 7.4})
	require.NoError(t, err)
	decodeResult(t, result, &entry)
	require.Equal(t, 7, entry.Score)

	result, _, err = tools.DailyScores(ctx, nil, struct{}{})
	require.NoError(t, err)

	var resp dailyScoresResponse
	decodeResult(t, result, &resp)
	require.Len(t, resp.Scores, 1)
	require.Equal(t, 7.0, resp.Average)
	require.NotNil(t, resp.Today)
	require.Equal(t, 7, resp.Today.Score)
}

func TestGetPhoto_UnknownRecord(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.CreateProject(ctx, nil, CreateProjectInput{Name: "Tomato"})
	require.NoError(t, err)
	var created project.Project
	decodeResult(t, result, &created)

	result, _, err = tools.GetPhoto(ctx, nil, GetPhotoInput{
		ProjectID: created.ID,
		RecordID:  "missing-record",
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestRecentActivity_Unconfigured(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	result, _, err := tools.RecentActivity(ctx, nil, RecentActivityInput{})
	require.NoError(t, err)
	require.True(t, result.IsError)
}
