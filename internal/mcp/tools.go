package mcp

import (
	"context"
	"encoding/base64"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ypliao/gardenlog/internal/domain/activity"
	"github.com/ypliao/gardenlog/internal/domain/project"
	"github.com/ypliao/gardenlog/internal/domain/score"
)

// GardenTools holds the services the tool handlers dispatch into.
type GardenTools struct {
	Projects ProjectService
	Scores   ScoreService
	Activity ActivityService
}

func registerTools(server *sdkmcp.Server, services Services) {
	t := &GardenTools{
		Projects: services.Projects,
		Scores:   services.Scores,
		Activity: services.Activity,
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new garden project with a name, optional category, and icon symbol",
	}, t.CreateProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List active projects with category filter, search, sorting, and optional grouping by category",
	}, t.ListProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project with its full photo record history",
	}, t.GetProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "archive_project",
		Description: "Archive a project and record its profit or loss (irreversible; negative amounts are losses)",
	}, t.ArchiveProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_projects",
		Description: "Delete projects by ID",
	}, t.DeleteProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_archived",
		Description: "List archived projects with their recorded profits",
	}, t.ListArchived)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_categories",
		Description: "List available category filters for active projects",
	}, t.ListCategories)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "garden_overview",
		Description: "Aggregate project counts and profit/loss totals across the whole garden",
	}, t.GardenOverview)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "daily_pick",
		Description: "Pick a random active project to check on today",
	}, t.DailyPick)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_photo",
		Description: "Attach a dated photo to a project (base64 image bytes plus a shot date)",
	}, t.AddPhoto)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_photo",
		Description: "Load the image bytes of a photo record; missing blobs come back as a placeholder, not an error",
	}, t.GetPhoto)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_daily_score",
		Description: "Record today's self-assessment score (1-10); a second call the same day replaces it",
	}, t.RecordDailyScore)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "daily_scores",
		Description: "List all daily scores with their running average and today's entry",
	}, t.DailyScores)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent activity log entries, newest first",
	}, t.RecentActivity)
}

// --- Input types ---

type CreateProjectInput struct {
	Name       string `json:"name" jsonschema:"Project display name (required, non-empty after trimming)"`
	Category   string `json:"category,omitempty" jsonschema:"Optional category label"`
	SymbolName string `json:"symbol_name,omitempty" jsonschema:"Icon symbol, e.g. leaf, tree, camera.macro (defaults to leaf)"`
}

type ListProjectsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Category filter; 'all' or empty passes everything, 'uncategorized' selects projects without a category"`
	Search   string `json:"search,omitempty" jsonschema:"Case-insensitive substring match against name or category"`
	Sort     string `json:"sort,omitempty" jsonschema:"Sort order: created_desc (default), name_asc, or category_asc"`
	Grouped  bool   `json:"grouped,omitempty" jsonschema:"Group the result by category"`
}

type GetProjectInput struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type ArchiveProjectInput struct {
	ID     string `json:"id" jsonschema:"Project ID"`
	Profit string `json:"profit" jsonschema:"Profit or loss as a decimal string; thousands separators allowed, negative for a loss"`
}

type DeleteProjectsInput struct {
	IDs []string `json:"ids" jsonschema:"Project IDs to delete"`
}

type AddPhotoInput struct {
	ProjectID   string `json:"project_id" jsonschema:"Project ID"`
	ImageBase64 string `json:"image_base64" jsonschema:"Image bytes, base64-encoded"`
	ShotDate    string `json:"shot_date,omitempty" jsonschema:"Shot date (RFC 3339 or YYYY-MM-DD); defaults to now"`
}

type GetPhotoInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	RecordID  string `json:"record_id" jsonschema:"Photo record ID"`
}

type RecordDailyScoreInput struct {
	Score float64 `json:"score" jsonschema:"Self-assessment value; rounded and clamped into 1-10"`
}

type RecentActivityInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Filter by project ID"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of entries"`
}

// --- Response types ---

type listProjectsResponse struct {
	Projects   []project.Project       `json:"projects,omitempty"`
	Groups     []project.CategoryGroup `json:"groups,omitempty"`
	Categories []string                `json:"categories"`
}

type photoResponse struct {
	RecordID    string `json:"record_id"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Missing     bool   `json:"missing,omitempty"`
}

type dailyScoresResponse struct {
	Scores  []score.DailyScore `json:"scores"`
	Average float64            `json:"average"`
	Today   *score.DailyScore  `json:"today,omitempty"`
}

// --- Handlers ---

func (t *GardenTools) CreateProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input CreateProjectInput) (*sdkmcp.CallToolResult, any, error) {
	proj, err := t.Projects.Create(ctx, project.CreateRequest{
		Name:       input.Name,
		Category:   input.Category,
		SymbolName: input.SymbolName,
	})
	if err != nil {
		return toolError("Failed to create project: %v", err), nil, nil
	}
	return toolJSON(proj)
}

func (t *GardenTools) ListProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, input ListProjectsInput) (*sdkmcp.CallToolResult, any, error) {
	all, err := t.Projects.List(ctx)
	if err != nil {
		return toolError("Failed to list projects: %v", err), nil, nil
	}

	filtered := project.Filter(all, project.FilterOptions{
		Category: input.Category,
		Search:   input.Search,
	})
	sorted := project.SortProjects(filtered, parseSortOption(input.Sort))

	resp := listProjectsResponse{Categories: project.AvailableCategories(all)}
	if input.Grouped {
		resp.Groups = project.Group(sorted)
	} else {
		resp.Projects = sorted
	}
	return toolJSON(resp)
}

func (t *GardenTools) GetProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetProjectInput) (*sdkmcp.CallToolResult, any, error) {
	proj, err := t.Projects.Get(ctx, input.ID)
	if err != nil {
		return toolError("Failed to get project: %v", err), nil, nil
	}
	return toolJSON(proj)
}

func (t *GardenTools) ArchiveProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input ArchiveProjectInput) (*sdkmcp.CallToolResult, any, error) {
	proj, err := t.Projects.Archive(ctx, input.ID, input.Profit)
	if err != nil {
		return toolError("Failed to archive project: %v", err), nil, nil
	}
	return toolJSON(proj)
}

func (t *GardenTools) DeleteProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, input DeleteProjectsInput) (*sdkmcp.CallToolResult, any, error) {
	if len(input.IDs) == 0 {
		return toolError("At least one project ID is required"), nil, nil
	}
	if err := t.Projects.Delete(ctx, input.IDs); err != nil {
		return toolError("Failed to delete projects: %v", err), nil, nil
	}
	return toolJSON(map[string]any{"deleted": input.IDs})
}

func (t *GardenTools) ListArchived(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
	archived, err := t.Projects.Archived(ctx)
	if err != nil {
		return toolError("Failed to list archived projects: %v", err), nil, nil
	}
	return toolJSON(archived)
}

func (t *GardenTools) ListCategories(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
	all, err := t.Projects.List(ctx)
	if err != nil {
		return toolError("Failed to list categories: %v", err), nil, nil
	}
	return toolJSON(project.AvailableCategories(all))
}

func (t *GardenTools) GardenOverview(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
	all, err := t.Projects.List(ctx)
	if err != nil {
		return toolError("Failed to compute overview: %v", err), nil, nil
	}
	return toolJSON(project.Overview(all))
}

func (t *GardenTools) DailyPick(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
	all, err := t.Projects.List(ctx)
	if err != nil {
		return toolError("Failed to pick a project: %v", err), nil, nil
	}
	pick := project.PickRandomActive(all)
	if pick == nil {
		return toolError("No active projects to pick from"), nil, nil
	}
	return toolJSON(pick)
}

func (t *GardenTools) AddPhoto(ctx context.Context, _ *sdkmcp.CallToolRequest, input AddPhotoInput) (*sdkmcp.CallToolResult, any, error) {
	data, err := base64.StdEncoding.DecodeString(input.ImageBase64)
	if err != nil {
		return toolError("Invalid base64 image data: %v", err), nil, nil
	}

	shotDate, err := parseShotDate(input.ShotDate)
	if err != nil {
		return toolError("Invalid shot date: %v", err), nil, nil
	}

	rec, err := t.Projects.AttachPhoto(ctx, input.ProjectID, project.PendingPhoto{
		Image:    data,
		ShotDate: shotDate,
	})
	if err != nil {
		return toolError("Failed to add photo: %v", err), nil, nil
	}
	return toolJSON(rec)
}

func (t *GardenTools) GetPhoto(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetPhotoInput) (*sdkmcp.CallToolResult, any, error) {
	data, err := t.Projects.LoadPhoto(ctx, input.ProjectID, input.RecordID)
	if err != nil {
		if errorsIsPhotoMissing(err) {
			return toolJSON(photoResponse{RecordID: input.RecordID, Missing: true})
		}
		return toolError("Failed to load photo: %v", err), nil, nil
	}
	return toolJSON(photoResponse{
		RecordID:    input.RecordID,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
	})
}

func (t *GardenTools) RecordDailyScore(ctx context.Context, _ *sdkmcp.CallToolRequest, input RecordDailyScoreInput) (*sdkmcp.CallToolResult, any, error) {
	entry, err := t.Scores.UpsertToday(ctx, score.ClampScore(input.Score))
	if err != nil {
		return toolError("Failed to record score: %v", err), nil, nil
	}
	return toolJSON(entry)
}

func (t *GardenTools) DailyScores(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
	scores, err := t.Scores.List(ctx)
	if err != nil {
		return toolError("Failed to list scores: %v", err), nil, nil
	}
	avg, err := t.Scores.Average(ctx)
	if err != nil {
		return toolError("Failed to compute average: %v", err), nil, nil
	}

	resp := dailyScoresResponse{Scores: scores, Average: avg}
	if today, err := t.Scores.Today(ctx); err == nil {
		resp.Today = today
	}
	return toolJSON(resp)
}

func (t *GardenTools) RecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, input RecentActivityInput) (*sdkmcp.CallToolResult, any, error) {
	if t.Activity == nil {
		return toolError("Activity log is not configured"), nil, nil
	}
	entries, err := t.Activity.Recent(ctx, activity.ListOptions{
		ProjectID: input.ProjectID,
		Limit:     input.Limit,
	})
	if err != nil {
		return toolError("Failed to list activity: %v", err), nil, nil
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return toolJSON(entries)
}

func parseSortOption(s string) project.SortOption {
	switch s {
	case string(project.SortByNameAsc):
		return project.SortByNameAsc
	case string(project.SortByCategoryAsc):
		return project.SortByCategoryAsc
	default:
		return project.SortByCreatedDesc
	}
}

func parseShotDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
