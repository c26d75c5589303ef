package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ypliao/gardenlog/internal/domain/activity"
	"github.com/ypliao/gardenlog/internal/domain/project"
	"github.com/ypliao/gardenlog/internal/domain/score"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Archive(ctx context.Context, id, profitInput string) (*project.Project, error)
	Delete(ctx context.Context, ids []string) error
	AttachPhoto(ctx context.Context, projectID string, pending project.PendingPhoto) (*project.PhotoRecord, error)
	LoadPhoto(ctx context.Context, projectID, recordID string) ([]byte, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Archived(ctx context.Context) ([]project.Project, error)
}

// ScoreService defines daily score operations needed by MCP.
type ScoreService interface {
	UpsertToday(ctx context.Context, value int) (*score.DailyScore, error)
	Today(ctx context.Context) (*score.DailyScore, error)
	List(ctx context.Context) ([]score.DailyScore, error)
	Average(ctx context.Context) (float64, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Scores   ScoreService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "gardenlog",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}

const serverInstructions = `gardenlog tracks personal garden projects.

Create projects with create_project, attach dated photos with
add_photo, and finish a project with archive_project, recording its
profit or loss. Record one self-assessment score per day with
record_daily_score. list_projects supports category filtering,
case-insensitive search, three sort orders, and grouped-by-category
output. garden_overview aggregates counts and profit totals.`
