package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	"lodestar/internal/infrastructure/wiring"
	"lodestar/pkg/application"
	"lodestar/pkg/domain/insights"
	"lodestar/pkg/domain/tracker"
)

// Server exposes the scoring and insights engine to MCP clients. All tools
// are deterministic reads over the workspace snapshot except
// advance_task_stage, which is the one mutating tool.
type Server struct {
	mcpServer   *mcp.Server
	scoreSvc    *application.ScoreService
	insightsSvc *application.InsightsService
	workflowSvc *application.WorkflowService
	activitySvc *application.ActivityService
	root        string
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients.
// Internal details are omitted; only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

func NewServer(root string) (*Server, error) {
	services, err := wiring.BuildAppServices(root)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}
	if services == nil {
		return nil, fmt.Errorf("services initialization returned nil")
	}

	info := mcp.ServerInfo{
		Name:    "lodestar",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Lodestar MCP Server"),
			mcp.WithDescription("Lodestar exposes deterministic priority scores and productivity insights to MCP clients."),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use tools to rank projects, explain priority scores, read productivity insights, and move tasks through workflow stages. Scores and insights are computed, never generated."),
		),
		scoreSvc:    services.Score,
		insightsSvc: services.Insights,
		workflowSvc: services.Workflow,
		activitySvc: services.Activity,
		root:        root,
	}

	s.registerTools()
	s.registerSchemaResource()
	return s, nil
}

func (s *Server) registerTools() {
	// Tool: score_project
	s.mcpServer.Tool("score_project").
		Description("Score a single project and return the factor-by-factor breakdown behind the number").
		Handler(s.handleScoreProject)

	// Tool: rank_projects
	s.mcpServer.Tool("rank_projects").
		Description("Score every project and return the deterministic ranking (read-only unless persist is set)").
		Handler(s.handleRankProjects)

	// Tool: get_user_insights
	s.mcpServer.Tool("get_user_insights").
		Description("Get aggregate productivity insights: estimate accuracy, most productive day, most efficient project type").
		Handler(s.handleGetUserInsights)

	// Tool: get_time_estimate_accuracy
	s.mcpServer.Tool("get_time_estimate_accuracy").
		Description("Get per-project-type time estimate accuracy groups").
		Handler(s.handleGetTimeEstimateAccuracy)

	// Tool: get_project_type_efficiency
	s.mcpServer.Tool("get_project_type_efficiency").
		Description("Get per-project-type efficiency (estimated vs actual hours)").
		Handler(s.handleGetProjectTypeEfficiency)

	// Tool: get_productivity_by_day
	s.mcpServer.Tool("get_productivity_by_day").
		Description("Get completed-task productivity grouped by weekday, Monday first").
		Handler(s.handleGetProductivityByDay)

	// Tool: get_ai_user_context
	s.mcpServer.Tool("get_ai_user_context").
		Description("Get the working-style context block assembled for AI collaborators, structured or rendered as text").
		Handler(s.handleGetAIUserContext)

	// Tool: advance_task_stage
	s.mcpServer.Tool("advance_task_stage").
		Description("Move a task to the next workflow stage, or to an explicit adjacent stage via 'to'").
		Handler(s.handleAdvanceTaskStage)
}

// parseAsOf accepts an empty string (now), a date (2006-01-02), or RFC3339.
func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// FlexBool accepts both boolean and string ("true"/"false") JSON values.
// MCP clients sometimes send string values for boolean fields.
type FlexBool bool

func (fb *FlexBool) UnmarshalJSON(data []byte) error {
	// Try bool first
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*fb = FlexBool(b)
		return nil
	}
	// Try string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*fb = FlexBool(s == "true" || s == "1" || s == "yes")
		return nil
	}
	return fmt.Errorf("expected boolean or string, got %s", string(data))
}

// FlexInt accepts both integer and string JSON values.
type FlexInt int

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*fi = FlexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
			*fi = FlexInt(n)
			return nil
		}
	}
	return fmt.Errorf("expected integer or string, got %s", string(data))
}

type ScoreProjectArgs struct {
	ProjectID string `json:"project_id" jsonschema:"description=The ID of the project to score"`
	AsOf      string `json:"as_of,omitempty" jsonschema:"description=Reference date for timeline scoring (YYYY-MM-DD or RFC3339; defaults to now)"`
}

func (s *Server) handleScoreProject(ctx context.Context, args ScoreProjectArgs) (any, error) {
	if args.ProjectID == "" {
		return nil, mcpErr("A project_id is required.")
	}
	asOf, err := parseAsOf(args.AsOf)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Invalid as_of value %q. Use YYYY-MM-DD or RFC3339.", args.AsOf))
	}

	result, err := s.scoreSvc.ScoreOne(ctx, args.ProjectID, asOf)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Failed to score project '%s'. Run rank_projects to list known projects.", args.ProjectID))
	}
	return result, nil
}

type RankProjectsArgs struct {
	AsOf    string   `json:"as_of,omitempty" jsonschema:"description=Reference date for timeline scoring (YYYY-MM-DD or RFC3339; defaults to now)"`
	Limit   FlexInt  `json:"limit,omitempty" jsonschema:"description=Limit the number of ranked projects returned"`
	Persist FlexBool `json:"persist,omitempty" jsonschema:"description=Write the computed scores back to the snapshot and record the run"`
}

func (s *Server) handleRankProjects(ctx context.Context, args RankProjectsArgs) (any, error) {
	asOf, err := parseAsOf(args.AsOf)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Invalid as_of value %q. Use YYYY-MM-DD or RFC3339.", args.AsOf))
	}

	ctx = application.WithActor(ctx, "mcp")
	var ranked []application.RankedProject
	if bool(args.Persist) {
		ranked, err = s.scoreSvc.ScoreAll(ctx, asOf)
	} else {
		ranked, err = s.scoreSvc.Rank(ctx, asOf)
	}
	if err != nil {
		return nil, mcpErr("Failed to rank projects. Ensure the workspace is initialized with 'lodestar init'.")
	}
	if len(ranked) == 0 {
		return "No projects found. Add projects to the workspace first.", nil
	}
	if int(args.Limit) > 0 && len(ranked) > int(args.Limit) {
		ranked = ranked[:int(args.Limit)]
	}
	return ranked, nil
}

func (s *Server) handleGetUserInsights(ctx context.Context, args struct{}) (any, error) {
	ctx = application.WithActor(ctx, "mcp")
	result, ok, err := s.insightsSvc.UserInsights(ctx)
	if err != nil {
		return nil, mcpErr("Failed to compute insights. Ensure the workspace is initialized.")
	}
	if !ok {
		return fmt.Sprintf("Not enough data for insights. At least %d completed tasks with time tracking are required.", insights.MinInsightTasks), nil
	}
	return result, nil
}

func (s *Server) handleGetTimeEstimateAccuracy(ctx context.Context, args struct{}) (any, error) {
	ctx = application.WithActor(ctx, "mcp")
	groups, ok, err := s.insightsSvc.TimeEstimateAccuracy(ctx)
	if err != nil {
		return nil, mcpErr("Failed to compute estimate accuracy. Ensure the workspace is initialized.")
	}
	if !ok {
		return fmt.Sprintf("Not enough data for estimate accuracy. At least %d time-tracked tasks are required.", insights.MinAccuracyTasks), nil
	}
	return groups, nil
}

func (s *Server) handleGetProjectTypeEfficiency(ctx context.Context, args struct{}) (any, error) {
	ctx = application.WithActor(ctx, "mcp")
	groups, ok, err := s.insightsSvc.TypeEfficiency(ctx)
	if err != nil {
		return nil, mcpErr("Failed to compute type efficiency. Ensure the workspace is initialized.")
	}
	if !ok {
		return fmt.Sprintf("Not enough data for type efficiency. At least %d time-tracked tasks are required.", insights.MinEfficiencyTasks), nil
	}
	return groups, nil
}

func (s *Server) handleGetProductivityByDay(ctx context.Context, args struct{}) (any, error) {
	ctx = application.WithActor(ctx, "mcp")
	days, ok, err := s.insightsSvc.ProductivityByDay(ctx)
	if err != nil {
		return nil, mcpErr("Failed to compute productivity by day. Ensure the workspace is initialized.")
	}
	if !ok {
		return fmt.Sprintf("Not enough data for productivity by day. At least %d completed tasks are required.", insights.MinProductivityTasks), nil
	}
	return days, nil
}

type AIUserContextArgs struct {
	AsOf   string   `json:"as_of,omitempty" jsonschema:"description=Reference date for deadline distance (YYYY-MM-DD or RFC3339; defaults to now)"`
	Render FlexBool `json:"render,omitempty" jsonschema:"description=Return the rendered text block instead of the structured form"`
}

func (s *Server) handleGetAIUserContext(ctx context.Context, args AIUserContextArgs) (any, error) {
	asOf, err := parseAsOf(args.AsOf)
	if err != nil {
		return nil, mcpErr(fmt.Sprintf("Invalid as_of value %q. Use YYYY-MM-DD or RFC3339.", args.AsOf))
	}

	ctx = application.WithActor(ctx, "mcp")
	result, err := s.insightsSvc.AIContext(ctx, asOf)
	if err != nil {
		return nil, mcpErr("Failed to build user context. Ensure the workspace is initialized.")
	}
	if bool(args.Render) {
		return result.Render(), nil
	}
	return result, nil
}

type AdvanceTaskStageArgs struct {
	TaskID string `json:"task_id" jsonschema:"description=The ID of the task to move"`
	To     string `json:"to,omitempty" jsonschema:"description=Target stage name; omit to advance to the next stage"`
	Actor  string `json:"actor,omitempty" jsonschema:"description=The actor performing the move (defaults to ai-agent)"`
}

func (s *Server) handleAdvanceTaskStage(ctx context.Context, args AdvanceTaskStageArgs) (string, error) {
	if args.TaskID == "" {
		return "", mcpErr("A task_id is required.")
	}
	actor := args.Actor
	if actor == "" {
		actor = "ai-agent"
	}
	ctx = application.WithActor(ctx, actor)

	var stage string
	var err error
	if args.To == "" {
		stage, err = s.workflowSvc.AdvanceTask(ctx, args.TaskID)
	} else {
		stage, err = s.workflowSvc.TransitionTask(ctx, args.TaskID, args.To)
	}
	if err != nil {
		if errors.Is(err, tracker.ErrTaskNotFound) {
			return "", mcpErr(fmt.Sprintf("Task '%s' not found in the workspace.", args.TaskID))
		}
		return "", mcpErr(fmt.Sprintf("Failed to move task '%s': %s", args.TaskID, err))
	}
	return fmt.Sprintf("Task %s moved to stage %s", args.TaskID, stage), nil
}

func (s *Server) Start() error {
	return s.StartStdio()
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) StartWebSocket(addr string) error {
	return s.ServeWebSocket(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}
