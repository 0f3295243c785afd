package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"statline/internal/resolve"
	"statline/internal/store"
)

type AskInput struct {
	Question       string `json:"question" jsonschema:"the user's question or clarification reply"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"continue an existing conversation"`
}

type AskOutput struct {
	ConversationID string                `json:"conversation_id"`
	Reply          string                `json:"reply"`
	AwaitingReply  bool                  `json:"awaiting_reply"`
	Clarifications []ClarificationOutput `json:"clarifications,omitempty"`
}

type ClarificationOutput struct {
	Role       string            `json:"role"`
	Question   string            `json:"question"`
	Candidates []store.Candidate `json:"candidates"`
}

type SearchPlayersInput struct {
	Name string `json:"name" jsonschema:"full or partial player name"`
}

type SearchPlayersOutput struct {
	Candidates []store.Candidate `json:"candidates"`
}

type GetEntityInput struct {
	Name string `json:"name" jsonschema:"exact entity name"`
	Role string `json:"role,omitempty" jsonschema:"player or team; defaults to player"`
}

type GetEntityOutput struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Role    string   `json:"role"`
	Team    string   `json:"team,omitempty"`
	Seasons []string `json:"seasons"`
}

type SeasonTotalsInput struct {
	Name    string   `json:"name" jsonschema:"exact entity name"`
	Role    string   `json:"role,omitempty" jsonschema:"player or team; defaults to player"`
	Metric  string   `json:"metric" jsonschema:"goals, behinds, disposals, kicks, handballs, marks, or tackles"`
	Seasons []string `json:"seasons,omitempty" jsonschema:"restrict to specific seasons"`
}

type SeasonTotalOutput struct {
	Season string `json:"season"`
	Value  int    `json:"value"`
	Games  int    `json:"games"`
}

type SeasonTotalsOutput struct {
	Name   string              `json:"name"`
	Metric string              `json:"metric"`
	Totals []SeasonTotalOutput `json:"totals"`
}

type ListConversationsInput struct{}

type ConversationOutput struct {
	ID        string `json:"id"`
	TurnCount int    `json:"turn_count"`
	UpdatedAt string `json:"updated_at"`
}

type ListConversationsOutput struct {
	Conversations []ConversationOutput `json:"conversations"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "ask",
		Description: "Ask a stats question; resolves entity mentions and asks clarification questions for ambiguous names",
	}, s.handleAsk)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_players",
		Description: "Find players by full or partial name",
	}, s.handleSearchPlayers)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity",
		Description: "Retrieve a player or team and its recorded seasons",
	}, s.handleGetEntity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "season_totals",
		Description: "Aggregate a metric per season for a player or team",
	}, s.handleSeasonTotals)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_conversations",
		Description: "List stored conversations",
	}, s.handleListConversations)
}

func parseRole(role string) (store.EntityRole, error) {
	switch role {
	case "", "player":
		return store.RolePlayer, nil
	case "team":
		return store.RoleTeam, nil
	default:
		return "", fmt.Errorf("unknown role %q, expected player or team", role)
	}
}

func (s *Server) handleAsk(ctx context.Context, req *sdk.CallToolRequest, input AskInput) (*sdk.CallToolResult, AskOutput, error) {
	if input.Question == "" {
		return nil, AskOutput{}, fmt.Errorf("question is required")
	}
	exchange, err := s.session.Ask(ctx, input.ConversationID, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		ConversationID: exchange.ConversationID,
		Reply:          exchange.Reply,
		AwaitingReply:  exchange.AwaitingReply,
	}
	for _, res := range exchange.Results {
		if res.Outcome != resolve.OutcomeNeedsClarification {
			continue
		}
		output.Clarifications = append(output.Clarifications, ClarificationOutput{
			Role:       string(res.Clarification.EntityRole),
			Question:   res.Clarification.Question,
			Candidates: res.Clarification.Candidates,
		})
	}
	return nil, output, nil
}

func (s *Server) handleSearchPlayers(ctx context.Context, req *sdk.CallToolRequest, input SearchPlayersInput) (*sdk.CallToolResult, SearchPlayersOutput, error) {
	if input.Name == "" {
		return nil, SearchPlayersOutput{}, fmt.Errorf("name is required")
	}
	candidates, err := s.db.LookupCandidates(ctx, store.RolePlayer, input.Name)
	if err != nil {
		return nil, SearchPlayersOutput{}, err
	}
	return nil, SearchPlayersOutput{Candidates: candidates}, nil
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input GetEntityInput) (*sdk.CallToolResult, GetEntityOutput, error) {
	if input.Name == "" {
		return nil, GetEntityOutput{}, fmt.Errorf("name is required")
	}
	role, err := parseRole(input.Role)
	if err != nil {
		return nil, GetEntityOutput{}, err
	}
	entity, err := s.db.GetEntity(ctx, role, input.Name)
	if err != nil {
		return nil, GetEntityOutput{}, err
	}
	if entity == nil {
		return nil, GetEntityOutput{}, fmt.Errorf("%s %q not found", role, input.Name)
	}
	return nil, GetEntityOutput{
		ID:      entity.ID,
		Name:    entity.Name,
		Role:    string(entity.Role),
		Team:    entity.Team,
		Seasons: entity.Periods,
	}, nil
}

func (s *Server) handleSeasonTotals(ctx context.Context, req *sdk.CallToolRequest, input SeasonTotalsInput) (*sdk.CallToolResult, SeasonTotalsOutput, error) {
	if input.Name == "" {
		return nil, SeasonTotalsOutput{}, fmt.Errorf("name is required")
	}
	if input.Metric == "" {
		return nil, SeasonTotalsOutput{}, fmt.Errorf("metric is required")
	}
	metric, ok := s.aliases.ResolveMetric(input.Metric)
	if !ok {
		return nil, SeasonTotalsOutput{}, fmt.Errorf("unknown metric %q, expected one of %s",
			input.Metric, strings.Join(s.aliases.CanonicalMetrics(), ", "))
	}
	role, err := parseRole(input.Role)
	if err != nil {
		return nil, SeasonTotalsOutput{}, err
	}
	entity, err := s.db.GetEntity(ctx, role, input.Name)
	if err != nil {
		return nil, SeasonTotalsOutput{}, err
	}
	if entity == nil {
		return nil, SeasonTotalsOutput{}, fmt.Errorf("%s %q not found", role, input.Name)
	}

	totals, err := s.db.SeasonTotals(ctx, role, entity.ID, input.Seasons, metric)
	if err != nil {
		return nil, SeasonTotalsOutput{}, err
	}

	output := SeasonTotalsOutput{Name: entity.Name, Metric: metric}
	for _, total := range totals {
		output.Totals = append(output.Totals, SeasonTotalOutput{
			Season: total.Period,
			Value:  total.Value,
			Games:  total.Games,
		})
	}
	return nil, output, nil
}

func (s *Server) handleListConversations(ctx context.Context, req *sdk.CallToolRequest, input ListConversationsInput) (*sdk.CallToolResult, ListConversationsOutput, error) {
	summaries, err := s.db.ListConversations(ctx)
	if err != nil {
		return nil, ListConversationsOutput{}, err
	}

	output := ListConversationsOutput{}
	for _, summary := range summaries {
		output.Conversations = append(output.Conversations, ConversationOutput{
			ID:        summary.ID,
			TurnCount: summary.TurnCount,
			UpdatedAt: summary.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return nil, output, nil
}
