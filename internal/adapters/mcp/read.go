package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"microscope/internal/application/commands"
	"microscope/internal/application/controller"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// RegisterReadTools adds all read-only timeline tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, sess *Session) {
	s.AddTool(outlineTool(), outlineHandler(sess))
	s.AddTool(showTool(), showHandler(sess))
	s.AddTool(searchTool(), searchHandler(sess))
	s.AddTool(layoutTool(), layoutHandler(sess))
}

// --- outline ---

func outlineTool() mcp.Tool {
	return mcp.NewTool("outline",
		mcp.WithDescription("Show the timeline as an indented outline. Each line starts with the card path (period.event.scene) used by the other tools."),
		mcp.WithBoolean("scenes",
			mcp.Description("Include scenes (default true)"),
		),
	)
}

func outlineHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeScenes := req.GetBool("scenes", true)

		var out string
		err := sess.Do(func(ctrl *controller.Controller) error {
			entries, err := commands.NewOutlineQuery(ctrl.Timeline(), includeScenes).Execute(ctx)
			if err != nil {
				return err
			}
			out = commands.FormatOutline(entries)
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(out), nil
	}
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show every field of one card."),
		mcp.WithString("path",
			mcp.Description("Card path (e.g. 2, 2.1, 2.1.3)"),
			mcp.Required(),
		),
	)
}

func showHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}
		p, err := domain.ParsePath(path)
		if err != nil {
			return toolError(err)
		}

		var out string
		err = sess.Do(func(ctrl *controller.Controller) error {
			card, err := ctrl.Timeline().Find(p)
			if err != nil {
				return err
			}
			out = formatCard(p, card)
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(out), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search card text. Returns matching cards with their paths, best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query (at least 2 characters)"),
			mcp.Required(),
		),
	)
}

func searchHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		if sess.index == nil {
			return toolError(fmt.Errorf("search index is not available"))
		}

		var results []commands.SearchResult
		err := sess.Do(func(*controller.Controller) error {
			var err error
			results, err = commands.NewSearchCommand(sess.index, query).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", r.Path, r.Kind, r.Title)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- layout ---

func layoutTool() mcp.Tool {
	return mcp.NewTool("layout",
		mcp.WithDescription("List the placed elements of a canvas with their positions in terminal cells."),
		mcp.WithString("canvas",
			mcp.Description("Canvas to list"),
			mcp.Enum("periods", "events", "scenes"),
			mcp.Required(),
		),
	)
}

func layoutHandler(sess *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := parseCanvas(req.GetString("canvas", ""))
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		_ = sess.Do(func(ctrl *controller.Controller) error {
			r := sess.surface.Region(id)
			fmt.Fprintf(&sb, "%s canvas %dx%d\n", id, r.Width, r.Height)
			for _, el := range sess.surface.Elements(id) {
				title := ""
				if el.Card != nil {
					title = el.Card.Title()
				}
				b := el.Band
				fmt.Fprintf(&sb, "  #%d x=%d y=%d w=%d h=%d %s\n", el.Handle, b.X, b.Y, b.Width, b.Height, title)
			}
			return nil
		})
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func parseCanvas(s string) (ports.CanvasID, error) {
	for _, id := range []ports.CanvasID{ports.CanvasPeriods, ports.CanvasEvents, ports.CanvasScenes} {
		if id.String() == s {
			return id, nil
		}
	}
	return 0, fmt.Errorf("invalid canvas: %q (expected periods, events or scenes)", s)
}

func formatCard(p domain.Path, c *domain.Card) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", c.Kind, p)
	if c.Kind == domain.KindScene {
		fmt.Fprintf(&sb, "question: %s\nsetting: %s\nanswer: %s\n", c.Question, c.Setting, c.Answer)
	} else {
		fmt.Fprintf(&sb, "label: %s\n", c.Label)
	}
	fmt.Fprintf(&sb, "tone: %s\n", c.Tone)
	if c.Kind == domain.KindPeriod {
		fmt.Fprintf(&sb, "events: %d\n", c.Children.ContentCount())
	}
	if c.Kind == domain.KindEvent {
		fmt.Fprintf(&sb, "scenes: %d\n", c.SceneCount())
	}
	return sb.String()
}
