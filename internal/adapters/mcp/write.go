package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"microscope/internal/application/commands"
	"microscope/internal/application/controller"
)

// RegisterWriteTools adds all timeline editing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, sess *Session) {
	s.AddTool(insertTool(), insertHandler(sess))
	s.AddTool(editTool(), editHandler(sess))
	s.AddTool(deleteTool(), deleteHandler(sess))
	s.AddTool(selectTool(), selectHandler(sess))
}

func withCardFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("label", mcp.Description("Label of a period or event")),
		mcp.WithString("question", mcp.Description("Question of a scene")),
		mcp.WithString("setting", mcp.Description("Setting of a scene")),
		mcp.WithString("answer", mcp.Description("Answer of a scene")),
		mcp.WithString("tone", mcp.Description("light or dark"), mcp.Enum("light", "dark")),
	}
}

func cardFields(req mcp.CallToolRequest) commands.CardFields {
	return commands.CardFields{
		Label:    req.GetString("label", ""),
		Question: req.GetString("question", ""),
		Setting:  req.GetString("setting", ""),
		Answer:   req.GetString("answer", ""),
		Tone:     req.GetString("tone", ""),
	}
}

// --- insert ---

func insertTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Insert a card. Without a parent inserts a period; a period path inserts an event; an event path inserts a scene. Unset fields get the placeholder text."),
		mcp.WithString("parent",
			mcp.Description("Path of the owning period or event. Omit for a period."),
		),
		mcp.WithNumber("position",
			mcp.Description("1-based position of the new card among its siblings. Omit to append."),
		),
	}
	return mcp.NewTool("insert", append(opts, withCardFields()...)...)
}

func insertHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parent := req.GetString("parent", "")
		position := req.GetInt("position", 0)

		var msg string
		err := sess.Do(func(ctrl *controller.Controller) error {
			result, err := commands.NewInsertCommand(ctrl, parent, position, cardFields(req)).Execute(ctx)
			if err != nil {
				return err
			}
			msg = result.Message
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- edit ---

func editTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Change the fields of a card. Unset fields keep their value; events and scenes under the card are kept."),
		mcp.WithString("path",
			mcp.Description("Path of the card to edit"),
			mcp.Required(),
		),
	}
	return mcp.NewTool("edit", append(opts, withCardFields()...)...)
}

func editHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		var msg string
		err := sess.Do(func(ctrl *controller.Controller) error {
			result, err := commands.NewEditCommand(ctrl, path, cardFields(req)).Execute(ctx)
			if err != nil {
				return err
			}
			msg = result.Message
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a card together with everything under it."),
		mcp.WithString("path",
			mcp.Description("Path of the card to delete"),
			mcp.Required(),
		),
	)
}

func deleteHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		var msg string
		err := sess.Do(func(ctrl *controller.Controller) error {
			result, err := commands.NewDeleteCommand(ctrl, path).Execute(ctx)
			if err != nil {
				return err
			}
			msg = result.Message
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- select ---

func selectTool() mcp.Tool {
	return mcp.NewTool("select",
		mcp.WithDescription("Select a card as a click would. Selecting an event or scene lays out that event's scenes."),
		mcp.WithString("path",
			mcp.Description("Path of the card to select"),
			mcp.Required(),
		),
	)
}

func selectHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		var msg string
		err := sess.Do(func(ctrl *controller.Controller) error {
			card, err := commands.NewSelectCommand(ctrl, path).Execute(ctx)
			if err != nil {
				return err
			}
			msg = fmt.Sprintf("Selected %s %s: %s", card.Kind, ctrl.Timeline().PathOf(card), card.Title())
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(msg), nil
	}
}
