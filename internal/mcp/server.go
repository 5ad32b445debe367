// Package mcp 提供 Model Context Protocol 服务
// 将格式化与历史检索能力以 MCP 工具的形式暴露给模型客户端
package mcp

import (
	"context"
	"net/http"
	"strings"

	"github.com/haierkeys/markdown-format-service/internal/app"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// defaultRecentItems recent_history 工具的默认返回条数
const defaultRecentItems = 10

// Server MCP 服务，持有 App Container 以访问业务服务
type Server struct {
	app       *app.App
	mcpServer *server.MCPServer
}

// NewServer 创建 MCP Server 并注册工具
func NewServer(a *app.App) *Server {
	s := &Server{app: a}

	m := server.NewMCPServer(
		app.Name,
		a.Version().Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	m.AddTool(mcp.NewTool("format_markdown",
		mcp.WithDescription("Render markdown text to HTML and save it as a history entry"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Markdown text to render"),
		),
	), s.handleFormat)

	m.AddTool(mcp.NewTool("search_history",
		mcp.WithDescription("Search saved format history by keyword"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Keyword matched against raw text and rendered HTML"),
		),
	), s.handleSearch)

	m.AddTool(mcp.NewTool("recent_history",
		mcp.WithDescription("List the most recent format history entries"),
		mcp.WithNumber("n",
			mcp.Description("Number of entries to return, default 10"),
		),
	), s.handleRecent)

	s.mcpServer = m
	return s
}

// HTTPHandler 返回可挂载到任意路由的 Streamable HTTP 处理器
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer)
}

func (s *Server) handleFormat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	text, _ := args["text"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	result, err := s.app.RenderService.Format(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResultJSON(result)
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	result, err := s.app.HistoryService.Filter(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResultJSON(result)
}

func (s *Server) handleRecent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := defaultRecentItems
	if v, ok := request.GetArguments()["n"].(float64); ok && int(v) > 0 {
		n = int(v)
	}

	items, err := s.app.HistoryService.Recent(ctx, n)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResultJSON(items)
}

// toolResultJSON 将任意结果序列化为 JSON 文本返回
func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
