// Package mcp exposes the certificate extractor as Model Context Protocol
// tools, replacing the desktop front end of the original tool.
package mcp

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jmendezr85/pdf-extractor-excel/internal/config"
	"github.com/jmendezr85/pdf-extractor-excel/internal/excel"
	"github.com/jmendezr85/pdf-extractor-excel/internal/pdf"
	"github.com/jmendezr85/pdf-extractor-excel/internal/pipeline"
	"github.com/jmendezr85/pdf-extractor-excel/internal/rules"
	"github.com/jmendezr85/pdf-extractor-excel/internal/runner"
)

// Server represents the MCP server instance.
type Server struct {
	config    *config.Config
	validator *pdf.Validator
	writer    *excel.Writer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		validator: pdf.NewValidator(cfg.MaxFileSize),
		writer:    excel.NewWriter(),
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		"cert_extract_file",
		mcp.WithDescription("Extract certificate fields from every page of a PDF and export them as Excel rows"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("output",
			mcp.Description("Output XLSX path (defaults to '<pdf>_extract.xlsx' next to the PDF)"),
		),
		mcp.WithString("sheet",
			mcp.Description("Excel sheet name (defaults to the configured sheet)"),
		),
		mcp.WithString("preset",
			mcp.Description("Path to a preset JSON with field rules (defaults to the built-in template)"),
		),
		mcp.WithNumber("max_pages",
			mcp.Description("Maximum number of pages to process"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtractFile)

	previewTool := mcp.NewTool(
		"cert_preview_page",
		mcp.WithDescription("Run the field extraction against a single page and return the values without writing a file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number (defaults to 1)"),
		),
		mcp.WithString("preset",
			mcp.Description("Path to a preset JSON with field rules (defaults to the built-in template)"),
		),
	)
	s.mcpServer.AddTool(previewTool, s.handlePreviewPage)

	validateTool := mcp.NewTool(
		"cert_validate_file",
		mcp.WithDescription("Validate that a file is a readable PDF before extracting from it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateFile)

	templateTool := mcp.NewTool(
		"cert_default_template",
		mcp.WithDescription("List the built-in occupational certificate field template"),
	)
	s.mcpServer.AddTool(templateTool, s.handleDefaultTemplate)

	loadPresetTool := mcp.NewTool(
		"cert_load_preset",
		mcp.WithDescription("Load a field-rule preset JSON and list its rules"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the preset JSON file"),
		),
	)
	s.mcpServer.AddTool(loadPresetTool, s.handleLoadPreset)

	savePresetTool := mcp.NewTool(
		"cert_save_preset",
		mcp.WithDescription("Save a field-rule preset JSON (the built-in template when no document is given)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Destination path for the preset JSON file"),
		),
		mcp.WithString("preset_json",
			mcp.Description("Preset document to save, shaped {\"fields\":[{\"name\",\"pattern\"}]}"),
		),
	)
	s.mcpServer.AddTool(savePresetTool, s.handleSavePreset)

	serverInfoTool := mcp.NewTool(
		"cert_server_info",
		mcp.WithDescription("Get server information, available tools and usage guidance"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	output := defaultOutputPath(path)
	if out, ok := args["output"].(string); ok && out != "" {
		output = out
	}

	opts := runner.Options{
		SheetName:             s.config.SheetName,
		UseTemplateHeuristics: s.config.UseTemplateHeuristics,
		MaxPages:              s.config.MaxPages,
		IncludePDFPage:        s.config.IncludePDFPage,
	}
	if sheet, ok := args["sheet"].(string); ok && sheet != "" {
		opts.SheetName = sheet
	}
	if mp, ok := args["max_pages"].(float64); ok && int(mp) > 0 {
		opts.MaxPages = int(mp)
	}

	fieldRules, err := s.resolveRules(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result, err := s.validator.ValidateFile(pdf.ValidateFileRequest{Path: path}); err != nil || !result.Valid {
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(result.Message), nil
	}

	run := runner.New(s.writer, func(percent int, message string) {
		if s.config.IsDebug() {
			log.Printf("[%3d%%] %s", percent, message)
		}
	})

	summary, err := run.RunFile(path, output, fieldRules, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extraction completed: %s\n", path)
	responseText += fmt.Sprintf("Output: %s (sheet %q)\n", output, opts.SheetName)
	responseText += fmt.Sprintf("Pages processed: %d\n", summary.TotalPages)
	responseText += fmt.Sprintf("Rows written: %d\n", summary.Rows)
	responseText += fmt.Sprintf("Elapsed: %.1fs\n", summary.Elapsed.Seconds())
	if summary.TextlessPages > 0 {
		responseText += fmt.Sprintf("Pages without text: %d\n", summary.TextlessPages)
		if summary.TextlessPages == summary.TotalPages {
			responseText += "\n⚠️  WARNING: No page had extractable text. The PDF is probably scanned; the extractor cannot perform OCR.\n"
		}
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePreviewPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	pageNum := 1
	if p, ok := args["page"].(float64); ok && int(p) > 0 {
		pageNum = int(p)
	}

	fieldRules, err := s.resolveRules(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	processor, err := pipeline.NewProcessor(fieldRules, s.config.UseTemplateHeuristics, s.config.IncludePDFPage)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := pdf.Open(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer doc.Close()

	if pageNum > doc.PageCount() {
		return mcp.NewToolResultError(fmt.Sprintf("page %d out of range (document has %d pages)", pageNum, doc.PageCount())), nil
	}

	text := doc.PageText(pageNum)
	row := processor.ProcessPage(text, pageNum)

	responseText := fmt.Sprintf("Field preview for %s, page %d/%d:\n\n", path, pageNum, doc.PageCount())
	for _, col := range row.Columns {
		value := row.Get(col)
		if value == "" {
			value = "(empty)"
		}
		responseText += fmt.Sprintf("• %s: %s\n", col, value)
	}
	if strings.TrimSpace(text) == "" {
		responseText += "\n⚠️  WARNING: This page has no extractable text (probably scanned).\n"
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.validator.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages)", result.Path, result.Pages)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDefaultTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatRules("Built-in occupational template", rules.DefaultTemplate())), nil
}

func (s *Server) handleLoadPreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fieldRules, err := rules.LoadPreset(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRules(fmt.Sprintf("Preset %s", path), fieldRules)), nil
}

func (s *Server) handleSavePreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	fieldRules := rules.DefaultTemplate()
	if doc, ok := args["preset_json"].(string); ok && doc != "" {
		fieldRules, err = rules.ParsePreset([]byte(doc))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if err := rules.SavePreset(path, fieldRules); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Preset saved to %s (%d field rules)", path, len(fieldRules))), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("📄 Sheet name: %s\n", s.config.SheetName)
	text += fmt.Sprintf("📏 Max pages per run: %d\n", s.config.MaxPages)
	text += fmt.Sprintf("📐 Max file size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("🧩 Template heuristics: %t\n\n", s.config.UseTemplateHeuristics)

	text += "🛠️  Available Tools:\n"
	for _, tool := range toolGuide {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
	}

	text += "\n" + usageGuidance
	return mcp.NewToolResultText(text), nil
}

// resolveRules picks the rule set for a call: an explicit preset argument
// wins, then the configured preset path, then the built-in template.
func (s *Server) resolveRules(args map[string]any) ([]rules.FieldRule, error) {
	if preset, ok := args["preset"].(string); ok && preset != "" {
		return rules.LoadPreset(preset)
	}
	if s.config.PresetPath != "" {
		return rules.LoadPreset(s.config.PresetPath)
	}
	return rules.DefaultTemplate(), nil
}

func formatRules(title string, fieldRules []rules.FieldRule) string {
	text := fmt.Sprintf("%s (%d field rules):\n", title, len(fieldRules))
	for i, fr := range fieldRules {
		text += fmt.Sprintf("%d. %s", i+1, fr.Name)
		if fr.Pattern != "" {
			text += fmt.Sprintf("  [pattern: %s]", fr.Pattern)
		} else {
			text += "  [template heuristic]"
		}
		text += "\n"
	}
	return text
}

// defaultOutputPath mirrors the original tool: the workbook lands next to
// the PDF as "<name>_extract.xlsx".
func defaultOutputPath(pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(filepath.Dir(pdfPath), base+"_extract.xlsx")
}

// Run starts the MCP server in the configured mode.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode.
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting certificate extractor MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode.
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs transport only speaks stdio here; keep the flag for
	// forward compatibility and fall back.
	log.Printf("Server mode not yet implemented; falling back to stdio mode")
	return s.runStdioMode(ctx)
}
