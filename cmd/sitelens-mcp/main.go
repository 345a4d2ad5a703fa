package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// auditRequest mirrors the Sitelens API request model.
type auditRequest struct {
	URL string `json:"url"`
}

// errorResponse mirrors the Sitelens API error body.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// modulePaths maps the module tool argument to its API path.
var modulePaths = map[string]string{
	"basic-info":    "/api/v1/basic-info",
	"seo-elements":  "/api/v1/seo-elements",
	"tech-seo":      "/api/v1/tech-seo",
	"accessibility": "/api/v1/accessibility",
}

func main() {
	apiURL := os.Getenv("SITELENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("SITELENS_API_KEY")

	s := server.NewMCPServer(
		"sitelens",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	auditPageTool := mcp.NewTool("audit_page",
		mcp.WithDescription("Audit one dimension of a web page (basic info, on-page SEO, technical SEO, or accessibility). Renders the page in a headless browser and returns the module's verdicts, score and remediation suggestions as JSON."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The scheme-qualified URL of the page to audit"),
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Which audit dimension to run"),
			mcp.Enum("basic-info", "seo-elements", "tech-seo", "accessibility"),
		),
	)
	s.AddTool(auditPageTool, handleAuditPage(apiURL, apiKey))

	auditReportTool := mcp.NewTool("audit_report",
		mcp.WithDescription("Run all four audit dimensions against a web page and return the weighted composite report with per-module scores and suggestions."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The scheme-qualified URL of the page to audit"),
		),
	)
	s.AddTool(auditReportTool, handleAuditReport(apiURL, apiKey))

	screenshotTool := mcp.NewTool("screenshot_page",
		mcp.WithDescription("Render a web page in a headless browser and return a full-page PNG screenshot. An optional CSS selector scrolls the first matching element into view and outlines it before capture."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The scheme-qualified URL of the page to capture"),
		),
		mcp.WithString("selector",
			mcp.Description("Optional CSS selector of an element to highlight"),
		),
	)
	s.AddTool(screenshotTool, handleScreenshotPage(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleAuditPage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		module, err := request.RequireString("module")
		if err != nil {
			return mcp.NewToolResultError("module is required"), nil
		}
		path, ok := modulePaths[module]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown module %q", module)), nil
		}

		return callAudit(ctx, client, apiURL, apiKey, path, url)
	}
}

func handleAuditReport(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 300 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		return callAudit(ctx, client, apiURL, apiKey, "/api/v1/report", url)
	}
}

func handleScreenshotPage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageURL, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		selector := request.GetString("selector", "")

		return callScreenshot(ctx, client, apiURL, apiKey, pageURL, selector)
	}
}

// callScreenshot fetches the screenshot endpoint and returns the PNG as
// a base64 image tool result, or a tool error built from the API error
// body.
func callScreenshot(ctx context.Context, client *http.Client, apiURL, apiKey, pageURL, selector string) (*mcp.CallToolResult, error) {
	query := url.Values{}
	query.Set("url", pageURL)
	if selector != "" {
		query.Set("selector", selector)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		apiURL+"/api/v1/screenshot?"+query.Encode(), nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
	}
	if apiKey != "" {
		httpReq.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			msg := apiErr.Error
			if apiErr.Detail != "" {
				msg += ": " + apiErr.Detail
			}
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("screenshot failed with status %d", resp.StatusCode)), nil
	}

	return mcp.NewToolResultImage("screenshot of "+pageURL,
		base64.StdEncoding.EncodeToString(respBody), "image/png"), nil
}

// callAudit posts {url} to the given endpoint and returns the raw JSON
// result as tool output, or a tool error built from the API error body.
func callAudit(ctx context.Context, client *http.Client, apiURL, apiKey, path, url string) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(auditRequest{URL: url})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			msg := apiErr.Error
			if apiErr.Detail != "" {
				msg += ": " + apiErr.Detail
			}
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("audit failed with status %d", resp.StatusCode)), nil
	}

	return mcp.NewToolResultText(string(respBody)), nil
}
