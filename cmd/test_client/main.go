// Manual smoke client for a locally running server. Each call is printed
// as-is; run the server first.
package main

import (
	"context"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const testUserID = "smoke-user"

func main() {
	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "positionfit-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: "http://localhost:8080/mcp/stream",
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	analysisID := testSaveAnalysis(ctx, session)
	if analysisID != "" {
		testSetStatus(ctx, session, analysisID)
		testResumeSession(ctx, session, analysisID)
	}
	testDashboard(ctx, session)
	testExportData(ctx, session)

	fmt.Println("\nAll smoke calls completed")
}

func testSaveAnalysis(ctx context.Context, session *mcp.ClientSession) string {
	fmt.Println("\nTEST: save_analysis")

	params := &mcp.CallToolParams{
		Name: "save_analysis",
		Arguments: map[string]any{
			"user_id": testUserID,
			"job_posting": map[string]any{
				"title":     "Backend Engineer",
				"company":   "Acme",
				"location":  "Portland, OR",
				"sourceUrl": "https://jobs.example.com/1",
			},
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("save_analysis failed: %v", err)
		return ""
	}

	printResult(result)

	structured, ok := result.StructuredContent.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := structured["id"].(string)
	return id
}

func testSetStatus(ctx context.Context, session *mcp.ClientSession, analysisID string) {
	fmt.Println("\nTEST: set_application_status")

	params := &mcp.CallToolParams{
		Name: "set_application_status",
		Arguments: map[string]any{
			"user_id":     testUserID,
			"analysis_id": analysisID,
			"status":      "interested",
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("set_application_status failed: %v", err)
		return
	}

	printResult(result)
}

func testResumeSession(ctx context.Context, session *mcp.ClientSession, analysisID string) {
	fmt.Println("\nTEST: resume_session")

	params := &mcp.CallToolParams{
		Name: "resume_session",
		Arguments: map[string]any{
			"user_id":     testUserID,
			"analysis_id": analysisID,
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("resume_session failed: %v", err)
		return
	}

	printResult(result)
}

func testDashboard(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: dashboard")

	params := &mcp.CallToolParams{
		Name: "dashboard",
		Arguments: map[string]any{
			"user_id": testUserID,
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("dashboard failed: %v", err)
		return
	}

	printResult(result)
}

func testExportData(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: export_data")

	params := &mcp.CallToolParams{
		Name: "export_data",
		Arguments: map[string]any{
			"user_id": testUserID,
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("export_data failed: %v", err)
		return
	}

	printResult(result)
}

func printResult(result *mcp.CallToolResult) {
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			fmt.Println(text.Text)
		}
	}
}
