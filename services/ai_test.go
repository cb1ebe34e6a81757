package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peaks-ai/peaks-backend/models"
	"github.com/stretchr/testify/require"
)

// oracleStub serves a fixed completion for every prompt.
func oracleStub(t *testing.T, body string) (*AIService, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	return NewAIService(newTestOracle(server.URL, "0")), server.Close
}

// deadOracle points at a closed listener so every call fails fast.
func deadOracle(t *testing.T) *AIService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()
	return NewAIService(newTestOracle(endpoint, "0"))
}

func TestAnalyzeRequestParsesOracleAnswer(t *testing.T) {
	ai, done := oracleStub(t, `{"success": true, "response": "{\"projectType\":\"React App\",\"analysis\":\"A todo list\",\"complexity\":\"simple\"}"}`)
	defer done()

	analysis := ai.AnalyzeRequest(context.Background(), "build me a todo list")
	require.Equal(t, "React App", analysis.ProjectType)
	require.Equal(t, "A todo list", analysis.Analysis)
	require.Equal(t, models.ComplexitySimple, analysis.Complexity)
}

func TestAnalyzeRequestFallsBackWhenOracleIsDown(t *testing.T) {
	analysis := deadOracle(t).AnalyzeRequest(context.Background(), "anything")
	require.Equal(t, models.ProjectAnalysis{
		ProjectType: "Web Application",
		Analysis:    "Creating a basic web application based on your request",
		Complexity:  models.ComplexityMedium,
	}, analysis)
}

func TestAnalyzeRequestFillsMissingFields(t *testing.T) {
	ai, done := oracleStub(t, `{"success": true, "response": "{\"projectType\":\"Python Tool\",\"complexity\":\"galactic\"}"}`)
	defer done()

	analysis := ai.AnalyzeRequest(context.Background(), "scrape a site")
	require.Equal(t, "Python Tool", analysis.ProjectType)
	require.Equal(t, "Creating a basic web application based on your request", analysis.Analysis)
	require.Equal(t, models.ComplexityMedium, analysis.Complexity)
}

func TestGenerateStructureParsesOracleAnswer(t *testing.T) {
	ai, done := oracleStub(t, `{"success": true, "response": "{\"name\":\"todo\",\"files\":[{\"name\":\"index.html\",\"type\":\"file\",\"content\":\"<html></html>\"}]}"}`)
	defer done()

	result := ai.GenerateStructure(context.Background(), "a todo list", "Website")
	require.Equal(t, "todo", result.Name)
	require.Equal(t, "Website", result.Type)
	require.Len(t, result.Files, 1)
	require.Equal(t, "index.html", result.Files[0].Name)
}

func TestGenerateStructureFallsBackToReactTemplate(t *testing.T) {
	result := deadOracle(t).GenerateStructure(context.Background(), "a todo list", ProjectTypeReactApp)
	require.Equal(t, ProjectTypeReactApp, result.Type)
	require.NoError(t, result.Files.Validate())

	pkg := result.Files.FindByPath("package.json")
	require.NotNil(t, pkg)
	require.Contains(t, pkg.Content, `"react": "^18.2.0"`)

	app := result.Files.FindByPath("src/App.jsx")
	require.NotNil(t, app)
	require.Contains(t, app.Content, "export default App;")

	require.NotNil(t, result.Files.FindByPath("src/main.jsx"))
	require.NotNil(t, result.Files.FindByPath("src/index.css"))
	require.NotNil(t, result.Files.FindByPath("index.html"))

	require.Equal(t, DefaultGenerationResult(ProjectTypeReactApp).Files, result.Files)
}

func TestGenerateStructureUnknownTypeFallsBackToWebsiteTemplate(t *testing.T) {
	result := deadOracle(t).GenerateStructure(context.Background(), "something weird", "Quantum Compiler")
	require.NoError(t, result.Files.Validate())
	require.NotNil(t, result.Files.FindByPath("index.html"))
	require.NotNil(t, result.Files.FindByPath("style.css"))
	require.NotNil(t, result.Files.FindByPath("script.js"))
}

func TestGenerateStructureFallsBackOnEmptyFileList(t *testing.T) {
	ai, done := oracleStub(t, `{"success": true, "response": "{\"name\":\"empty\",\"files\":[]}"}`)
	defer done()

	result := ai.GenerateStructure(context.Background(), "a site", ProjectTypeWebsite)
	require.NotEmpty(t, result.Files)
	require.NotNil(t, result.Files.FindByPath("index.html"))
}

func TestGenerateStructureFallsBackOnInvalidTree(t *testing.T) {
	// A file node with children violates tree invariants.
	ai, done := oracleStub(t, `{"success": true, "response": "{\"files\":[{\"name\":\"broken.txt\",\"type\":\"file\",\"children\":[{\"name\":\"x\",\"type\":\"file\"}]}]}"}`)
	defer done()

	result := ai.GenerateStructure(context.Background(), "a site", ProjectTypeWebsite)
	require.NoError(t, result.Files.Validate())
	require.NotNil(t, result.Files.FindByPath("index.html"))
}

func TestEnhanceStructureAcceptsBareArray(t *testing.T) {
	ai, done := oracleStub(t, `{"success": true, "response": "[{\"name\":\"index.html\",\"type\":\"file\",\"content\":\"v2\"}]"}`)
	defer done()

	current := models.FileNodeList{{Name: "index.html", Type: models.NodeFile, Content: "v1"}}
	updated := ai.EnhanceStructure(context.Background(), current, "make it better", ProjectTypeWebsite)
	require.Len(t, updated, 1)
	require.Equal(t, "v2", updated[0].Content)
}

func TestEnhanceStructureAcceptsFilesObject(t *testing.T) {
	ai, done := oracleStub(t, `{"success": true, "response": "{\"files\":[{\"name\":\"index.html\",\"type\":\"file\",\"content\":\"v2\"}]}"}`)
	defer done()

	current := models.FileNodeList{{Name: "index.html", Type: models.NodeFile, Content: "v1"}}
	updated := ai.EnhanceStructure(context.Background(), current, "make it better", ProjectTypeWebsite)
	require.Len(t, updated, 1)
	require.Equal(t, "v2", updated[0].Content)
}

func TestEnhanceStructureKeepsTreeWhenOracleIsDown(t *testing.T) {
	current := models.FileNodeList{
		{Name: "index.html", Type: models.NodeFile, Content: "v1"},
		{Name: "src", Type: models.NodeFolder, Children: models.FileNodeList{
			{Name: "app.js", Type: models.NodeFile, Content: "console.log('hi')"},
		}},
	}

	updated := deadOracle(t).EnhanceStructure(context.Background(), current, "add a feature", ProjectTypeWebsite)
	require.Equal(t, current, updated)

	// The returned tree is a copy; mutating it must not touch the original.
	updated[0].Content = "mutated"
	require.Equal(t, "v1", current[0].Content)
}

func TestEnhanceStructureKeepsTreeOnGarbageAnswer(t *testing.T) {
	ai, done := oracleStub(t, `{"success": true, "response": "Sure! Here is the updated project..."}`)
	defer done()

	current := models.FileNodeList{{Name: "index.html", Type: models.NodeFile, Content: "v1"}}
	updated := ai.EnhanceStructure(context.Background(), current, "make it better", ProjectTypeWebsite)
	require.Equal(t, current, updated)
}
