package services

import (
	"context"
	"encoding/json"

	"github.com/peaks-ai/peaks-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AIService wraps the oracle with the per-call-site fallback policy:
// classification and enhancement failures are fully absorbed, generation
// failures fall back to a baked-in template. None of the three methods ever
// surfaces an oracle error to its caller.
type AIService struct {
	oracle *OracleClient
	logger zerolog.Logger
}

func NewAIService(oracle *OracleClient) *AIService {
	return &AIService{
		oracle: oracle,
		logger: log.With().Str("serviceName", "aiService").Logger(),
	}
}

// AnalyzeRequest classifies a free-form request. On any oracle or parse
// failure it returns the generic Web Application analysis; missing fields in
// an otherwise valid answer are filled with the same defaults.
func (s *AIService) AnalyzeRequest(ctx context.Context, userMessage string) models.ProjectAnalysis {
	fallback := models.ProjectAnalysis{
		ProjectType: DefaultProjectType,
		Analysis:    "Creating a basic web application based on your request",
		Complexity:  models.ComplexityMedium,
	}

	response, err := s.oracle.Complete(ctx, BuildClassifyPrompt(userMessage))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Classification failed, using fallback analysis")
		return fallback
	}

	var analysis models.ProjectAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		s.logger.Warn().Err(err).Msg("Classification response was not valid JSON, using fallback analysis")
		return fallback
	}

	if analysis.ProjectType == "" {
		analysis.ProjectType = fallback.ProjectType
	}
	if analysis.Analysis == "" {
		analysis.Analysis = fallback.Analysis
	}
	switch analysis.Complexity {
	case models.ComplexitySimple, models.ComplexityMedium, models.ComplexityComplex:
	default:
		analysis.Complexity = models.ComplexityMedium
	}

	return analysis
}

// GenerateStructure produces a full project structure for the create flow.
// On oracle failure, unparseable output or an invalid tree it falls back to
// the baked-in template for the project type.
func (s *AIService) GenerateStructure(ctx context.Context, userMessage, projectType string) models.GenerationResult {
	response, err := s.oracle.Complete(ctx, BuildGeneratePrompt(userMessage, projectType))
	if err != nil {
		s.logger.Warn().Err(err).Str("projectType", projectType).Msg("Generation failed, using default template")
		return DefaultGenerationResult(projectType)
	}

	var result models.GenerationResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		s.logger.Warn().Err(err).Msg("Generation response was not valid JSON, using default template")
		return DefaultGenerationResult(projectType)
	}

	if len(result.Files) == 0 {
		s.logger.Warn().Msg("Generation response carried no files, using default template")
		return DefaultGenerationResult(projectType)
	}
	if err := result.Files.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("Generated tree violates invariants, using default template")
		return DefaultGenerationResult(projectType)
	}

	if result.Type == "" {
		result.Type = projectType
	}
	return result
}

// EnhanceStructure produces an updated tree for the enhance flow. The oracle
// may answer with a bare array or an object carrying a "files" field. On any
// failure the current tree is returned unchanged (deep-copied) so a failed
// enhancement can never corrupt the project.
func (s *AIService) EnhanceStructure(ctx context.Context, currentFiles models.FileNodeList, userMessage, projectType string) models.FileNodeList {
	response, err := s.oracle.Complete(ctx, BuildEnhancePrompt(currentFiles, userMessage, projectType))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Enhancement failed, keeping current tree")
		return currentFiles.Clone()
	}

	updated, ok := parseEnhanceResponse(response)
	if !ok {
		s.logger.Warn().Msg("Enhancement response was not a usable tree, keeping current tree")
		return currentFiles.Clone()
	}
	if err := updated.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("Enhanced tree violates invariants, keeping current tree")
		return currentFiles.Clone()
	}

	return updated
}

// parseEnhanceResponse accepts either a bare node array or {"files": [...]}.
func parseEnhanceResponse(response string) (models.FileNodeList, bool) {
	var asList models.FileNodeList
	if err := json.Unmarshal([]byte(response), &asList); err == nil {
		return asList, true
	}

	var asObject struct {
		Files models.FileNodeList `json:"files"`
	}
	if err := json.Unmarshal([]byte(response), &asObject); err == nil && asObject.Files != nil {
		return asObject.Files, true
	}

	return nil, false
}
