package services

import (
	"encoding/json"
	"fmt"

	"github.com/peaks-ai/peaks-backend/models"
)

// Prompt builders. Each is a pure function of its input; the oracle is asked
// to answer in JSON and the call sites handle unparseable answers.

// BuildClassifyPrompt asks the oracle to classify a free-form request into a
// project type, a short analysis and a complexity level.
func BuildClassifyPrompt(userMessage string) string {
	return fmt.Sprintf(`You are PEAKS AI, an expert software architect. Analyze the user's request and determine:
1. What type of project they want (React App, Python Tool, Website, Node.js API, etc.)
2. Brief analysis of what they're asking for
3. Complexity level (simple/medium/complex)

Respond in JSON format with keys: "projectType", "analysis", "complexity"

User request: %s`, userMessage)
}

// BuildGeneratePrompt asks the oracle for a complete project structure with
// working code content per file.
func BuildGeneratePrompt(userMessage, projectType string) string {
	return fmt.Sprintf(`You are PEAKS AI, an expert full-stack developer. Generate a complete project structure for the user's request.

Create a JSON response with:
- type: project type
- name: project name
- description: brief description
- files: array of file/folder objects with structure and content
- dependencies: array of required packages
- commands: install, dev, build commands

For files, include actual working code content. Create proper folder structures.
Support: React, Vue, Python, Node.js, HTML/CSS/JS, and more.

Make the code production-ready and functional.

Create a %s based on this request: %s`, projectType, userMessage)
}

// BuildEnhancePrompt asks the oracle for a complete updated tree given the
// serialized current tree and the new instruction. The answer may be a bare
// array of nodes or an object with a "files" field; callers accept both.
func BuildEnhancePrompt(currentFiles models.FileNodeList, userMessage, projectType string) string {
	serialized, err := json.MarshalIndent(currentFiles, "", "  ")
	if err != nil {
		serialized = []byte("[]")
	}

	return fmt.Sprintf(`You are PEAKS AI. The user wants to enhance their existing project.
Analyze their current files and their new request, then return the updated file structure.

Current project type: %s
Return complete updated file structure as JSON array.

Current files: %s

New request: %s

Please update the project with the requested changes.`, projectType, serialized, userMessage)
}
