package models

// Complexity levels a classification may report.
const (
	ComplexitySimple  = "simple"
	ComplexityMedium  = "medium"
	ComplexityComplex = "complex"
)

// ProjectAnalysis is the oracle's classification of a free-form request.
type ProjectAnalysis struct {
	ProjectType string `json:"projectType"`
	Analysis    string `json:"analysis"`
	Complexity  string `json:"complexity"`
}

// ProjectCommands are the suggested shell commands for a generated project.
type ProjectCommands struct {
	Install string `json:"install,omitempty"`
	Dev     string `json:"dev,omitempty"`
	Build   string `json:"build,omitempty"`
}

// GenerationResult is the oracle's answer to a generate prompt. It is
// transient: only Files survives into the project record.
type GenerationResult struct {
	Type         string           `json:"type"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Files        FileNodeList     `json:"files"`
	Dependencies []string         `json:"dependencies,omitempty"`
	Commands     *ProjectCommands `json:"commands,omitempty"`
}
