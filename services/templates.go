package services

import (
	"github.com/peaks-ai/peaks-backend/models"
)

// Project type labels with baked-in fallback templates.
const (
	ProjectTypeReactApp = "React App"
	ProjectTypeWebsite  = "Website"

	// DefaultProjectType is what classification falls back to when the
	// oracle is unavailable or answers garbage.
	DefaultProjectType = "Web Application"
)

const reactPackageJSON = `{
  "name": "react-app",
  "version": "1.0.0",
  "dependencies": {
    "react": "^18.2.0",
    "react-dom": "^18.2.0"
  },
  "scripts": {
    "dev": "vite",
    "build": "vite build"
  }
}`

const reactAppJSX = `function App() {
  return (
    <div className="app">
      <h1>Welcome to Your React App</h1>
      <p>Built with PEAKS AI</p>
    </div>
  );
}

export default App;`

const reactMainJSX = `import React from 'react';
import ReactDOM from 'react-dom/client';
import App from './App';
import './index.css';

ReactDOM.createRoot(document.getElementById('root')).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);`

const reactIndexCSS = `body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  margin: 0;
  padding: 0;
  background: #f5f5f5;
}

.app {
  text-align: center;
  padding: 2rem;
}

h1 {
  color: #333;
  margin-bottom: 1rem;
}`

const reactIndexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>React App</title>
</head>
<body>
  <div id="root"></div>
  <script type="module" src="/src/main.jsx"></script>
</body>
</html>`

const websiteIndexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>My Website</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <header>
    <h1>Welcome to My Website</h1>
  </header>
  <main>
    <p>Built with PEAKS AI</p>
  </main>
  <script src="script.js"></script>
</body>
</html>`

const websiteStyleCSS = `* {
  margin: 0;
  padding: 0;
  box-sizing: border-box;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
  line-height: 1.6;
  color: #333;
}

header {
  background: #6366f1;
  color: white;
  text-align: center;
  padding: 2rem;
}

main {
  padding: 2rem;
  text-align: center;
}`

const websiteScriptJS = `document.addEventListener('DOMContentLoaded', function() {
  console.log('Website loaded successfully!');
});`

// DefaultGenerationResult returns the baked-in template for a project type.
// Two templates exist (React App, Website); unknown types fall back to the
// Website template rather than failing.
func DefaultGenerationResult(projectType string) models.GenerationResult {
	switch projectType {
	case ProjectTypeReactApp:
		return reactTemplate()
	case ProjectTypeWebsite:
		return websiteTemplate()
	default:
		return websiteTemplate()
	}
}

func reactTemplate() models.GenerationResult {
	return models.GenerationResult{
		Type:        ProjectTypeReactApp,
		Name:        "React Application",
		Description: "A modern React application",
		Files: models.FileNodeList{
			{Name: "package.json", Type: models.NodeFile, Content: reactPackageJSON},
			{Name: "src", Type: models.NodeFolder, Children: models.FileNodeList{
				{Name: "App.jsx", Type: models.NodeFile, Content: reactAppJSX},
				{Name: "main.jsx", Type: models.NodeFile, Content: reactMainJSX},
				{Name: "index.css", Type: models.NodeFile, Content: reactIndexCSS},
			}},
			{Name: "index.html", Type: models.NodeFile, Content: reactIndexHTML},
		},
		Dependencies: []string{"react", "react-dom", "vite"},
		Commands: &models.ProjectCommands{
			Install: "npm install",
			Dev:     "npm run dev",
			Build:   "npm run build",
		},
	}
}

func websiteTemplate() models.GenerationResult {
	return models.GenerationResult{
		Type:        ProjectTypeWebsite,
		Name:        "Website",
		Description: "A modern website",
		Files: models.FileNodeList{
			{Name: "index.html", Type: models.NodeFile, Content: websiteIndexHTML},
			{Name: "style.css", Type: models.NodeFile, Content: websiteStyleCSS},
			{Name: "script.js", Type: models.NodeFile, Content: websiteScriptJS},
		},
	}
}
