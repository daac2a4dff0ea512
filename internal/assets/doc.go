// Package assets provides the stylesheet and HTML template of the preview page.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled in with go:embed
//	    ├── FilesystemLoader  - user assets from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory only needs the files it overrides; anything missing
// falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── preview.css
//	└── templates/
//	    └── preview.html
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets

// Names of the built-in assets.
const (
	PreviewStyleName    = "preview"
	PreviewTemplateName = "preview"
)
