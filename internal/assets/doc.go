// Package assets provides the invoice HTML template and CSS styles.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    ├── EmbeddedLoader    - built-in "invoice" template and styles
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom-first with embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Templates are html/template sources executed once per invoice row. They
// refer to the logo with a relative path (static/images/...) that the
// converter resolves against the batch workspace.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
