package invoice2pdf

import (
	"errors"

	"github.com/alnah/go-invoice2pdf/internal/assets"
)

// Names of the built-in assets.
const (
	// DefaultStyle is the name of the built-in invoice stylesheet.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplate is the name of the built-in invoice template.
	DefaultTemplate = assets.DefaultTemplateName
)

// AssetLoader loads invoice stylesheets and templates by name or path.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css) or file path.
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(ref string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html) or file path.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(ref string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, only embedded assets are used. Otherwise
// basePath/styles/{name}.css and basePath/templates/{name}.html take
// precedence, falling back to the embedded copies.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// BuiltinStyles lists the embedded style names, sorted.
func BuiltinStyles() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// assetLoaderAdapter maps internal asset errors to the public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(ref string) (string, error) {
	content, err := a.resolver.LoadStyle(ref)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(ref string) (string, error) {
	content, err := a.resolver.LoadTemplate(ref)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal),
		errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message and makes errors.Is match sentinel.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel only; internal errors stay internal.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
