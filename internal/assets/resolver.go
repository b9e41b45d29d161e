package assets

import (
	"errors"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// AssetResolver combines custom and embedded loaders. Custom assets win;
// embedded assets are used when the custom directory lacks the name.
//
// A reference containing a path separator is read directly from disk and
// never falls back.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a style by name or path. An empty ref selects DefaultStyleName.
func (r *AssetResolver) LoadStyle(ref string) (string, error) {
	if ref == "" {
		ref = DefaultStyleName
	}
	if fileutil.IsFilePath(ref) {
		return readAssetFile(ref, ref, ErrStyleNotFound)
	}
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(ref)
	})
}

// LoadTemplate loads a template by name or path. An empty ref selects DefaultTemplateName.
func (r *AssetResolver) LoadTemplate(ref string) (string, error) {
	if ref == "" {
		ref = DefaultTemplateName
	}
	if fileutil.IsFilePath(ref) {
		return readAssetFile(ref, ref, ErrTemplateNotFound)
	}
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadTemplate(ref)
	})
}

func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}
	// Validation and I/O errors are not masked by the embedded copy.
	if !isNotFoundError(err) {
		return "", err
	}
	return loadFn(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader returns true if a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
