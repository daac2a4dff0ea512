package assets

// AssetLoader loads stylesheets and templates by bare name (no extension).
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}
