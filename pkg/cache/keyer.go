package cache

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from a definition.
	LayoutKey(definitionHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change a computed layout.
type LayoutKeyOpts struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	SideBySide    bool    `json:"side_by_side"`
	MaxIterations int     `json:"max_iterations"`
	Measurer      string  `json:"measurer"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	ShowLabels bool    `json:"show_labels"`
	ShowGrid   bool    `json:"show_grid"`
	ShowTitle  bool    `json:"show_title"`
	Detailed   bool    `json:"detailed"`
	Scale      float64 `json:"scale"`
}

// DefaultKeyer produces keys of the form "<stage>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(definitionHash string, opts LayoutKeyOpts) string {
	return stageKey(StageLayout, definitionHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return stageKey(StageArtifact, layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
