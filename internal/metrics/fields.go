package metrics

// Attribute keys attached to instruments. Paths are normalized before they get here to keep
// cardinality bounded.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrExtractor = "extractor"
	AttrBalanced  = "balanced"
)
