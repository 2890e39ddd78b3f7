package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// Registered error codes.
const (
	CodeInvalidNodeKind   = "E001"
	CodeNilRender         = "E002"
	CodeHostCapability    = "E010"
	CodeComputationFailed = "E020"
	CodeReentrantTrigger  = "E021"
	CodeInvalidConfig     = "E030"
	CodeInvalidTreeFile   = "E031"
)

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Construction Errors (E001-E009)
	// ============================================

	CodeInvalidNodeKind: {
		Category:   CategoryConstruction,
		Message:    "Invalid node kind",
		Suggestion: "Use a tag string, a value with a Render() method, or a func() *vdom.VNode.",
	},
	CodeNilRender: {
		Category:   CategoryConstruction,
		Message:    "Component rendered nil",
		Suggestion: "Return a node from Render(); use vdom.Text(\"\") for empty output.",
	},

	// ============================================
	// Host Errors (E010-E019)
	// ============================================

	CodeHostCapability: {
		Category: CategoryHost,
		Message:  "Host rejected operation",
	},

	// ============================================
	// Reactive Errors (E020-E029)
	// ============================================

	CodeComputationFailed: {
		Category: CategoryReactive,
		Message:  "Tracked computation failed",
	},
	CodeReentrantTrigger: {
		Category:   CategoryReactive,
		Message:    "Computation triggered while running",
		Suggestion: "Avoid writing state that the same computation reads.",
	},

	// ============================================
	// Config / CLI Errors (E030-E039)
	// ============================================

	CodeInvalidConfig: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	CodeInvalidTreeFile: {
		Category: CategoryCLI,
		Message:  "Invalid tree file",
	},
}
