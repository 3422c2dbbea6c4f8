package tree

const (
	// LargeRepositorySize is the hosting API reported size (KB) above which the large budget applies
	LargeRepositorySize = 100000
	// MaxFileSize is the byte size above which file content is not fetched
	MaxFileSize = 100000
)

// Budget bounds traversal cost
type Budget struct {
	MaxDepth int `yaml:"maxDepth"`
	MaxFiles int `yaml:"maxFiles"`
}

var (
	// DefaultBudget applies to regular repositories
	DefaultBudget = Budget{MaxDepth: 3, MaxFiles: 500}
	// LargeBudget applies to repositories above LargeRepositorySize
	LargeBudget = Budget{MaxDepth: 2, MaxFiles: 100}
)

// BudgetFor returns traversal budget for repository size in KB
func BudgetFor(size int) Budget {
	if size > LargeRepositorySize {
		return LargeBudget
	}
	return DefaultBudget
}
