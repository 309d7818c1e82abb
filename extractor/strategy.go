package extractor

// Strategy turns recognized text lines into receipt fields.
// Implementations must be pure: identical input yields identical output.
type Strategy interface {
	Extract(lines []string) Fields
}

// RegexStrategy matches literal patterns over the flattened document.
// No positional or confidence data is consulted.
type RegexStrategy struct{}

var _ Strategy = RegexStrategy{}

// Extract implements Strategy.
func (RegexStrategy) Extract(lines []string) Fields {
	doc := Document(lines)
	return Fields{
		Total: findTotal(doc),
		Date:  findDate(doc),
		TaxID: findTaxID(doc),
	}
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(lines []string) Fields

// Extract implements Strategy.
func (f StrategyFunc) Extract(lines []string) Fields {
	return f(lines)
}
