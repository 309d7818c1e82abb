package repository

// Page selects a window of a listing. Values are clamped by Normalize.
type Page struct {
	Number int
	Limit  int
}

// Normalize clamps the page to 1.. and the limit to 1..100 (default 10).
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.Limit
}
