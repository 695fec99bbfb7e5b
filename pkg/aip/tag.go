package aip

// Identifiable is an app-side object that carries an accessibility identifier.
type Identifiable interface {
	SetAccessibilityIdentifier(id string)
}

// Tag assigns the identifier of e to target.
// Screens call it for each of their views so the identifier the app exposes
// is the same one the page object queries for.
func Tag[E Element](target Identifiable, p *Provider[E], e E) {
	target.SetAccessibilityIdentifier(p.Identifier(e))
}
