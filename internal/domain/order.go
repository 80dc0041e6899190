package domain

// Order is the caller-supplied raw order exactly as decoded from JSON:
// snake_case keys, values left untyped. The validation layer coerces and
// normalizes them; nothing here is trusted.
type Order map[string]any

// Product is one raw line item of an order.
type Product map[string]any

// Products extracts the raw line items from the order, tolerating both
// []Product (hand-built orders) and []any (decoded JSON).
func (o Order) Products() []Product {
	switch v := o["products"].(type) {
	case []Product:
		return v
	case []map[string]any:
		items := make([]Product, 0, len(v))
		for _, p := range v {
			items = append(items, Product(p))
		}
		return items
	case []any:
		items := make([]Product, 0, len(v))
		for _, raw := range v {
			if p, ok := raw.(map[string]any); ok {
				items = append(items, Product(p))
			}
		}
		return items
	default:
		return nil
	}
}
