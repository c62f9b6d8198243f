package pricing

// evaluatePrice maps the resolved quantity to a unit price and subtotal. For
// stepped tables the greatest threshold not exceeding the quantity wins and
// its price applies to the whole quantity (flat per tier, not marginal).
func evaluatePrice(q resolvedQuantity, m Model) (unitPrice, subtotal float64, err error) {
	if m.Method != MethodSteppedTable {
		return m.PricePerUnit, q.Value * m.PricePerUnit, nil
	}

	if len(m.Tiers) == 0 {
		return 0, 0, &InvalidPricingModelError{Reason: "stepped_table requires a non-empty price table"}
	}
	for i := 1; i < len(m.Tiers); i++ {
		if m.Tiers[i].Threshold <= m.Tiers[i-1].Threshold {
			return 0, 0, &InvalidPricingModelError{Reason: "price table thresholds must be strictly increasing"}
		}
	}
	if q.Value < m.Tiers[0].Threshold {
		return 0, 0, &InvalidPricingModelError{Reason: "quantity is below the first price table threshold"}
	}

	tier := m.Tiers[0]
	for _, t := range m.Tiers[1:] {
		if t.Threshold > q.Value {
			break
		}
		tier = t
	}
	return tier.Price, q.Value * tier.Price, nil
}
