package extractor

// BuildBillPrompt returns the extraction prompt for German utility bills.
func BuildBillPrompt() string {
	return `Extract ALL line items from this German utility bill (Betriebskostenabrechnung).

For each line item, extract:
- name: the item description (e.g., "Heizkosten", "Wasserversorgung")
- amount: quantity if applicable (e.g., 85 for 85 sqm)
- unit: unit of measurement (e.g., "sqm", "kWh", "m³")
- cost_per_unit: cost per unit in EUR
- total_cost: total cost for this line item in EUR
- category: heuristic category (heating, water, utilities, elevator, garbage, tax, other)

Also extract:
- billing_period: the period covered (e.g., "01.01.2023 - 31.12.2023")
- total_square_meters: total apartment size in sqm
- total_cost: total bill amount
- heating_costs: total heating-related costs
- water_costs: total water-related costs

It is critical that you extract EVERY line item. Do not skip, summarize, or omit any items.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, in this format:
{
  "billing_period": "...",
  "total_square_meters": 85,
  "total_cost": 2400.00,
  "heating_costs": 1200.00,
  "water_costs": 450.00,
  "line_items": [...]
}`
}
