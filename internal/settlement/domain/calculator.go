package settlement

import "adsettle/internal/numeric"

// VATRate is the fixed value-added tax applied to supply amounts.
const VATRate = 0.1

// Computed holds every derived monetary field of one settlement.
// Margin is measured against pre-VAT supply amounts.
type Computed struct {
	ProcessingSupply float64 `json:"processingSupply"`
	ProcessingTotal  float64 `json:"processingTotal"`
	ProcessingFeeVat float64 `json:"processingFeeVat"`

	ProductSupply float64 `json:"productSupply"`
	ProductTotal  float64 `json:"productTotal"`

	DeliverySupply float64 `json:"deliverySupply"`
	DeliveryTotal  float64 `json:"deliveryTotal"`

	TotalSupply  float64 `json:"totalSupply"`
	TotalWithVat float64 `json:"totalWithVat"`

	ExpenseProcessingTotal float64 `json:"expenseProcessingTotal"`
	ExpenseProductTotal    float64 `json:"expenseProductTotal"`
	ExpenseDeliveryTotal   float64 `json:"expenseDeliveryTotal"`
	TotalExpense           float64 `json:"totalExpense"`

	NetMargin   float64 `json:"netMargin"`
	MarginRatio float64 `json:"marginRatio"`
}

// Compute derives all monetary fields of one record. deliveryCostWithVat is
// the externally owned per-unit delivery cost constant; callers must re-read
// it from the settings provider for every computation rather than cache it.
// The function is total: missing or malformed inputs compute as zero.
func Compute(record *SettlementRecord, deliveryCostWithVat float64) Computed {
	var c Computed
	if record == nil {
		return c
	}

	processingFee := numeric.Coerce(record.ProcessingFee)
	processingQty := numeric.Coerce(record.ProcessingQty)
	deliveryFee := numeric.Coerce(record.DeliveryFee)
	deliveryQty := numeric.Coerce(record.DeliveryQty)
	expenseUnitCost := numeric.Coerce(record.ExpenseProcessingFee)

	c.ProcessingSupply = processingFee * processingQty
	c.ProcessingTotal = c.ProcessingSupply * (1 + VATRate)
	c.ProcessingFeeVat = processingFee * (1 + VATRate)

	for _, line := range record.Products {
		c.ProductSupply += numeric.Coerce(line.Quantity) * numeric.Coerce(line.UnitPrice)
	}
	c.ProductTotal = c.ProductSupply * (1 + VATRate)

	c.DeliverySupply = deliveryFee * deliveryQty
	c.DeliveryTotal = c.DeliverySupply * (1 + VATRate)

	c.TotalSupply = c.ProcessingSupply + c.ProductSupply + c.DeliverySupply
	c.TotalWithVat = c.TotalSupply * (1 + VATRate)

	// Expense side. The processing expense uses the revenue-side quantity;
	// the product expense equals the product revenue by definition; the
	// delivery expense uses the external constant, not the revenue fee.
	c.ExpenseProcessingTotal = expenseUnitCost * processingQty
	c.ExpenseProductTotal = c.ProductSupply
	c.ExpenseDeliveryTotal = deliveryCostWithVat * deliveryQty
	c.TotalExpense = c.ExpenseProcessingTotal + c.ExpenseProductTotal + c.ExpenseDeliveryTotal

	c.NetMargin = c.TotalSupply - c.TotalExpense
	if c.TotalSupply > 0 {
		c.MarginRatio = c.NetMargin / c.TotalSupply
	}
	return c
}
