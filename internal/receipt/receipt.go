package receipt

// Item is a single line item on a receipt
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"` // Two fractional digits, e.g. "6.49"
}

// Receipt is a validated purchase receipt. Fields keep their wire form.
type Receipt struct {
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"` // YYYY-MM-DD
	PurchaseTime string `json:"purchaseTime"` // HH:MM, 24-hour
	Items        []Item `json:"items"`
	Total        string `json:"total"`
}

// clone returns a copy that shares no mutable state with r
func (r Receipt) clone() Receipt {
	if r.Items != nil {
		items := make([]Item, len(r.Items))
		copy(items, r.Items)
		r.Items = items
	}
	return r
}
