package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// awardFor returns the points a single rule contributes to r
func awardFor(r Receipt, name string) int {
	for _, a := range Breakdown(r) {
		if a.Rule == name {
			return a.Points
		}
	}
	Fail("no rule named " + name)
	return 0
}

// baseReceipt scores 0 under every rule except retailer_alphanumeric
func baseReceipt() Receipt {
	return Receipt{
		Retailer:     "A",
		PurchaseDate: "2022-01-02",
		PurchaseTime: "10:00",
		Items:        []Item{{ShortDescription: "ab", Price: "1.00"}},
		Total:        "1.01",
	}
}

var _ = Describe("Points", func() {
	Describe("worked examples", func() {
		It("should award 28 points to the Target receipt", func() {
			Expect(Points(targetReceipt())).To(Equal(28))
		})

		It("should award 109 points to the M&M Corner Market receipt", func() {
			Expect(Points(cornerMarketReceipt())).To(Equal(109))
		})

		It("should be deterministic", func() {
			r := targetReceipt()
			Expect(Points(r)).To(Equal(Points(r)))
		})

		It("should not modify the receipt", func() {
			r := targetReceipt()
			Points(r)
			Expect(r).To(Equal(targetReceipt()))
		})
	})

	Describe("Breakdown", func() {
		It("should list every rule in order", func() {
			Expect(Breakdown(cornerMarketReceipt())).To(Equal([]Award{
				{Rule: "retailer_alphanumeric", Points: 14},
				{Rule: "round_dollar_total", Points: 50},
				{Rule: "quarter_multiple_total", Points: 25},
				{Rule: "item_pairs", Points: 10},
				{Rule: "item_descriptions", Points: 0},
				{Rule: "odd_purchase_day", Points: 0},
				{Rule: "afternoon_purchase", Points: 10},
			}))
		})

		It("should sum to the points total", func() {
			sum := 0
			for _, a := range Breakdown(targetReceipt()) {
				sum += a.Points
			}
			Expect(sum).To(Equal(Points(targetReceipt())))
		})
	})

	DescribeTable("retailer_alphanumeric",
		func(retailer string, expected int) {
			r := baseReceipt()
			r.Retailer = retailer
			Expect(awardFor(r, "retailer_alphanumeric")).To(Equal(expected))
		},
		Entry("letters", "Target", 6),
		Entry("ampersand and spaces are ignored", "M&M Corner Market", 14),
		Entry("digits count", "7-Eleven 24", 9),
		Entry("underscores and hyphens are ignored", "a_b-c", 3),
	)

	DescribeTable("round_dollar_total",
		func(total string, expected int) {
			r := baseReceipt()
			r.Total = total
			Expect(awardFor(r, "round_dollar_total")).To(Equal(expected))
		},
		Entry("whole dollars", "9.00", 50),
		Entry("zero", "0.00", 50),
		Entry("non-zero cents", "9.01", 0),
		Entry("quarter", "35.25", 0),
		Entry("more dollars than an int64 holds", "100000000000000000000.00", 50),
		Entry("unparseable", "abc", 0),
	)

	DescribeTable("quarter_multiple_total",
		func(total string, expected int) {
			r := baseReceipt()
			r.Total = total
			Expect(awardFor(r, "quarter_multiple_total")).To(Equal(expected))
		},
		Entry("whole dollars", "9.00", 25),
		Entry("quarter", "35.25", 25),
		Entry("three quarters", "0.75", 25),
		Entry("not a quarter", "35.35", 0),
		Entry("float-unfriendly value", "1.10", 0),
		Entry("more dollars than an int64 holds", "100000000000000000000.00", 25),
		Entry("large amount off the quarter", "100000000000000000000.10", 0),
		Entry("unparseable", "", 0),
	)

	DescribeTable("item_pairs",
		func(count int, expected int) {
			r := baseReceipt()
			r.Items = make([]Item, count)
			for i := range r.Items {
				r.Items[i] = Item{ShortDescription: "ab", Price: "1.00"}
			}
			Expect(awardFor(r, "item_pairs")).To(Equal(expected))
		},
		Entry("no items", 0, 0),
		Entry("single item", 1, 0),
		Entry("one pair", 2, 5),
		Entry("odd count", 5, 10),
		Entry("two pairs", 4, 10),
	)

	DescribeTable("item_descriptions",
		func(description, price string, expected int) {
			r := baseReceipt()
			r.Items = []Item{{ShortDescription: description, Price: price}}
			Expect(awardFor(r, "item_descriptions")).To(Equal(expected))
		},
		Entry("length divisible by 3", "Emils Cheese Pizza", "12.25", 3),
		Entry("surrounding whitespace is trimmed", "   Klarbrunn 12-PK 12 FL OZ  ", "12.00", 3),
		Entry("rounds up", "abc", "6.49", 2),
		Entry("exact product is not rounded", "abc", "5.00", 1),
		Entry("length not divisible by 3", "Mountain Dew 12PK", "6.49", 0),
		Entry("empty after trimming qualifies", "   ", "10.00", 2),
		Entry("free item", "abc", "0.00", 0),
		Entry("unparseable price", "abc", "x", 0),
		Entry("huge price is capped", "abc", "50000000000000000000.00", maxPoints),
	)

	It("should sum item_descriptions across qualifying items", func() {
		r := baseReceipt()
		r.Items = []Item{
			{ShortDescription: "abc", Price: "6.49"},
			{ShortDescription: "ab", Price: "100.00"},
			{ShortDescription: "abcdef", Price: "1.01"},
		}
		Expect(awardFor(r, "item_descriptions")).To(Equal(3))
	})

	When("amounts exceed what an int holds", func() {
		var r Receipt

		BeforeEach(func() {
			r = baseReceipt()
			r.Items = []Item{
				{ShortDescription: "abc", Price: "50000000000000000000.00"},
				{ShortDescription: "def", Price: "50000000000000000000.00"},
			}
			r.Total = "100000000000000000000.00"
		})

		It("should never return negative points", func() {
			Expect(Points(r)).To(BeNumerically(">=", 0))
		})

		It("should saturate the total", func() {
			Expect(Points(r)).To(Equal(maxPoints))
		})

		It("should saturate the item_descriptions award", func() {
			Expect(awardFor(r, "item_descriptions")).To(Equal(maxPoints))
		})
	})

	DescribeTable("odd_purchase_day",
		func(date string, expected int) {
			r := baseReceipt()
			r.PurchaseDate = date
			Expect(awardFor(r, "odd_purchase_day")).To(Equal(expected))
		},
		Entry("first of month", "2022-01-01", 6),
		Entry("thirty-first", "2022-01-31", 6),
		Entry("even day", "2022-03-20", 0),
		Entry("unparseable", "2022-03", 0),
	)

	DescribeTable("afternoon_purchase",
		func(tm string, expected int) {
			r := baseReceipt()
			r.PurchaseTime = tm
			Expect(awardFor(r, "afternoon_purchase")).To(Equal(expected))
		},
		Entry("2:00pm", "14:00", 10),
		Entry("2:33pm", "14:33", 10),
		Entry("3:59pm", "15:59", 10),
		Entry("4:00pm", "16:00", 0),
		Entry("1:59pm", "13:59", 0),
		Entry("morning", "02:30", 0),
		Entry("unparseable", "1430", 0),
	)
})
