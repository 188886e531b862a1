package receipt

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Award is the contribution of a single scoring rule
type Award struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// maxPoints caps every score. Amounts have no digit limit, so a single
// item can be worth more than an int holds.
const maxPoints = math.MaxInt32

var (
	hundred      = decimal.NewFromInt(100)
	quarter      = decimal.NewFromInt(25)
	itemFraction = decimal.New(2, -1) // 0.2
	pointsCap    = decimal.NewFromInt(maxPoints)
)

// rule scores one aspect of a receipt. Rules are independent and additive.
type rule struct {
	name  string
	score func(r Receipt) int
}

var rules = []rule{
	{"retailer_alphanumeric", retailerPoints},
	{"round_dollar_total", roundDollarPoints},
	{"quarter_multiple_total", quarterMultiplePoints},
	{"item_pairs", itemPairPoints},
	{"item_descriptions", itemDescriptionPoints},
	{"odd_purchase_day", oddDayPoints},
	{"afternoon_purchase", afternoonPoints},
}

// Points computes the reward points for a receipt.
// It never fails; a field that cannot be parsed scores 0 for its rule,
// and the result saturates at maxPoints.
func Points(r Receipt) int {
	total := 0
	for _, ru := range rules {
		total = addPoints(total, ru.score(r))
	}
	return total
}

// Breakdown returns the contribution of every rule, in rule order
func Breakdown(r Receipt) []Award {
	awards := make([]Award, 0, len(rules))
	for _, ru := range rules {
		awards = append(awards, Award{Rule: ru.name, Points: ru.score(r)})
	}
	return awards
}

// One point for every alphanumeric character in the retailer name
func retailerPoints(r Receipt) int {
	n := 0
	for i := 0; i < len(r.Retailer); i++ {
		c := r.Retailer[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			n++
		}
	}
	return n
}

// 50 points if the total is a round dollar amount
func roundDollarPoints(r Receipt) int {
	cents, ok := toCents(r.Total)
	if ok && cents.Mod(hundred).IsZero() {
		return 50
	}
	return 0
}

// 25 points if the total is a multiple of 0.25
func quarterMultiplePoints(r Receipt) int {
	cents, ok := toCents(r.Total)
	if ok && cents.Mod(quarter).IsZero() {
		return 25
	}
	return 0
}

// 5 points for every two items
func itemPairPoints(r Receipt) int {
	return len(r.Items) / 2 * 5
}

// If the trimmed description length is a multiple of 3, ceil(price * 0.2).
// An empty trimmed description has length 0 and qualifies.
func itemDescriptionPoints(r Receipt) int {
	points := 0
	for _, item := range r.Items {
		if utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))%3 != 0 {
			continue
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			continue
		}
		award := price.Mul(itemFraction).Ceil()
		if award.IsNegative() {
			continue
		}
		if award.GreaterThan(pointsCap) {
			award = pointsCap
		}
		points = addPoints(points, int(award.IntPart()))
	}
	return points
}

// 6 points if the day in the purchase date is odd
func oddDayPoints(r Receipt) int {
	parts := strings.Split(r.PurchaseDate, "-")
	if len(parts) != 3 {
		return 0
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day%2 != 1 {
		return 0
	}
	return 6
}

// 10 points if the purchase hour is 14 or 15 (2:00pm up to but not including 4:00pm)
func afternoonPoints(r Receipt) int {
	hh, _, found := strings.Cut(r.PurchaseTime, ":")
	if !found {
		return 0
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0
	}
	if hour == 14 || hour == 15 {
		return 10
	}
	return 0
}

// toCents converts a decimal amount string to whole cents
func toCents(amount string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Mul(hundred).Round(0), true
}

// addPoints adds two non-negative scores, saturating at maxPoints
func addPoints(a, b int) int {
	if a > maxPoints-b {
		return maxPoints
	}
	return a + b
}
