package routing

import "github.com/shopspring/decimal"

// PriceFromPath 票價 = 每段費率 × 邊數。長度不足 2 的路徑沒有可行的行程，計價為零。
func PriceFromPath(path []string, ratePerEdge decimal.Decimal) decimal.Decimal {
	if len(path) < 2 {
		return decimal.Zero
	}
	edges := int64(len(path) - 1)
	return ratePerEdge.Mul(decimal.NewFromInt(edges))
}
