package usecase

import (
	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// チェックアウト1行分
type CheckoutLine struct {
	ProductID int64
	Quantity  int64
}

// Businessごとに分割した注文グループ。
// スキーマ上1注文=1店舗なので、複数店舗のカートはグループ数ぶん注文を作る。
type orderGroup struct {
	BusinessID int64
	Total      int64
	Items      []model.OrderItem
}

// カート行を所属Businessごとにグループ化する。
// 価格はpricing（DBから引いた確定値）だけを使う。
// グループは最初に出てきた順、グループ内は入力順を保つ。
func partitionByBusiness(lines []CheckoutLine, pricing map[int64]repo.ProductPricing) []orderGroup {
	groups := make([]orderGroup, 0)
	index := make(map[int64]int)

	for _, line := range lines {
		p := pricing[line.ProductID]

		i, ok := index[p.BusinessID]
		if !ok {
			i = len(groups)
			index[p.BusinessID] = i
			groups = append(groups, orderGroup{BusinessID: p.BusinessID})
		}

		groups[i].Items = append(groups[i].Items, model.OrderItem{
			ProductID:           line.ProductID,
			ProductNameSnapshot: p.Name,
			UnitPriceSnapshot:   p.Price,
			Quantity:            line.Quantity,
		})
		groups[i].Total += p.Price * line.Quantity
	}

	return groups
}
