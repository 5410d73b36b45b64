package pricing

import (
	"errors"
	"time"

	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNoPrice - на товар нет ни одной записи прайс-листа с effective_date <= asOf.
// Витрина обязана считать такой товар недоступным к продаже, а не бесплатным.
var ErrNoPrice = errors.New("цена на товар не установлена")

var hundred = decimal.NewFromInt(100)

// Quote - актуальная цена товара с учетом скидки.
type Quote struct {
	Article         string              `json:"article"`
	BasePrice       decimal.Decimal     `json:"base_price"`
	DiscountType    models.DiscountType `json:"discount_type,omitempty"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	EffectivePrice  decimal.Decimal     `json:"effective_price"`
	EffectiveDate   time.Time           `json:"effective_date"`
}

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// CurrentPrice выбирает запись прайс-листа с максимальной effective_date,
// не превышающей asOf; при равных датах побеждает больший price_id
// (последняя вставленная).
func (r *Resolver) CurrentPrice(article string, asOf time.Time) (*Quote, error) {
	var entry models.PriceList
	err := r.db.
		Where("article = ? AND effective_date <= ?", article, asOf).
		Order("effective_date DESC").
		Order("price_id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPrice
		}
		return nil, storage.Translate(err)
	}

	effective := entry.Price
	if entry.DiscountPercent.IsPositive() {
		effective = entry.Price.Mul(hundred.Sub(entry.DiscountPercent)).Div(hundred).Round(2)
	}

	return &Quote{
		Article:         entry.Article,
		BasePrice:       entry.Price,
		DiscountType:    entry.DiscountType,
		DiscountPercent: entry.DiscountPercent,
		EffectivePrice:  effective,
		EffectiveDate:   entry.EffectiveDate,
	}, nil
}
