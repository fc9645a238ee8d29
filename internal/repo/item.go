package repo

import (
	"Crowdfunding/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// NewItem: данные для создания кампании.
type NewItem struct {
	User        Ref // владелец
	Name        string
	Summary     string
	EndDate     time.Time
	FundingUnit int64
	TargetMoney int64
}

// ItemPatch описывает частичное обновление кампании, nil-поля не меняются.
// Пустая строка в Summary очищает описание.
type ItemPatch struct {
	Name            *string
	Summary         *string
	EndDate         *time.Time
	FundingUnit     *int64
	ParticipantSize *int64
	CurrentMoney    *int64
}

// Empty сообщает, что патч ничего не меняет.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Summary == nil && p.EndDate == nil &&
		p.FundingUnit == nil && p.ParticipantSize == nil && p.CurrentMoney == nil
}

// ItemDetail: кампания вместе с описанием и именем владельца.
type ItemDetail struct {
	ItemID          string
	Name            string
	UserName        string
	Summary         string
	EndDate         time.Time
	CreateDate      time.Time
	TargetMoney     int64
	FundingUnit     int64
	CurrentMoney    int64
	ParticipantSize int64
	FundingGage     float64
}

// ItemSummary: строка списка кампаний.
type ItemSummary struct {
	Name         string
	UserName     string
	CurrentMoney int64
	Percentage   float64
	EndDate      time.Time
	CreateDate   time.Time
}

// ItemRepository определяет операции над кампаниями (item + itemContents).
type ItemRepository interface {
	Create(ctx context.Context, n NewItem) (ItemCode, error)
	Read(ctx context.Context, ref Ref) (*ItemDetail, error)
	Update(ctx context.Context, ref Ref, p ItemPatch) (ItemCode, error)
	Delete(ctx context.Context, ref Ref) (ItemCode, error)

	// SearchByName: кампании, имя которых содержит подстроку.
	SearchByName(ctx context.Context, substring string) ([]ItemSummary, error)
	// SortByCreateDate: все кампании от старых к новым.
	SortByCreateDate(ctx context.Context) ([]ItemSummary, error)
	// SortByFundingMoney: все кампании по убыванию собранной суммы.
	SortByFundingMoney(ctx context.Context) ([]ItemSummary, error)

	// Donate атомарно увеличивает число участников на 1 и сумму на funding_unit.
	Donate(ctx context.Context, ref Ref) (ItemCode, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, n NewItem) (ItemCode, error) {
	code := ItemUnexpected
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := findUser(tx, n.User)
		if err != nil {
			return err
		}
		if owner == nil {
			code = ItemUserNotExists
			return nil
		}

		item := &model.Item{
			ItemID:      model.GenerateID(),
			UserID:      owner.ID,
			Name:        n.Name,
			EndDate:     n.EndDate,
			TargetMoney: n.TargetMoney,
			FundingUnit: n.FundingUnit,
		}
		contents := &model.ItemContents{ItemID: item.ItemID, Summary: n.Summary}
		if code = validateItem(item, contents); code != ItemSucceed {
			return nil
		}

		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return tx.Create(contents).Error
	})
	switch {
	case err == nil:
		return code, nil
	case isConflict(err):
		return ItemAlreadyExists, nil
	default:
		return ItemUnexpected, fmt.Errorf("create item %q: %w", n.Name, err)
	}
}

func (r *itemRepo) Read(ctx context.Context, ref Ref) (*ItemDetail, error) {
	var detail *ItemDetail
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		it, err := findItem(tx, ref)
		if err != nil || it == nil {
			return err
		}
		contents, err := findContents(tx, it.ItemID)
		if err != nil {
			return err
		}
		owner, err := findUser(tx, ByID(it.UserID))
		if err != nil {
			return err
		}

		detail = &ItemDetail{
			ItemID:          it.ItemID,
			Name:            it.Name,
			Summary:         contents.Summary,
			EndDate:         it.EndDate,
			CreateDate:      it.CreateDate,
			TargetMoney:     it.TargetMoney,
			FundingUnit:     it.FundingUnit,
			CurrentMoney:    it.CurrentMoney,
			ParticipantSize: it.ParticipantSize,
			FundingGage:     it.FundingGage(),
		}
		if owner != nil {
			detail.UserName = owner.Name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read item %s: %w", ref, err)
	}
	return detail, nil
}

func (r *itemRepo) Update(ctx context.Context, ref Ref, p ItemPatch) (ItemCode, error) {
	code := ItemUnexpected
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		it, err := findItem(tx, ref)
		if err != nil {
			return err
		}
		if it == nil {
			code = ItemNotExists
			return nil
		}
		// пустой патч: запись есть, менять нечего
		if p.Empty() {
			code = ItemSucceed
			return nil
		}
		contents, err := findContents(tx, it.ItemID)
		if err != nil {
			return err
		}

		columns := make(map[string]any)
		if p.Name != nil {
			it.Name = *p.Name
			columns["name"] = *p.Name
		}
		if p.EndDate != nil {
			it.EndDate = *p.EndDate
			columns["end_date"] = *p.EndDate
		}
		if p.FundingUnit != nil {
			it.FundingUnit = *p.FundingUnit
			columns["funding_unit"] = *p.FundingUnit
		}
		if p.ParticipantSize != nil {
			it.ParticipantSize = *p.ParticipantSize
			columns["participant_size"] = *p.ParticipantSize
		}
		if p.CurrentMoney != nil {
			it.CurrentMoney = *p.CurrentMoney
			columns["current_money"] = *p.CurrentMoney
		}
		if p.Summary != nil {
			contents.Summary = *p.Summary
		}
		if code = validateItem(it, contents); code != ItemSucceed {
			return nil
		}

		if len(columns) > 0 {
			if err := tx.Model(&model.Item{}).Where("item_id = ?", it.ItemID).Updates(columns).Error; err != nil {
				return err
			}
		}
		if p.Summary != nil {
			return tx.Save(contents).Error
		}
		return nil
	})
	switch {
	case err == nil:
		return code, nil
	case isConflict(err):
		return ItemAlreadyExists, nil
	default:
		return ItemUnexpected, fmt.Errorf("update item %s: %w", ref, err)
	}
}

func (r *itemRepo) Delete(ctx context.Context, ref Ref) (ItemCode, error) {
	code := ItemUnexpected
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		it, err := findItem(tx, ref)
		if err != nil {
			return err
		}
		if it == nil {
			code = ItemNotExists
			return nil
		}
		if err := tx.Where("item_id = ?", it.ItemID).Delete(&model.ItemContents{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", it.ItemID).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		code = ItemSucceed
		return nil
	})
	if err != nil {
		return ItemUnexpected, fmt.Errorf("delete item %s: %w", ref, err)
	}
	return code, nil
}

func (r *itemRepo) SearchByName(ctx context.Context, substring string) ([]ItemSummary, error) {
	out, err := r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(containsClause(q, "item.name"), substring).Order("item.create_date")
	})
	if err != nil {
		return nil, fmt.Errorf("search items %q: %w", substring, err)
	}
	return out, nil
}

func (r *itemRepo) SortByCreateDate(ctx context.Context) ([]ItemSummary, error) {
	out, err := r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("item.create_date ASC")
	})
	if err != nil {
		return nil, fmt.Errorf("sort items by create date: %w", err)
	}
	return out, nil
}

func (r *itemRepo) SortByFundingMoney(ctx context.Context) ([]ItemSummary, error) {
	out, err := r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("item.current_money DESC").Order("item.create_date ASC")
	})
	if err != nil {
		return nil, fmt.Errorf("sort items by funding money: %w", err)
	}
	return out, nil
}

func (r *itemRepo) Donate(ctx context.Context, ref Ref) (ItemCode, error) {
	col, err := ref.column("item_id")
	if err != nil {
		return ItemUnexpected, err
	}

	code := ItemUnexpected
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// одним UPDATE, чтобы параллельные пожертвования не терялись
		res := tx.Model(&model.Item{}).Where(col+" = ?", ref.Value).UpdateColumns(map[string]any{
			"participant_size": gorm.Expr("participant_size + ?", 1),
			"current_money":    gorm.Expr("current_money + funding_unit"),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			code = ItemNotExists
		} else {
			code = ItemSucceed
		}
		return nil
	})
	if err != nil {
		return ItemUnexpected, fmt.Errorf("donate to item %s: %w", ref, err)
	}
	return code, nil
}

// itemRow: результат выборки item JOIN user для списков.
type itemRow struct {
	Name         string
	UserName     string
	CurrentMoney int64
	TargetMoney  int64
	EndDate      time.Time
	CreateDate   time.Time
}

func (r *itemRepo) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]ItemSummary, error) {
	var rows []itemRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Table("item").
			Select(`item.name AS name, "user".name AS user_name, item.current_money AS current_money, ` +
				`item.target_money AS target_money, item.end_date AS end_date, item.create_date AS create_date`).
			Joins(`JOIN "user" ON "user".id = item.user_id`)
		return scope(q).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	out := make([]ItemSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ItemSummary{
			Name:         row.Name,
			UserName:     row.UserName,
			CurrentMoney: row.CurrentMoney,
			Percentage:   model.Percentage(row.CurrentMoney, row.TargetMoney),
			EndDate:      row.EndDate,
			CreateDate:   row.CreateDate,
		})
	}
	return out, nil
}

// validateItem проверяет кампанию, затем описание; возвращает код первого невалидного поля.
func validateItem(it *model.Item, contents *model.ItemContents) ItemCode {
	if code := itemCodeFor(model.InvalidField(it.Validate())); code != ItemSucceed {
		return code
	}
	return itemCodeFor(model.InvalidField(contents.Validate()))
}

func findItem(tx *gorm.DB, ref Ref) (*model.Item, error) {
	col, err := ref.column("item_id")
	if err != nil {
		return nil, err
	}
	var it model.Item
	res := tx.Where(col+" = ?", ref.Value).Limit(1).Find(&it)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &it, nil
}

// findContents возвращает описание кампании; для отсутствующей строки пустое описание.
func findContents(tx *gorm.DB, itemID string) (*model.ItemContents, error) {
	contents := model.ItemContents{ItemID: itemID}
	if err := tx.Where("item_id = ?", itemID).Limit(1).Find(&contents).Error; err != nil {
		return nil, err
	}
	return &contents, nil
}
