package handlers

import (
	"Crowdfunding/internal/repo"
	"Crowdfunding/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler обрабатывает /item/*.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger

	now func() time.Time
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger, now: time.Now}
}

// createItemRequest: все поля обязательны.
type createItemRequest struct {
	UserName    *string `json:"user_name"`
	EndDate     *string `json:"end_date"`
	Summary     *string `json:"summary"`
	FundingUnit *int64  `json:"funding_unit"`
	TargetMoney *int64  `json:"target_money"`
}

// updateItemRequest: присутствующие поля перезаписываются.
type updateItemRequest struct {
	Name            *string `json:"name"`
	Summary         *string `json:"summary"`
	EndDate         *string `json:"end_date"`
	FundingUnit     *int64  `json:"funding_unit"`
	ParticipantSize *int64  `json:"participant_size"`
	CurrentMoney    *int64  `json:"current_money"`
}

// ItemDTO: кампания в ответе GET /item/{name}.
type ItemDTO struct {
	ItemName        string  `json:"item_name"`
	UserName        string  `json:"user_name"`
	Summary         string  `json:"summary"`
	EndDate         string  `json:"end_date"`
	FundingUnit     int64   `json:"funding_unit"`
	TargetMoney     int64   `json:"target_money"`
	CurrentMoney    int64   `json:"current_money"`
	ParticipantSize int64   `json:"participant_size"`
	FundingGage     float64 `json:"funding_gage"`
}

// ItemListEntry: строка списка кампаний.
type ItemListEntry struct {
	ItemName     string `json:"item_name"`
	UserName     string `json:"user_name"`
	CurrentMoney int64  `json:"current_money"`
	Percentage   int64  `json:"percentage"`
	DDay         int    `json:"d-day"` // > 0: срок прошёл, < 0: дней до окончания
}

var errMissingField = errors.New("required field is missing")

func (req createItemRequest) toNewItem(name string) (repo.NewItem, error) {
	if req.UserName == nil || req.EndDate == nil || req.Summary == nil ||
		req.FundingUnit == nil || req.TargetMoney == nil {
		return repo.NewItem{}, errMissingField
	}
	end, err := parseDate(*req.EndDate)
	if err != nil {
		return repo.NewItem{}, err
	}
	return repo.NewItem{
		User:        repo.ByName(*req.UserName),
		Name:        name,
		Summary:     *req.Summary,
		EndDate:     end,
		FundingUnit: *req.FundingUnit,
		TargetMoney: *req.TargetMoney,
	}, nil
}

func (req updateItemRequest) toPatch() (repo.ItemPatch, error) {
	p := repo.ItemPatch{
		Name:            req.Name,
		Summary:         req.Summary,
		FundingUnit:     req.FundingUnit,
		ParticipantSize: req.ParticipantSize,
		CurrentMoney:    req.CurrentMoney,
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return repo.ItemPatch{}, err
		}
		p.EndDate = &end
	}
	return p, nil
}

// Create создаёт кампанию; имя берётся из пути.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("bad create item request", "item", name, "error", err)
		writeResult(w, ResultError)
		return
	}
	n, err := req.toNewItem(name)
	if err != nil {
		h.Logger.Warnw("bad create item request", "item", name, "error", err)
		writeResult(w, ResultError)
		return
	}

	ok, err := h.ItemService.AddItem(r.Context(), n)
	if err != nil {
		h.Logger.Errorw("add item failed", "item", name, "error", err)
		writeResult(w, ResultError)
		return
	}
	writeResult(w, resultOf(ok))
}

// Get возвращает кампанию; при ошибке и отсутствии отдаёт FAILED с data = null.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, err := h.ItemService.GetItem(r.Context(), name)
	if err != nil {
		h.Logger.Errorw("get item failed", "item", name, "error", err)
		writeData(w, ResultFailed, nil)
		return
	}
	if d == nil {
		writeData(w, ResultFailed, nil)
		return
	}
	writeData(w, ResultOK, ItemDTO{
		ItemName:        d.Name,
		UserName:        d.UserName,
		Summary:         d.Summary,
		EndDate:         formatDate(d.EndDate),
		FundingUnit:     d.FundingUnit,
		TargetMoney:     d.TargetMoney,
		CurrentMoney:    d.CurrentMoney,
		ParticipantSize: d.ParticipantSize,
		FundingGage:     d.FundingGage,
	})
}

// Update частично обновляет кампанию.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("bad update item request", "item", name, "error", err)
		writeResult(w, ResultFailed)
		return
	}
	p, err := req.toPatch()
	if err != nil {
		h.Logger.Warnw("bad update item request", "item", name, "error", err)
		writeResult(w, ResultFailed)
		return
	}

	ok, err := h.ItemService.UpdateItem(r.Context(), name, p)
	if err != nil {
		h.Logger.Errorw("update item failed", "item", name, "error", err)
		writeResult(w, ResultFailed)
		return
	}
	writeResult(w, resultOf(ok))
}

// Delete удаляет кампанию и её описание.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok, err := h.ItemService.RemoveItem(r.Context(), name)
	if err != nil {
		h.Logger.Errorw("remove item failed", "item", name, "error", err)
		writeResult(w, ResultFailed)
		return
	}
	writeResult(w, resultOf(ok))
}

// Donate засчитывает одно пожертвование.
func (h *ItemHandler) Donate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok, err := h.ItemService.DonateFunding(r.Context(), name)
	if err != nil {
		h.Logger.Errorw("donate failed", "item", name, "error", err)
		writeResult(w, ResultFailed)
		return
	}
	writeResult(w, resultOf(ok))
}

// List отдаёт кампании по ?search= или ?order_by=; search важнее.
// Без обоих параметров отдаётся пустой список.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		items []repo.ItemSummary
		err   error
	)
	switch {
	case q.Has("search"):
		items, err = h.ItemService.GetList(r.Context(), q.Get("search"))
	case q.Has("order_by"):
		items, err = h.ItemService.Sort(r.Context(), q.Get("order_by"))
	}
	if err != nil {
		h.Logger.Errorw("list items failed", "query", r.URL.RawQuery, "error", err)
		writeResult(w, ResultError)
		return
	}

	now := h.now()
	out := make([]ItemListEntry, 0, len(items))
	for _, it := range items {
		out = append(out, ItemListEntry{
			ItemName:     it.Name,
			UserName:     it.UserName,
			CurrentMoney: it.CurrentMoney,
			Percentage:   int64(it.Percentage),
			DDay:         dDay(now, it.EndDate),
		})
	}
	writeData(w, ResultOK, out)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func formatDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// dDay: целые сутки от end до now с округлением вниз.
// Считается по Unix-секундам: time.Duration ограничен ~292 годами.
func dDay(now, end time.Time) int {
	const day = 24 * 60 * 60
	diff := now.Unix() - end.Unix()
	days := diff / day
	if diff%day < 0 {
		days--
	}
	return int(days)
}
