package card

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/hearthstone/backend/internal/model/card"
	"github.com/zhouzirui/hearthstone/backend/internal/service/lookup"
	"github.com/zhouzirui/hearthstone/backend/pkg/utils"
)

// Handler 卡牌查询的HTTP处理器
type Handler struct {
	lookup       *lookup.Service
	store        card.Store
	defaultLimit int
}

// New 创建卡牌处理器
func New(svc *lookup.Service, store card.Store, defaultLimit int) *Handler {
	return &Handler{
		lookup:       svc,
		store:        store,
		defaultLimit: defaultLimit,
	}
}

// RegisterRoutes 注册卡牌相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.datasetHeader)
		r.Get("/cards", h.handleListCards)
		r.Get("/cards/", h.handleListCards)
		r.Get("/cards/{card}", h.handleGetCard)
		r.Get("/cards/{card}/{key}", h.handleGetCardAttribute)
	})
}

// datasetHeader 标记响应所对应的数据集版本
func (h *Handler) datasetHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Card-Dataset", h.store.Version())
		next.ServeHTTP(w, r)
	})
}

// handleListCards 按 limit 返回前 N 张卡牌
func (h *Handler) handleListCards(w http.ResponseWriter, r *http.Request) {
	limit, err := lookup.ParseLimit(r.URL.Query().Get("limit"), h.defaultLimit)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	cards, err := h.lookup.ListLimited(limit)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	utils.RespondData(w, http.StatusOK, cards)
}

// handleGetCard 按名称或ID查询卡牌，?path= 时返回 JSONPath 选取结果
func (h *Handler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	key, err := lookupKey(r)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	matches := h.lookup.Resolve(key)

	expr := r.URL.Query().Get("path")
	if expr == "" {
		utils.RespondData(w, http.StatusOK, matches)
		return
	}

	first, err := lookup.FirstOrFail(matches)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	selected, err := lookup.SelectPath(first, expr)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	utils.RespondData(w, http.StatusOK, selected)
}

// handleGetCardAttribute 返回首个匹配卡牌的单个属性
func (h *Handler) handleGetCardAttribute(w http.ResponseWriter, r *http.Request) {
	key, err := lookupKey(r)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	first, err := lookup.FirstOrFail(h.lookup.Resolve(key))
	if err != nil {
		respondLookupError(w, err)
		return
	}

	value, _ := lookup.ProjectAttribute(first, pathParam(r, "key"))
	utils.RespondData(w, http.StatusOK, value)
}

// lookupKey builds the lookup key from the {card} segment and the optional
// ?by=name|id selector.
func lookupKey(r *http.Request) (lookup.Key, error) {
	kind, err := lookup.ParseKeyKind(r.URL.Query().Get("by"))
	if err != nil {
		return lookup.Key{}, err
	}
	return lookup.Key{Kind: kind, Value: pathParam(r, "card")}, nil
}

// pathParam returns a decoded URL parameter. chi matches on RawPath when it is
// set, in which case the captured segment is still escaped.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

func respondLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lookup.ErrInvalidParameter):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lookup.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[cards] unexpected lookup error: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
