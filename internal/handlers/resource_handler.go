package handlers

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/httpresp"
)

// ResourceHandler exposes list/get/create/update/delete for one model.
type ResourceHandler[T any] struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	entity  string
	filters []string
	preload []string
}

type ResourceOption func(*resourceOptions)

type resourceOptions struct {
	filters []string
	preload []string
}

// WithFilters lists the *_id columns a list request may filter on.
func WithFilters(columns ...string) ResourceOption {
	return func(o *resourceOptions) { o.filters = append(o.filters, columns...) }
}

func WithPreload(associations ...string) ResourceOption {
	return func(o *resourceOptions) { o.preload = append(o.preload, associations...) }
}

func NewResourceHandler[T any](
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	entity string,
	opts ...ResourceOption,
) *ResourceHandler[T] {
	var o resourceOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &ResourceHandler[T]{
		db:      db,
		audit:   auditDispatcher,
		entity:  entity,
		filters: o.filters,
		preload: o.preload,
	}
}

func (h *ResourceHandler[T]) Register(g *gin.RouterGroup, path string) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.POST(path, h.Create)
	g.PATCH(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

func (h *ResourceHandler[T]) query(c *gin.Context) *gorm.DB {
	q := h.db.WithContext(c.Request.Context()).Model(new(T))
	for _, assoc := range h.preload {
		q = q.Preload(assoc)
	}
	return q
}

func (h *ResourceHandler[T]) List(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.query(c)
	for _, col := range h.filters {
		if c.Query(col) == "" {
			continue
		}
		v, ok := uintQuery(c, col)
		if !ok {
			httperr.BadRequest(c, "invalid_filter", col+" must be a positive integer.")
			return
		}
		q = q.Where(col+" = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, h.entity+"_count_failed", "Could not count records.")
		return
	}

	var items []T
	if err := q.
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		httperr.Internal(c, h.entity+"_list_failed", "Could not list records.")
		return
	}

	httpresp.Page(c, items, total, page, limit)
}

func (h *ResourceHandler[T]) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var item T
	if err := h.query(c).First(&item, id).Error; err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, item)
}

func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit(clause.Associations).
		Create(&item).Error; err != nil {
		h.writeError(c, err)
		return
	}

	h.record(c, "admin_create", &item, nil)
	httpresp.Created(c, item)
}

// Update applies the fields present in the body on top of the stored row.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var existing T
	if err := db.First(&existing, id).Error; err != nil {
		h.writeError(c, err)
		return
	}

	var patch map[string]any
	if err := c.ShouldBindBodyWithJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if err := c.ShouldBindBodyWithJSON(&existing); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	setID(&existing, id)

	if err := db.Model(&existing).
		Omit("id", "created_at", clause.Associations).
		Select("*").
		Updates(&existing).Error; err != nil {
		h.writeError(c, err)
		return
	}

	h.record(c, "admin_update", &existing, patch)
	httpresp.OK(c, existing)
}

func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(new(T), id)
	if res.Error != nil {
		h.writeError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, h.entity+"_not_found", "Record not found.")
		return
	}

	entityID := id
	h.audit.Dispatch(audit.Event{
		ActorID:  actorID(c),
		Action:   "admin_delete",
		Entity:   h.entity,
		EntityID: &entityID,
	})
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T]) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, h.entity+"_not_found", "Record not found.")
	case httperr.IsUniqueViolation(err):
		httperr.Conflict(c, h.entity+"_conflict", "A record with these values already exists.")
	case httperr.IsForeignKeyViolation(err):
		httperr.BadRequest(c, h.entity+"_invalid_reference", "A referenced record does not exist.")
	default:
		httperr.Internal(c, h.entity+"_storage_failed", "Storage error.")
	}
}

func (h *ResourceHandler[T]) record(c *gin.Context, action string, item *T, meta any) {
	h.audit.Dispatch(audit.Event{
		ActorID:  actorID(c),
		Action:   action,
		Entity:   h.entity,
		EntityID: idOf(item),
		Metadata: meta,
	})
}

// idOf reads the ID field every model carries.
func idOf(v any) *uint {
	f := reflect.ValueOf(v).Elem().FieldByName("ID")
	if !f.IsValid() || f.Kind() != reflect.Uint {
		return nil
	}
	id := uint(f.Uint())
	return &id
}

func setID(v any, id uint) {
	f := reflect.ValueOf(v).Elem().FieldByName("ID")
	if f.IsValid() && f.CanSet() && f.Kind() == reflect.Uint {
		f.SetUint(uint64(id))
	}
}
