package fdbook

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/tokmz/fdbook/pkg/fdapi"
	"github.com/tokmz/fdbook/pkg/logger"
	"github.com/tokmz/fdbook/pkg/storage"
)

// Views 页面视图，渲染 JSON 视图模型
type Views struct {
	api      *fdapi.API
	identity *storage.Identity
	log      logger.Logger
}

// NewViews 创建页面视图
func NewViews(api *fdapi.API, identity *storage.Identity, log logger.Logger) *Views {
	if log == nil {
		log = logger.NewNop()
	}
	return &Views{api: api, identity: identity, log: log}
}

// BookFDView 预约页面视图模型
type BookFDView struct {
	Route     Match          `json:"route"`
	Scroll    ScrollPosition `json:"scroll"`
	UserID    string         `json:"userId"`
	Schemes   []fdapi.Scheme `json:"schemes"`
	MinAmount int            `json:"minAmount"`
}

// FDListQuery 列表页面参数
type FDListQuery struct {
	NewFdID string `form:"newFdId"`
	UserID  string `form:"userId"`
}

// FDListView 列表页面视图模型
type FDListView struct {
	Route    Match                `json:"route"`
	Scroll   ScrollPosition       `json:"scroll"`
	UserID   string               `json:"userId"`
	NewFdID  string               `json:"newFdId,omitempty"`
	Deposits []fdapi.FixedDeposit `json:"deposits"`
}

// Register 注册页面路由：/ 和未知路径重定向到 /book-fd
func (v *Views) Register(e *Engine) {
	rg := e.RouterGroup()

	HandleOnly[BookFDView](rg.GET, PathBookFD, v.bookForm)
	rg.POST(PathBookFD, v.book)
	Handle[FDListQuery, FDListView](rg.GET, PathFDList, v.list)

	rg.GET(PathRoot, redirect)
	e.NoRoute(redirect)
}

// redirect 按路由表重定向
func redirect(c *Context) {
	c.Redirect(http.StatusFound, Resolve(c.Request().URL.String()).Path)
}

func (v *Views) bookForm(c *Context) (*BookFDView, error) {
	return &BookFDView{
		Route:     Resolve(c.Request().URL.String()),
		Scroll:    GetContextScroll(c),
		UserID:    v.userID(c.RequestContext()),
		Schemes:   fdapi.Schemes(),
		MinAmount: fdapi.MinAmount,
	}, nil
}

// book 提交预约，成功后 303 跳转到列表页并带上新存款 ID
func (v *Views) book(c *Context) {
	var req fdapi.BookRequest
	if err := c.Bind(&req); err != nil {
		return
	}

	ctx := c.RequestContext()
	if req.UserID == "" {
		req.UserID = fdapi.ID(v.userID(ctx))
	}
	if err := req.Validate(); err != nil {
		c.RespondError(fdapi.ErrInvalidBooking.WithError(err))
		return
	}

	v.log.LogUserAction(ctx, "book_fd",
		zap.Float64("amount", req.Amount),
		zap.String("scheme", req.Scheme),
		zap.Int("tenure_months", req.TenureMonths),
	)

	payload, err := v.api.BookFD(ctx, req)
	if err != nil {
		c.RespondError(err)
		return
	}
	// 预约已成功，响应体无法解析时仍跳转到列表页，只是不带新存款 ID
	id, err := payload.DepositID()
	if err != nil {
		v.log.WarnContext(ctx, "booking response without deposit id", zap.Error(err))
		id = ""
	}

	location := PathFDList
	if id != "" {
		location += "?" + url.Values{QueryNewFdID: {id.String()}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, location)
}

func (v *Views) list(c *Context, q *FDListQuery) (*FDListView, error) {
	ctx := c.RequestContext()
	userID := q.UserID
	if userID == "" {
		userID = v.userID(ctx)
	}
	if userID == "" {
		return nil, fdapi.ErrEmptyUserID
	}

	v.log.LogUserAction(ctx, "view_fd_list", zap.String("new_fd_id", q.NewFdID))

	payload, err := v.api.GetFDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	deposits, err := payload.Deposits()
	if err != nil {
		return nil, err
	}
	if deposits == nil {
		deposits = []fdapi.FixedDeposit{}
	}

	return &FDListView{
		Route:    Resolve(c.Request().URL.String()),
		Scroll:   GetContextScroll(c),
		UserID:   userID,
		NewFdID:  q.NewFdID,
		Deposits: deposits,
	}, nil
}

// userID 当前客户端的用户标识，未设置时为空
func (v *Views) userID(ctx context.Context) string {
	if v.identity == nil {
		return ""
	}
	if id := v.identity.UserID(ctx); id != logger.AnonymousUser {
		return id
	}
	return ""
}

// Mount 创建页面服务：日志、客户端作用域、滚动策略中间件加页面路由
func Mount(api *fdapi.API, identity *storage.Identity, log logger.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	e := New(append([]Option{WithLogger(log)}, opts...)...)
	e.Use(Logger(log), ClientScope(identity, log), Scroll())
	NewViews(api, identity, log).Register(e)
	return e
}
