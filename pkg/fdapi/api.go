package fdapi

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tokmz/fdbook/pkg/request"
	"github.com/tokmz/fdbook/pkg/tracing"
)

// 接口路径，相对于客户端 BaseURL
const (
	PathBook     = "/fd/book"
	PathUserList = "/fd/user/"
)

// API 定期存款接口
// 不做校验和重试，失败已由客户端拦截器记录，原样返回给调用方
type API struct {
	client *request.Client
}

// New 创建定期存款接口
func New(client *request.Client) *API {
	return &API{client: client}
}

// Client 返回底层 HTTP 客户端
func (a *API) Client() *request.Client {
	return a.client
}

// BookFD 预约定期存款：POST /fd/book
func (a *API) BookFD(ctx context.Context, payload any) (Payload, error) {
	ctx, span := tracing.StartSpan(ctx, "fdapi.BookFD")
	resp, err := a.client.Post(PathBook).SetContext(ctx).SetBody(payload).Do()
	tracing.End(span, err)
	if err != nil {
		return nil, err
	}
	return Payload(resp.Body), nil
}

// GetFDs 查询用户的定期存款：GET /fd/user/{userId}
func (a *API) GetFDs(ctx context.Context, userID string) (Payload, error) {
	ctx, span := tracing.StartSpan(ctx, "fdapi.GetFDs", attribute.String("fd.user_id", userID))
	resp, err := a.client.Get(UserPath(userID)).SetContext(ctx).Do()
	tracing.End(span, err)
	if err != nil {
		return nil, err
	}
	return Payload(resp.Body), nil
}

// UserPath 用户存款列表的接口路径
func UserPath(userID string) string {
	return PathUserList + url.PathEscape(userID)
}
