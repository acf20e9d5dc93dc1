package storage

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tokmz/fdbook/pkg/logger"
)

// 存储键名
const (
	KeyUserID    = "userId"
	KeySessionID = "sessionId"
)

// Identity 从持久存储读取用户标识，从会话存储读取或生成会话标识
// 实现 logger.Identity，任何存储错误都回退为 anonymous 或新会话，不向调用方返回
type Identity struct {
	local   Storage
	session Storage
	now     func() time.Time
	sf      singleflight.Group
}

var _ logger.Identity = (*Identity)(nil)

// IdentityOption Identity 选项
type IdentityOption func(*Identity)

// WithClock 设置时钟
func WithClock(now func() time.Time) IdentityOption {
	return func(i *Identity) { i.now = now }
}

// NewIdentity 创建 Identity
func NewIdentity(local, session Storage, opts ...IdentityOption) *Identity {
	i := &Identity{local: local, session: session, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// UserID 返回持久存储中的用户标识，缺失时为 anonymous
func (i *Identity) UserID(ctx context.Context) string {
	id, ok, err := i.local.GetItem(ctx, KeyUserID)
	if err != nil || !ok || id == "" {
		return logger.AnonymousUser
	}
	return id
}

// SetUserID 写入用户标识，仅由外部来源（上游请求头、命令行参数）调用
func (i *Identity) SetUserID(ctx context.Context, userID string) error {
	if userID == "" {
		return i.local.RemoveItem(ctx, KeyUserID)
	}
	return i.local.SetItem(ctx, KeyUserID, userID)
}

// SessionID 返回当前会话标识，首次调用时生成并写入会话存储
// 同一作用域的并发调用合并为一次读写，保证得到同一个标识
func (i *Identity) SessionID(ctx context.Context) string {
	v, _, _ := i.sf.Do(ScopeFromContext(ctx), func() (any, error) {
		if id, ok, err := i.session.GetItem(ctx, KeySessionID); err == nil && ok && id != "" {
			return id, nil
		}
		id := logger.NewSessionID(i.now())
		// 写入失败时本次仍返回新标识，下次调用会再生成
		_ = i.session.SetItem(ctx, KeySessionID, id)
		return id, nil
	})
	return v.(string)
}

// ResetSession 清除会话标识，下次调用 SessionID 会生成新值
func (i *Identity) ResetSession(ctx context.Context) error {
	return i.session.RemoveItem(ctx, KeySessionID)
}
