package logger

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// AnonymousUser 未知用户的占位标识
const AnonymousUser = "anonymous"

type clientKey struct{}

// clientInfo 发起页面请求的客户端信息
type clientInfo struct {
	userAgent string
	pageURL   string
}

// WithClient 将客户端 user agent 和当前页面 URL 写入 Context
func WithClient(ctx context.Context, userAgent, pageURL string) context.Context {
	return context.WithValue(ctx, clientKey{}, clientInfo{userAgent: userAgent, pageURL: pageURL})
}

// clientFromContext 读取客户端信息
func clientFromContext(ctx context.Context) (clientInfo, bool) {
	if ctx == nil {
		return clientInfo{}, false
	}
	info, ok := ctx.Value(clientKey{}).(clientInfo)
	return info, ok
}

// Identity 用户/会话标识来源
// 实现必须不返回错误：读取失败时回退到 anonymous 或新会话
type Identity interface {
	UserID(ctx context.Context) string
	SessionID(ctx context.Context) string
}

// processIdentity 进程级默认实现：用户恒为 anonymous，会话在进程生命周期内固定
type processIdentity struct {
	once      sync.Once
	sessionID string
}

func newProcessIdentity() *processIdentity {
	return &processIdentity{}
}

func (p *processIdentity) UserID(context.Context) string {
	return AnonymousUser
}

func (p *processIdentity) SessionID(context.Context) string {
	p.once.Do(func() {
		p.sessionID = NewSessionID(time.Now())
	})
	return p.sessionID
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID 生成会话标识：session_<毫秒时间戳>_<9 位 base36 随机串>
func NewSessionID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}
