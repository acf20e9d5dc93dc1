package fdapi

import "github.com/tokmz/fdbook/pkg/errors"

// 5000 段错误码：定期存款接口相关
var (
	// ErrInvalidBooking 预约参数不合法
	ErrInvalidBooking = errors.New(5001, 400, "预约参数不合法", nil)
	// ErrDecode 响应解析失败
	ErrDecode = errors.New(5002, 502, "响应解析失败", nil)
	// ErrRejected 后端返回 success=false
	ErrRejected = errors.New(5003, 502, "后端拒绝请求", nil)
	// ErrEmptyUserID 缺少用户 ID
	ErrEmptyUserID = errors.New(5004, 400, "缺少用户ID", nil)
)
