package fdapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MinAmount 最低存款金额
const MinAmount = 1000

// 期限范围（月）
const (
	MinTenureMonths = 1
	MaxTenureMonths = 120
)

// ID 后端标识，兼容 JSON 字符串和数字
type ID string

// UnmarshalJSON 同时接受 "fd-1" 和 17
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON 规范十进制整数输出为 JSON 数字，其余输出为字符串
// "007"、"+5"、"-0" 等写法保留为字符串
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String 实现 fmt.Stringer
func (id ID) String() string {
	return string(id)
}

// Status 定期存款状态
type Status string

const (
	StatusActive  Status = "ACTIVE"  // 计息中
	StatusMatured Status = "MATURED" // 已到期
	StatusBroken  Status = "BROKEN"  // 已提前支取
)

// Scheme 存款产品
type Scheme struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"` // 年利率（%）
}

var schemes = []Scheme{
	{Name: "Regular Saver", Rate: 6.5},
	{Name: "Premium Saver", Rate: 7.0},
	{Name: "Longterm Growth", Rate: 7.5},
	{Name: "Tax Saver", Rate: 7.2},
}

// Schemes 返回产品目录副本
func Schemes() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}

// LookupScheme 按名称查找产品，忽略大小写
func LookupScheme(name string) (Scheme, bool) {
	for _, s := range schemes {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Scheme{}, false
}

func schemeNames() []any {
	names := make([]any, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name
	}
	return names
}

// BookRequest 预约定期存款请求
type BookRequest struct {
	UserID       ID      `json:"userId" form:"userId"`
	Amount       float64 `json:"amount" form:"amount"`
	Scheme       string  `json:"scheme" form:"scheme"`
	TenureMonths int     `json:"tenureMonths" form:"tenureMonths"`
}

// Validate 校验预约参数
func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Amount, validation.Required, validation.Min(float64(MinAmount))),
		validation.Field(&r.Scheme, validation.Required, validation.In(schemeNames()...)),
		validation.Field(&r.TenureMonths, validation.Required, validation.Min(MinTenureMonths), validation.Max(MaxTenureMonths)),
	)
}

// FixedDeposit 定期存款
type FixedDeposit struct {
	ID              ID      `json:"fixedDepositId"`
	UserID          ID      `json:"userId"`
	Amount          float64 `json:"amount"`
	TenureMonths    int     `json:"tenureMonths"`
	Scheme          string  `json:"scheme"`
	InterestRate    float64 `json:"interestRate"`
	StartDate       string  `json:"startDate,omitempty"`
	MaturityDate    string  `json:"maturityDate,omitempty"`
	Status          Status  `json:"status,omitempty"`
	AccruedInterest float64 `json:"accruedInterest"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}
