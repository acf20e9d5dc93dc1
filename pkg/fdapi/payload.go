package fdapi

import (
	"bytes"
	"encoding/json"
)

// Envelope 后端统一响应结构
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Payload 接口返回的原始响应体
type Payload []byte

// MarshalJSON 原样输出，空响应输出 null
func (p Payload) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(p)) == 0 {
		return []byte("null"), nil
	}
	if !json.Valid(p) {
		return json.Marshal(string(p))
	}
	return []byte(p), nil
}

// Envelope 解析统一响应结构，响应体不是 {success,...} 形式时 ok 为 false
func (p Payload) Envelope() (Envelope, bool) {
	var probe struct {
		Success *bool           `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(p, &probe); err != nil || probe.Success == nil {
		return Envelope{}, false
	}
	return Envelope{Success: *probe.Success, Message: probe.Message, Data: probe.Data}, true
}

// Data 返回业务数据：有统一响应结构时取 data，否则为整个响应体
func (p Payload) Data() (json.RawMessage, error) {
	env, ok := p.Envelope()
	if !ok {
		return json.RawMessage(p), nil
	}
	if !env.Success {
		return nil, ErrRejected.WithMessage(env.Message)
	}
	return env.Data, nil
}

// Decode 将业务数据反序列化到 v
func (p Payload) Decode(v any) error {
	data, err := p.Data()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrDecode.WithMessage("响应体为空")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ErrDecode.WithError(err)
	}
	return nil
}

// Deposit 解析单条定期存款
func (p Payload) Deposit() (*FixedDeposit, error) {
	var fd FixedDeposit
	if err := p.Decode(&fd); err != nil {
		return nil, err
	}
	return &fd, nil
}

// Deposits 解析定期存款列表
func (p Payload) Deposits() ([]FixedDeposit, error) {
	var list []FixedDeposit
	if err := p.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// DepositID 新建存款的标识，兼容 fixedDepositId 和 id 两种字段
func (p Payload) DepositID() (ID, error) {
	var ids struct {
		FixedDepositID ID `json:"fixedDepositId"`
		ID             ID `json:"id"`
	}
	if err := p.Decode(&ids); err != nil {
		return "", err
	}
	if ids.FixedDepositID != "" {
		return ids.FixedDepositID, nil
	}
	return ids.ID, nil
}
