package domain

// Caller 请求方身份：owner 标识 + 是否拥有全局视图（superuser）
type Caller struct {
	OwnerID    string `json:"owner_id"`
	Privileged bool   `json:"is_superuser"`
}

// Owns 非特权调用方只能访问自己名下的数据
func (c Caller) Owns(ownerID string) bool {
	return c.Privileged || ownerID == c.OwnerID
}
