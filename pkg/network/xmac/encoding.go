package xmac

// MarshalText 实现 [encoding.TextMarshaler]，输出规范大写冒号形式。
// 未设置的地址输出空字节切片。
func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，按 [Parse] 的严格规则解析。
// 空输入设置为未设置的零值。
func (a *Addr) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Addr{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
