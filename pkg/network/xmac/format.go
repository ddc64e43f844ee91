package xmac

import "fmt"

// Format 定义 MAC 地址的格式化风格。
type Format uint8

const (
	// FormatColonUpper 冒号分隔，大写：AA:BB:CC:DD:EE:FF（规范形式）
	FormatColonUpper Format = iota
	// FormatColon 冒号分隔，小写：aa:bb:cc:dd:ee:ff
	FormatColon
	// FormatDash 短线分隔，大写：AA-BB-CC-DD-EE-FF
	FormatDash
	// FormatBare 无分隔符，小写：aabbccddeeff
	FormatBare
)

// 十六进制字符表。
const (
	hexLower = "0123456789abcdef"
	hexUpper = "0123456789ABCDEF"
)

// String 返回 Format 的名称，与 [ParseFormat] 互逆。
func (f Format) String() string {
	switch f {
	case FormatColonUpper:
		return "COLON"
	case FormatColon:
		return "colon"
	case FormatDash:
		return "dash"
	case FormatBare:
		return "bare"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat 将名称（"COLON"、"colon"、"dash"、"bare"）转换为 Format。
func ParseFormat(name string) (Format, error) {
	switch name {
	case "COLON":
		return FormatColonUpper, nil
	case "colon":
		return FormatColon, nil
	case "dash":
		return FormatDash, nil
	case "bare":
		return FormatBare, nil
	default:
		return 0, fmt.Errorf("xmac: unknown format %q", name)
	}
}

// String 返回规范形式 OUI() + ":" + DeviceID()，即大写冒号格式。
// 未设置的地址返回空字符串。
func (a Addr) String() string {
	return a.FormatString(FormatColonUpper)
}

// OUI 返回前 3 字节的大写冒号形式，如 "00:1A:2B"。
// 未设置的地址返回空字符串。
func (a Addr) OUI() string {
	if !a.set {
		return ""
	}
	return formatHalf(a.bytes[0], a.bytes[1], a.bytes[2])
}

// DeviceID 返回后 3 字节的大写冒号形式，如 "3C:4D:5E"。
// 未设置的地址返回空字符串。
func (a Addr) DeviceID() string {
	if !a.set {
		return ""
	}
	return formatHalf(a.bytes[3], a.bytes[4], a.bytes[5])
}

// FormatString 按指定格式返回 MAC 地址字符串。
// 未设置的地址返回空字符串，未知格式按规范形式输出。
func (a Addr) FormatString(f Format) string {
	if !a.set {
		return ""
	}
	switch f {
	case FormatColon:
		return formatWithSep(a.bytes, ':', hexLower)
	case FormatDash:
		return formatWithSep(a.bytes, '-', hexUpper)
	case FormatBare:
		return formatBare(a.bytes, hexLower)
	case FormatColonUpper:
		return formatWithSep(a.bytes, ':', hexUpper)
	default:
		return formatWithSep(a.bytes, ':', hexUpper)
	}
}

func formatHalf(b0, b1, b2 byte) string {
	var buf [8]byte
	buf[0] = hexUpper[b0>>4]
	buf[1] = hexUpper[b0&0x0f]
	buf[2] = ':'
	buf[3] = hexUpper[b1>>4]
	buf[4] = hexUpper[b1&0x0f]
	buf[5] = ':'
	buf[6] = hexUpper[b2>>4]
	buf[7] = hexUpper[b2&0x0f]
	return string(buf[:])
}

// formatWithSep 使用指定分隔符格式化为 17 字符。
func formatWithSep(b [6]byte, sep byte, hex string) string {
	var buf [canonicalLen]byte
	for i := range 6 {
		buf[i*3] = hex[b[i]>>4]
		buf[i*3+1] = hex[b[i]&0x0f]
		if i < 5 {
			buf[i*3+2] = sep
		}
	}
	return string(buf[:])
}

// formatBare 格式化为无分隔符的 12 字符。
func formatBare(b [6]byte, hex string) string {
	var buf [12]byte
	for i := range 6 {
		buf[i*2] = hex[b[i]>>4]
		buf[i*2+1] = hex[b[i]&0x0f]
	}
	return string(buf[:])
}
