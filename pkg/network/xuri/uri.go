package xuri

import (
	"strconv"
	"strings"
)

// URI 是不可变的 URI 值。
//
// 所有字段只读，With* 方法返回修改了单个部分的副本。
// 零值是空 URI，String() 返回空字符串。
type URI struct {
	scheme       string
	host         string
	port         uint16
	hasPort      bool
	path         string
	query        string
	fragment     string
	user         string
	pass         string
	hasAuthority bool
}

// Components 是 URI 各部分的可导出视图，用于 [New] 构造和 [URI.Components] 导出。
type Components struct {
	Scheme       string
	User         string
	Pass         string
	Host         string
	Port         uint16
	HasPort      bool
	Path         string
	Query        string
	Fragment     string
	HasAuthority bool
}

// New 由各部分直接构造 URI，不做校验。
func New(c Components) URI {
	return URI{
		scheme:       c.Scheme,
		host:         c.Host,
		port:         c.Port,
		hasPort:      c.HasPort,
		path:         c.Path,
		query:        c.Query,
		fragment:     c.Fragment,
		user:         c.User,
		pass:         c.Pass,
		hasAuthority: c.HasAuthority,
	}
}

// Components 返回各部分的副本。
func (u URI) Components() Components {
	return Components{
		Scheme:       u.scheme,
		User:         u.user,
		Pass:         u.pass,
		Host:         u.host,
		Port:         u.port,
		HasPort:      u.hasPort,
		Path:         u.path,
		Query:        u.query,
		Fragment:     u.fragment,
		HasAuthority: u.hasAuthority,
	}
}

// Scheme 返回 scheme，如 "https"、"unix"、"urn"。
func (u URI) Scheme() string { return u.scheme }

// Host 返回主机部分，不透明 URI 为空。
func (u URI) Host() string { return u.host }

// Port 返回端口以及端口是否存在。
func (u URI) Port() (uint16, bool) { return u.port, u.hasPort }

// Path 返回路径。不透明 URI 的路径是 scheme 之后的全部内容（不含 query/fragment）。
func (u URI) Path() string { return u.path }

// Query 返回 "?" 之后的查询串，不含 "?"。
func (u URI) Query() string { return u.query }

// Fragment 返回 "#" 之后的片段，不含 "#"。
func (u URI) Fragment() string { return u.fragment }

// User 返回用户名。
func (u URI) User() string { return u.user }

// Password 返回密码。
func (u URI) Password() string { return u.pass }

// HasAuthority 报告 URI 是否带 "//" authority 部分。
func (u URI) HasAuthority() bool { return u.hasAuthority }

// IsZero 报告 u 是否为零值。
func (u URI) IsZero() bool { return u == URI{} }

// Authority 返回 [user ":" pass "@"] host [":" port]。
// 只要 user 非空就输出 "user:pass@"，即使 pass 为空。
func (u URI) Authority() string {
	var b strings.Builder
	if u.user != "" {
		b.WriteString(u.user)
		b.WriteByte(':')
		b.WriteString(u.pass)
		b.WriteByte('@')
	}
	b.WriteString(u.host)
	if u.hasPort {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(u.port), 10))
	}
	return b.String()
}

// UserInfo 返回 user ":" pass。
func (u URI) UserInfo() string {
	return u.user + ":" + u.pass
}

// Equal 比较 scheme、host、port、path、query、fragment、user、pass。
// 是否带 authority 不参与比较。
func (u URI) Equal(o URI) bool {
	return u.scheme == o.scheme &&
		u.host == o.host &&
		u.hasPort == o.hasPort && u.port == o.port &&
		u.path == o.path &&
		u.query == o.query &&
		u.fragment == o.fragment &&
		u.user == o.user &&
		u.pass == o.pass
}

// String 按 scheme ":" ["//" authority] path ["?" query] ["#" fragment] 重新组装文本。
// 空的 scheme、query、fragment 连同分隔符一起省略。
func (u URI) String() string {
	var b strings.Builder
	if u.scheme != "" {
		b.WriteString(u.scheme)
		b.WriteByte(':')
	}
	if u.hasAuthority {
		b.WriteString("//")
		b.WriteString(u.Authority())
	}
	b.WriteString(u.path)
	if u.query != "" {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// 以下 With* 方法返回只替换一个部分的副本。
//
// 设计决策: 副本总是带 authority 部分，不透明 URI（如 "urn:a:b"）
// 经 With* 修改后会以 "urn://..." 形式输出。

// WithScheme 返回替换 scheme 的副本。
func (u URI) WithScheme(scheme string) URI {
	u.scheme = scheme
	u.hasAuthority = true
	return u
}

// WithUserInfo 返回替换 user 与 pass 的副本。
func (u URI) WithUserInfo(user, pass string) URI {
	u.user, u.pass = user, pass
	u.hasAuthority = true
	return u
}

// WithHost 返回替换 host 的副本。
func (u URI) WithHost(host string) URI {
	u.host = host
	u.hasAuthority = true
	return u
}

// WithPort 返回设置端口的副本。
func (u URI) WithPort(port uint16) URI {
	u.port, u.hasPort = port, true
	u.hasAuthority = true
	return u
}

// WithoutPort 返回移除端口的副本。
func (u URI) WithoutPort() URI {
	u.port, u.hasPort = 0, false
	u.hasAuthority = true
	return u
}

// WithPath 返回替换 path 的副本。
func (u URI) WithPath(path string) URI {
	u.path = path
	u.hasAuthority = true
	return u
}

// WithQuery 返回替换 query 的副本。
func (u URI) WithQuery(query string) URI {
	u.query = query
	u.hasAuthority = true
	return u
}

// WithFragment 返回替换 fragment 的副本。
func (u URI) WithFragment(fragment string) URI {
	u.fragment = fragment
	u.hasAuthority = true
	return u
}

// MarshalText 实现 [encoding.TextMarshaler]。
func (u URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。空输入设置为零值。
func (u *URI) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = URI{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
