package fdbook

import (
	"net/url"
	"strconv"
	"strings"
)

// 页面名称
const (
	RouteBookFD = "BookFD"
	RouteFDList = "FDList"
)

// 页面路径
const (
	PathRoot   = "/"
	PathBookFD = "/book-fd"
	PathFDList = "/fd-list"
)

// QueryNewFdID FDList 页面唯一的输入参数
const QueryNewFdID = "newFdId"

// HeaderScrollPosition 历史导航时客户端上报的已保存滚动位置，格式 "left,top"
const HeaderScrollPosition = "X-Scroll-Position"

// Match 路由解析结果
type Match struct {
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	Props    map[string]string `json:"props,omitempty"`
	Redirect bool              `json:"redirect"` // 是否由其他路径重定向而来
}

// Resolve 解析页面地址
// / 和所有未知路径重定向到 BookFD，FDList 透传 newFdId 查询参数
func Resolve(rawURL string) Match {
	u, err := url.Parse(rawURL)
	if err != nil {
		return bookFDRedirect()
	}

	switch normalizePath(u.Path) {
	case PathBookFD:
		return Match{Name: RouteBookFD, Path: PathBookFD}
	case PathFDList:
		m := Match{Name: RouteFDList, Path: PathFDList}
		if id, ok := u.Query()[QueryNewFdID]; ok && len(id) > 0 {
			m.Props = map[string]string{QueryNewFdID: id[0]}
		}
		return m
	default:
		return bookFDRedirect()
	}
}

func bookFDRedirect() Match {
	return Match{Name: RouteBookFD, Path: PathBookFD, Redirect: true}
}

// normalizePath 去掉末尾斜杠，空路径视为根路径
func normalizePath(p string) string {
	if p == "" {
		return PathRoot
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return PathRoot
		}
	}
	return p
}

// ScrollPosition 页面滚动位置
type ScrollPosition struct {
	Left int `json:"left"`
	Top  int `json:"top"`
}

// ScrollBehavior 导航时的滚动策略：有保存的位置则恢复，否则回到顶部
func ScrollBehavior(saved *ScrollPosition) ScrollPosition {
	if saved != nil {
		return *saved
	}
	return ScrollPosition{}
}

// ParseScrollPosition 解析 "left,top"，格式不合法时 ok 为 false
func ParseScrollPosition(s string) (*ScrollPosition, bool) {
	left, top, found := strings.Cut(strings.TrimSpace(s), ",")
	if !found {
		return nil, false
	}
	l, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil || l < 0 {
		return nil, false
	}
	t, err := strconv.Atoi(strings.TrimSpace(top))
	if err != nil || t < 0 {
		return nil, false
	}
	return &ScrollPosition{Left: l, Top: t}, true
}
