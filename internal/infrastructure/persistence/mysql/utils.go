package mysql

import (
	"strings"
)

// likeEscaper 转义LIKE通配符，MySQL默认转义字符为反斜杠
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 构造大小写不敏感的子串匹配模式
// 关键词先转小写，SQL侧对列使用LOWER()
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}
