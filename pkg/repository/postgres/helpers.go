package postgres

import "strings"

// prefixColumns добавляет алиас таблицы к списку колонок для join-запросов.
func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i := range parts {
		parts[i] = prefix + strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ", ")
}
