// Package sl содержит небольшие помощники для структурированного
// логирования через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error", чтобы записи
// об ошибках во всём приложении имели единый формат.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
