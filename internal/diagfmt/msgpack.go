package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack кодирует дамп (токены, AST, диагностики) в бинарную форму.
// Формат совместим с json-дампами: те же структуры, те же имена полей.
func Msgpack(w io.Writer, v any) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("msgpack")
	return enc.Encode(v)
}
