package rating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Score - строка таблицы рейтинга.
type Score struct {
	Name  string
	Value int
}

// board - очки участников одного чата. Порядок вставки сохраняется,
// чтобы при равных очках первым в таблице оставался тот, кто забил раньше.
type board struct {
	order []string
	vals  map[string]int
}

func newBoard() *board {
	return &board{vals: make(map[string]int)}
}

func (b *board) add(name string, value int) {
	if _, ok := b.vals[name]; !ok {
		b.order = append(b.order, name)
	}
	b.vals[name] += value
}

// sorted возвращает очки по убыванию; равные очки - в порядке вставки.
func (b *board) sorted(limit int) []Score {
	out := make([]Score, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, Score{Name: name, Value: b.vals[name]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MarshalJSON сериализует доску как плоский объект {имя: очки},
// сохраняя порядок ключей.
func (b *board) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(b.vals[name]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *board) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	b.order = nil
	b.vals = make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("rating board: unexpected key token %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("rating board: score for %q is not a number", name)
		}
		v, err := num.Int64()
		if err != nil {
			return fmt.Errorf("rating board: score for %q: %w", name, err)
		}

		b.add(name, int(v))
	}

	_, err := dec.Token() // закрывающая '}'
	return err
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("rating: expected %q, got %v", want, tok)
	}
	return nil
}
