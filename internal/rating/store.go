package rating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Store - плоский персистентный рейтинг: chat_id -> имя участника -> очки.
// Читается один раз при старте, перезаписывается целиком после каждой игры.
type Store struct {
	mu   sync.Mutex
	path string

	chatOrder []string
	chats     map[string]*board
}

// Load читает файл рейтинга. Любая ошибка чтения или разбора - это пустой
// стор и запись в лог, но не ошибка для вызывающего: бот должен подниматься
// и с битым файлом.
func Load(path string) *Store {
	s := &Store{
		path:  path,
		chats: make(map[string]*board),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("rating: read failed, starting empty", "path", path, "err", err)
		}
		return s
	}

	if err := s.decode(data); err != nil {
		slog.Warn("rating: parse failed, starting empty", "path", path, "err", err)
		s.chatOrder = nil
		s.chats = make(map[string]*board)
	}

	return s
}

func (s *Store) FilePath() string {
	return s.path
}

// Merge добавляет очки сессии к накопленным очкам чата.
func (s *Store) Merge(chatID int64, scores []Score) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strconv.FormatInt(chatID, 10)
	b, ok := s.chats[key]
	if !ok {
		b = newBoard()
		s.chats[key] = b
		s.chatOrder = append(s.chatOrder, key)
	}

	for _, sc := range scores {
		b.add(sc.Name, sc.Value)
	}
}

// Save атомарно перезаписывает файл: сначала временный файл рядом,
// потом rename. Обрыв посреди записи не оставит усечённый рейтинг.
func (s *Store) Save() error {
	s.mu.Lock()
	data, err := s.encode()
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("rating encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".rating-*.json")
	if err != nil {
		return fmt.Errorf("rating tmp file: %w", err)
	}

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		if werr != nil {
			return fmt.Errorf("rating write: %w", werr)
		}
		return fmt.Errorf("rating close: %w", cerr)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rating rename: %w", err)
	}
	return nil
}

// Leaderboard - топ чата по убыванию очков, не больше limit строк.
func (s *Store) Leaderboard(chatID int64, limit int) []Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.chats[strconv.FormatInt(chatID, 10)]
	if !ok {
		return nil
	}
	return b.sorted(limit)
}

// GlobalLeaderboard суммирует очки участника по всем чатам. Участники с
// одинаковым именем в разных чатах сливаются - так вела себя исходная игра.
func (s *Store) GlobalLeaderboard(limit int) []Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := newBoard()
	for _, key := range s.chatOrder {
		b := s.chats[key]
		for _, name := range b.order {
			merged.add(name, b.vals[name])
		}
	}
	return merged.sorted(limit)
}

func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.chatOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		bb, err := s.chats[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(bb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Store) decode(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("rating: unexpected chat key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		b := newBoard()
		if err := b.UnmarshalJSON(raw); err != nil {
			return err
		}

		if _, exists := s.chats[key]; !exists {
			s.chatOrder = append(s.chatOrder, key)
		}
		s.chats[key] = b
	}

	_, err := dec.Token()
	return err
}
