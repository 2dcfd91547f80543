package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/annel0/rogue-terrain/internal/eventbus"
	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/level"
	"github.com/annel0/rogue-terrain/internal/logging"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/vec"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

const levelKeyPrefix = "level:"

// ErrLevelNotFound уровень с таким идентификатором не сохранялся
var ErrLevelNotFound = errors.New("уровень не найден")

// LevelStorage хранит уровни в BadgerDB: JSON-снимок, сжатый zstd
type LevelStorage struct {
	db      *badger.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	mutex   sync.RWMutex
	isReady bool
}

// levelSnapshot сохраняемое состояние уровня.
// Клетки идут построчно, nil означает пустую позицию.
type levelSnapshot struct {
	Width     int                     `json:"width"`
	Height    int                     `json:"height"`
	Squares   []*square.Record        `json:"squares"`
	Furniture map[string]string       `json:"furniture,omitempty"` // Ключ - упакованные координаты "x:y"
	Items     map[string][]*item.Item `json:"items,omitempty"`
}

// NewLevelStorage открывает хранилище в каталоге dataPath/levels
func NewLevelStorage(dataPath string) (*LevelStorage, error) {
	opts := badger.DefaultOptions(filepath.Join(dataPath, "levels"))
	opts.Logger = nil // Отключаем логирование BadgerDB
	return open(opts)
}

// NewInMemoryLevelStorage хранилище без диска (тесты, одноразовые прогоны)
func NewInMemoryLevelStorage() (*LevelStorage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*LevelStorage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	return &LevelStorage{
		db:      db,
		encoder: encoder,
		decoder: decoder,
		isReady: true,
	}, nil
}

// Close закрывает хранилище данных
func (ls *LevelStorage) Close() error {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()

	if !ls.isReady {
		return nil
	}

	ls.isReady = false
	ls.encoder.Close()
	ls.decoder.Close()
	return ls.db.Close()
}

func levelKey(id string) []byte {
	return []byte(levelKeyPrefix + id)
}

// Save сохраняет уровень под идентификатором id, перезаписывая прежний
func (ls *LevelStorage) Save(ctx context.Context, id string, lvl *level.Level) error {
	ls.mutex.RLock()
	defer ls.mutex.RUnlock()

	if !ls.isReady {
		return fmt.Errorf("хранилище не готово")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := snapshotOf(lvl)
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ошибка сериализации уровня: %w", err)
	}
	compressed := ls.encoder.EncodeAll(data, nil)

	err = ls.db.Update(func(txn *badger.Txn) error {
		return txn.Set(levelKey(id), compressed)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	logging.GetStorageLogger().Debug("Уровень %s сохранён: %d байт JSON, %d байт zstd", id, len(data), len(compressed))
	if err := eventbus.Emit(ctx, "storage", eventbus.EventLevelSaved, 2, map[string]interface{}{
		"id":    id,
		"bytes": len(compressed),
	}); err != nil {
		logging.GetStorageLogger().Warn("Не удалось опубликовать событие сохранения: %v", err)
	}
	return nil
}

// Load восстанавливает уровень
func (ls *LevelStorage) Load(ctx context.Context, id string) (*level.Level, error) {
	ls.mutex.RLock()
	defer ls.mutex.RUnlock()

	if !ls.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var compressed []byte
	err := ls.db.View(func(txn *badger.Txn) error {
		it, err := txn.Get(levelKey(id))
		if err != nil {
			return err
		}
		return it.Value(func(val []byte) error {
			compressed = append([]byte{}, val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	data, err := ls.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки уровня %s: %w", id, err)
	}

	var snap levelSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("ошибка десериализации уровня: %w", err)
	}
	return snap.restore()
}

// Delete удаляет уровень; отсутствие уровня не ошибка
func (ls *LevelStorage) Delete(id string) error {
	ls.mutex.RLock()
	defer ls.mutex.RUnlock()

	if !ls.isReady {
		return fmt.Errorf("хранилище не готово")
	}
	return ls.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(levelKey(id))
	})
}

// List возвращает идентификаторы сохранённых уровней по алфавиту
func (ls *LevelStorage) List() ([]string, error) {
	ls.mutex.RLock()
	defer ls.mutex.RUnlock()

	if !ls.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var ids []string
	err := ls.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(levelKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), levelKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка уровней: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func snapshotOf(lvl *level.Level) levelSnapshot {
	snap := levelSnapshot{
		Width:     lvl.Width(),
		Height:    lvl.Height(),
		Squares:   make([]*square.Record, 0, lvl.Width()*lvl.Height()),
		Furniture: make(map[string]string),
		Items:     make(map[string][]*item.Item),
	}
	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			s := lvl.At(vec.Vec2{X: x, Y: y})
			if s == nil {
				snap.Squares = append(snap.Squares, nil)
				continue
			}
			rec := s.Record()
			snap.Squares = append(snap.Squares, &rec)
		}
	}
	for v, name := range lvl.FurnitureMap() {
		snap.Furniture[v.Key()] = name
	}
	for v, items := range lvl.ItemMap() {
		snap.Items[v.Key()] = items
	}
	return snap
}

func (snap levelSnapshot) restore() (*level.Level, error) {
	if len(snap.Squares) != snap.Width*snap.Height {
		return nil, fmt.Errorf("повреждённый снимок: %d клеток для %dx%d", len(snap.Squares), snap.Width, snap.Height)
	}

	lvl := level.New(snap.Width, snap.Height)
	for i, rec := range snap.Squares {
		if rec == nil {
			continue
		}
		s, err := square.FromRecord(*rec)
		if err != nil {
			return nil, fmt.Errorf("клетка %d: %w", i, err)
		}
		if err := lvl.Set(vec.Vec2{X: i % snap.Width, Y: i / snap.Width}, s); err != nil {
			return nil, err
		}
	}
	for key, name := range snap.Furniture {
		v, err := vec.ParseKey(key)
		if err != nil {
			return nil, err
		}
		if err := lvl.AddFurniture(v, name); err != nil {
			return nil, err
		}
	}
	for key, items := range snap.Items {
		v, err := vec.ParseKey(key)
		if err != nil {
			return nil, err
		}
		if !v.InBounds(snap.Width, snap.Height) {
			return nil, fmt.Errorf("повреждённый снимок: предметы вне уровня в %s", key)
		}
		lvl.Position(v).AddItems(items)
	}
	return lvl, nil
}
